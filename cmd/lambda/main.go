// Package main is the entry point for the gateway Lambda function behind
// an API Gateway proxy integration.
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/inglify/inglify"
	"github.com/inglify/inglify/internal/config"
	"github.com/inglify/inglify/internal/server"
	"github.com/inglify/inglify/internal/wire"
	"go.uber.org/zap"
)

func setupLogger(env string) *zap.Logger {
	var logger *zap.Logger
	if env == "development" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	return logger
}

func main() {
	cfg, err := config.Init()
	if err != nil {
		log.Fatal("failed load config " + err.Error())
		return
	}

	logger := setupLogger(cfg.Env)
	defer logger.Sync()

	components := wire.New(logger)
	defer components.Close()

	g, err := components.Gateway(cfg)
	if err != nil {
		logger.Fatal("failed init gateway", zap.Error(err))
	}

	h := &handler{translator: g, logger: logger, invoker: newLambdaInvoker}
	lambda.Start(h.handleRequest)
}

type handler struct {
	translator inglify.Translator
	logger     *zap.Logger
	invoker    func(ctx context.Context) (invoker, error)
}

func (h *handler) handleRequest(ctx context.Context, event json.RawMessage) (interface{}, error) {
	// Warmup detection comes first.
	if warmup, ok := IsWarmupEvent(event); ok {
		return h.handleWarmup(ctx, warmup)
	}

	var req events.APIGatewayProxyRequest
	if err := json.Unmarshal(event, &req); err != nil {
		return nil, err
	}
	return h.route(ctx, req), nil
}

func (h *handler) route(ctx context.Context, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	path := strings.TrimSuffix(req.Path, "/")

	var (
		status  int
		payload any
	)
	switch {
	case (path == "/api/gemini" || path == "/api/translate") && req.HTTPMethod == http.MethodPost:
		body := []byte(req.Body)
		if req.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(req.Body)
			if err != nil {
				status, payload = http.StatusBadRequest, server.ErrorBody{Error: inglify.MsgRequired}
				break
			}
			body = decoded
		}
		status, payload = server.Respond(ctx, h.translator, body)
	case path == "/api/languages" && req.HTTPMethod == http.MethodGet:
		status, payload = http.StatusOK, inglify.LanguageEntries()
	case path == "/api/tones" && req.HTTPMethod == http.MethodGet:
		status, payload = http.StatusOK, inglify.TranslationTones
	case path == "/healthz":
		status, payload = http.StatusOK, map[string]string{"status": "ok", "version": inglify.FullVersion()}
	default:
		status, payload = http.StatusNotFound, server.ErrorBody{Error: "Not found"}
	}

	h.logger.Info("lambda request",
		zap.String("method", req.HTTPMethod),
		zap.String("path", req.Path),
		zap.Int("status", status),
		zap.String("request_id", req.RequestContext.RequestID),
	)

	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("encode response", zap.Error(err))
		status = http.StatusInternalServerError
		data, _ = json.Marshal(server.ErrorBody{Error: inglify.MsgInternal})
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(data),
	}
}
