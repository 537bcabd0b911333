package inglify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ModelProvider is the interface for external text-generation backends.
// Generate returns the model's raw text reply for a prompt.
type ModelProvider interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// modelNamer is implemented by providers that report which model answers.
// Cached replies are keyed by model so one cache can serve several
// deployments.
type modelNamer interface {
	Model() string
}

// GenerateRequest contains the parameters for a single model call.
type GenerateRequest struct {
	Prompt string
	Config GenerationConfig
}

// ResponseCache is the interface for caching tone results per request.
type ResponseCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// Translator turns a TranslationRequest into a TranslationResponse.
// Gateway implements it in-process; client.Client implements it over HTTP.
type Translator interface {
	Translate(ctx context.Context, req TranslationRequest) (*TranslationResponse, error)
}

// Gateway is the server-side relay between callers and the model provider.
type Gateway struct {
	provider ModelProvider
	cache    ResponseCache
	logger   *zap.Logger
	config   GenerationConfig
	validate *validator.Validate
	now      func() time.Time
}

var _ Translator = (*Gateway)(nil)

// GatewayOption is a functional option for configuring the Gateway.
type GatewayOption func(*Gateway)

// WithCache serves repeated requests from the cache.
func WithCache(cache ResponseCache) GatewayOption {
	return func(g *Gateway) {
		g.cache = cache
	}
}

// WithLogger sets the logger for upstream and parse failures.
func WithLogger(logger *zap.Logger) GatewayOption {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithGenerationConfig overrides the model sampling parameters.
func WithGenerationConfig(cfg GenerationConfig) GatewayOption {
	return func(g *Gateway) {
		g.config = cfg
	}
}

// WithClock sets the time source used for response timestamps.
func WithClock(now func() time.Time) GatewayOption {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGateway creates a Gateway backed by provider. A nil provider yields a
// gateway that fails every request with a ConfigurationError.
func NewGateway(provider ModelProvider, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		provider: provider,
		logger:   zap.NewNop(),
		config:   DefaultGenerationConfig(),
		validate: validator.New(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Translate validates the request, asks the model for all six tones and
// returns the parsed response stamped with the current time.
func (g *Gateway) Translate(ctx context.Context, req TranslationRequest) (*TranslationResponse, error) {
	if err := g.validateRequest(req); err != nil {
		return nil, err
	}

	if g.provider == nil {
		return nil, &ConfigurationError{Message: MsgNotConfigured}
	}

	cacheKey := g.cacheKey(req)
	if results, ok := g.cached(cacheKey); ok {
		return g.respond(req, results), nil
	}

	raw, err := g.provider.Generate(ctx, GenerateRequest{
		Prompt: BuildPrompt(req.Text, req.TargetLanguage),
		Config: g.config,
	})
	if err != nil {
		g.logger.Error("model call failed",
			zap.String("target_language", req.TargetLanguage),
			zap.Error(err))
		return nil, upstream(err)
	}

	results, err := ParseReply(raw)
	if err != nil {
		g.logger.Error("model reply could not be parsed",
			zap.String("target_language", req.TargetLanguage),
			zap.String("raw", raw),
			zap.Error(err))
		return nil, err
	}

	g.store(cacheKey, results)

	return g.respond(req, results), nil
}

func (g *Gateway) cacheKey(req TranslationRequest) string {
	hash := HashText(req.Text)
	if m, ok := g.provider.(modelNamer); ok && m.Model() != "" {
		return CacheKeyExtended(hash, req.TargetLanguage, m.Model())
	}
	return CacheKey(hash, req.TargetLanguage)
}

func (g *Gateway) validateRequest(req TranslationRequest) error {
	err := g.validate.Struct(req)
	if err == nil {
		if strings.TrimSpace(req.Text) == "" {
			return &ValidationError{Message: MsgRequired, Field: "text"}
		}
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: MsgRequired}
	}

	fe := verrs[0]
	if fe.Tag() == "max" {
		return &ValidationError{
			Message: fmt.Sprintf("Text must be at most %d characters", MaxTextLength),
			Field:   "text",
		}
	}
	return &ValidationError{Message: MsgRequired, Field: fe.Field()}
}

func (g *Gateway) respond(req TranslationRequest, results []TranslationResult) *TranslationResponse {
	return &TranslationResponse{
		Results:        results,
		OriginalText:   req.Text,
		TargetLanguage: req.TargetLanguage,
		Timestamp:      g.now().UnixMilli(),
	}
}

func (g *Gateway) cached(key string) ([]TranslationResult, bool) {
	if g.cache == nil {
		return nil, false
	}
	data, ok := g.cache.Get(key)
	if !ok {
		return nil, false
	}
	var results []TranslationResult
	if err := json.Unmarshal([]byte(data), &results); err != nil {
		g.logger.Warn("discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return results, true
}

func (g *Gateway) store(key string, results []TranslationResult) {
	if g.cache == nil {
		return
	}
	data, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := g.cache.Set(key, string(data)); err != nil {
		g.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// upstream keeps typed errors from the provider and wraps everything else
// as an UpstreamError.
func upstream(err error) error {
	var (
		cerr *ConfigurationError
		uerr *UpstreamError
		perr *ParseError
	)
	if errors.As(err, &cerr) || errors.As(err, &uerr) || errors.As(err, &perr) {
		return err
	}
	return &UpstreamError{Message: MsgUpstreamFailed, Cause: err}
}
