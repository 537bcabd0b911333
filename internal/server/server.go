// Package server exposes the translation gateway over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/inglify/inglify"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies; valid requests are far smaller.
const maxBodyBytes = 64 << 10

// Config holds listener settings.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Limiter caps translation requests across all clients. Nil disables it.
	Limiter *inglify.RateLimiter
}

// Server serves the gateway endpoints.
type Server struct {
	translator inglify.Translator
	limiter    *inglify.RateLimiter
	logger     *zap.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server for translator.
func New(cfg Config, translator inglify.Translator, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		translator: translator,
		limiter:    cfg.Limiter,
		logger:     logger,
	}
	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if s.limiter != nil {
				r.Use(rateLimitMiddleware(s.limiter, s.logger))
			}
			r.Post("/gemini", s.handleTranslate)
			r.Post("/translate", s.handleTranslate)
		})
		r.Get("/languages", s.handleLanguages)
		r.Get("/tones", s.handleTones)
	})
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens and serves until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("starting gateway", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping gateway")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		verr := &inglify.ValidationError{Message: inglify.MsgRequired}
		writeJSON(w, inglify.StatusCode(verr), ErrorBody{Error: verr.Message})
		return
	}

	status, payload := Respond(r.Context(), s.translator, body)
	writeJSON(w, status, payload)
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, inglify.LanguageEntries())
}

func (s *Server) handleTones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, inglify.TranslationTones)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": inglify.FullVersion(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// loggingMiddleware logs one line per request.
func loggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapper, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", wrapper.statusCode),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

// rateLimitMiddleware answers 429 with a Retry-After header once the
// limiter's budget is spent.
func rateLimitMiddleware(limiter *inglify.RateLimiter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := limiter.Reserve()
			if !ok {
				err := &inglify.RateLimitError{RetryAfter: wait}
				logger.Warn("request rate limited",
					zap.String("path", r.URL.Path),
					zap.Duration("retry_after", wait),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				writeJSON(w, inglify.StatusCode(err), ErrorBody{Error: err.PublicMessage()})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// responseWrapper captures the status code.
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
