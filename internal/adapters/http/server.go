package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/twotruths"
	"github.com/aretw0/twotruths/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const apiVersion = "0.1.0"

// maxBodyBytes bounds POST /generate bodies.
const maxBodyBytes = 1 << 16

// Engine defines the operations the HTTP API exposes.
type Engine interface {
	Generate(ctx context.Context, req domain.Request) (*domain.Batch, error)
	Reveal(ctx context.Context, id string) (*domain.Batch, error)
	Generators() []twotruths.GeneratorInfo
}

// Server serves the JSON API for an Engine.
type Server struct {
	Engine  Engine
	Logger  *slog.Logger
	Metrics http.Handler
}

// Option configures NewHandler.
type Option func(*config)

type config struct {
	logger  *slog.Logger
	metrics http.Handler
	rps     float64
	burst   int
	cors    bool
}

// WithLogger sets the logger used for request failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMetricsHandler replaces the default promhttp handler on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(c *config) { c.metrics = h }
}

// WithRateLimit allows rps requests per second per client address, with the given burst.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *config) {
		c.rps = rps
		c.burst = burst
	}
}

// WithoutCORS disables the permissive CORS headers.
func WithoutCORS() Option {
	return func(c *config) { c.cors = false }
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	cfg := &config{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: promhttp.Handler(),
		cors:    true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Server{Engine: engine, Logger: cfg.logger, Metrics: cfg.metrics}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if cfg.cors {
		r.Use(enableCORS)
	}

	r.Get("/health", s.Health)
	r.Get("/info", s.Info)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Method(http.MethodGet, "/metrics", s.Metrics)

	r.Group(func(r chi.Router) {
		if cfg.rps > 0 {
			r.Use(s.rateLimit(newClientLimiter(cfg.rps, cfg.burst)))
		}
		r.Post("/generate", s.Generate)
		r.Get("/batches/{id}", s.RevealBatch)
		r.Get("/generators", s.ListGenerators)
	})

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Info handles GET /info.
func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "twotruths-http",
		"version":     strings.TrimSpace(twotruths.Version),
		"api_version": apiVersion,
	})
}

type maskedBatch struct {
	ID         string                   `json:"id"`
	Statements []domain.MaskedStatement `json:"statements"`
}

// Generate handles POST /generate.
// Truth flags are omitted unless the reveal query parameter is true.
func (s *Server) Generate(w http.ResponseWriter, r *http.Request) {
	req := domain.DefaultRequest()
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.Logger.Warn("generate: invalid request body", "error", err)
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error(), "")
		return
	}

	reveal := false
	if v := r.URL.Query().Get("reveal"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "reveal must be a boolean", "reveal")
			return
		}
		reveal = b
	}

	batch, err := s.Engine.Generate(r.Context(), req)
	if err != nil {
		s.fail(w, "generate", err)
		return
	}

	if reveal {
		s.writeJSON(w, http.StatusOK, batch)
		return
	}
	s.writeJSON(w, http.StatusOK, maskedBatch{ID: batch.ID, Statements: batch.Masked()})
}

// RevealBatch handles GET /batches/{id}.
func (s *Server) RevealBatch(w http.ResponseWriter, r *http.Request) {
	batch, err := s.Engine.Reveal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "reveal", err)
		return
	}
	s.writeJSON(w, http.StatusOK, batch)
}

// ListGenerators handles GET /generators.
func (s *Server) ListGenerators(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Generators())
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := StatusFor(err)
	field := ""
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		field = verr.Field
	}
	if status >= http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err)
	} else {
		s.Logger.Warn(op+" rejected", "error", err, "status", status)
	}
	s.writeError(w, status, err.Error(), field)
}

// StatusFor maps engine errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrBatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, twotruths.ErrNoStore):
		return http.StatusNotImplemented
	case errors.Is(err, domain.ErrDuplicateExhaustion), errors.Is(err, domain.ErrNoArguments):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg, field string) {
	s.writeJSON(w, status, errorBody{Error: msg, Field: field})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && s.Logger != nil {
		s.Logger.Error("encode response failed", "error", err, "status", status)
	}
}
