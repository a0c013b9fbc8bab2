// Package api serves the admin HTTP endpoints: metrics, service stats and
// an operator view of item resolution.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/xentee/skinticket/internal/domain/model"
	"github.com/xentee/skinticket/internal/domain/types"
	"github.com/xentee/skinticket/pkg/logger"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	// Search resolves and ranks a free-text item query.
	Search(ctx context.Context, query string) []model.Candidate

	// Stats returns a monitoring snapshot.
	Stats(ctx context.Context) types.Stats
}

// Server wires HTTP routes for the admin API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	resolveHandler *ResolveHandler
}

// Option configures the Server.
type Option func(*options)

type options struct {
	maxQueryLength int
	logger         logger.Logger
}

// WithMaxQueryLength caps the q parameter of /resolve.
func WithMaxQueryLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxQueryLength = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	o := options{maxQueryLength: 80, logger: logger.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(deps),
		resolveHandler: NewResolveHandler(deps, o.maxQueryLength, o.logger),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/resolve", MetricsMiddleware(s.resolveHandler.HandleResolve, "resolve"))
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
