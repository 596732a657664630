package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"StockSentinel/internal/collector"
	"StockSentinel/internal/model"
)

// Analyzer is the service the API exposes.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*model.AnalysisResult, error)
	Refresh(ctx context.Context, symbol string) (*model.AnalysisResult, error)
}

// Handler serves the analysis endpoints.
type Handler struct {
	analyzer Analyzer
	started  time.Time
	version  string
}

// NewHandler creates a new Handler
func NewHandler(analyzer Analyzer, version string) *Handler {
	return &Handler{analyzer: analyzer, started: time.Now(), version: version}
}

// Health reports liveness.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}

// GetAnalysis runs the engine for a symbol; ?refresh=true bypasses the cache.
// GET /api/v1/analysis/{symbol}
func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	analyze := h.analyzer.Analyze
	if r.URL.Query().Get("refresh") == "true" {
		analyze = h.analyzer.Refresh
	}
	result, err := analyze(r.Context(), symbol)
	if err != nil {
		status, code := classifyError(err)
		writeError(w, r, status, code, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, collector.ErrInvalidSymbol):
		return http.StatusBadRequest, ErrCodeInvalidParameter
	case errors.Is(err, collector.ErrNoData):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrCodeExternalAPITimeout
	default:
		return http.StatusBadGateway, ErrCodeExternalAPIError
	}
}
