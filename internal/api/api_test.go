package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSentinel/internal/cache"
	"StockSentinel/internal/collector"
	"StockSentinel/internal/model"
	"StockSentinel/internal/service"
)

func newTestRouter(f collector.Fetcher) http.Handler {
	svc := service.NewAnalysisService(collector.NewCollector(f, 120), cache.NewMemoryCache(time.Minute))
	return NewRouter(Config{
		Handler:        NewHandler(svc, "test"),
		AllowedOrigins: []string{"https://app.example"},
		Timeout:        5 * time.Second,
	})
}

func get(t *testing.T, h http.Handler, path string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestRouter(&collector.MockFetcher{Price: 100}), "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestGetAnalysis(t *testing.T) {
	h := newTestRouter(&collector.MockFetcher{Price: 100})
	rec := get(t, h, "/api/v1/analysis/aapl", RequestIDHeader, "req-1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "req-1", rec.Header().Get(RequestIDHeader))

	var res model.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "AAPL", res.Symbol)
	assert.NotEmpty(t, res.Suggestion)
	assert.GreaterOrEqual(t, res.Confidence, 0)
	assert.LessOrEqual(t, res.Confidence, 100)
	assert.Equal(t, res.HasRiskLevels(), res.Suggestion == model.SuggestionBuy || res.Suggestion == model.SuggestionSell)

	refreshed := get(t, h, "/api/v1/analysis/AAPL?refresh=true")
	assert.Equal(t, http.StatusOK, refreshed.Code)
}

func TestGetAnalysis_GeneratesRequestID(t *testing.T) {
	rec := get(t, newTestRouter(&collector.MockFetcher{Price: 100}), "/api/v1/analysis/MSFT")
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestGetAnalysis_Errors(t *testing.T) {
	tests := []struct {
		name     string
		fetchErr error
		path     string
		status   int
		code     string
	}{
		{"invalid symbol", nil, "/api/v1/analysis/bad%20symbol", http.StatusBadRequest, ErrCodeInvalidParameter},
		{"unknown symbol", collector.ErrNoData, "/api/v1/analysis/ZZZZ", http.StatusNotFound, ErrCodeNotFound},
		{"upstream timeout", fmt.Errorf("fetch: %w", context.DeadlineExceeded), "/api/v1/analysis/AAPL", http.StatusGatewayTimeout, ErrCodeExternalAPITimeout},
		{"upstream failure", errors.New("status 500"), "/api/v1/analysis/AAPL", http.StatusBadGateway, ErrCodeExternalAPIError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newTestRouter(&collector.MockFetcher{Err: tt.fetchErr}), tt.path, RequestIDHeader, "req-err")
			require.Equal(t, tt.status, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, "req-err", body.Error.RequestID)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestNotFoundRoute(t *testing.T) {
	rec := get(t, newTestRouter(&collector.MockFetcher{Price: 1}), "/api/v2/nothing")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrCodeNotFound)
}

func TestCORS(t *testing.T) {
	h := newTestRouter(&collector.MockFetcher{Price: 100})
	rec := get(t, h, "/health", "Origin", "https://app.example")
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = get(t, h, "/health", "Origin", "https://evil.example")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecovery(t *testing.T) {
	h := RequestID(Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))
	rec := get(t, h, "/", RequestIDHeader, "req-panic")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeInternalServer, body.Error.Code)
	assert.Equal(t, "req-panic", body.Error.RequestID)
}
