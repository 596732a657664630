package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"StockSentinel/internal/model"
)

// ErrNoData is returned when a data source has nothing for the symbol.
var ErrNoData = errors.New("no market data")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.Candle, error)
	FetchQuote(ctx context.Context, symbol string) (model.Quote, error)
	Name() string
}

// HTTPOptions configures the transport shared by the HTTP fetchers.
type HTTPOptions struct {
	ProxyURL          string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// httpSource is a rate-limited JSON client.
type httpSource struct {
	client  *http.Client
	limiter *rate.Limiter
}

func newHTTPSource(opts HTTPOptions) httpSource {
	transport := &http.Transport{}
	if opts.ProxyURL != "" {
		if u, err := url.Parse(opts.ProxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	burst := opts.Burst
	if burst < 1 {
		burst = 1
	}
	return httpSource{
		client:  &http.Client{Timeout: timeout, Transport: transport},
		limiter: rate.NewLimiter(limit, burst),
	}
}

// getJSON waits for a rate-limit token, issues a GET and decodes the body
// into out. A 404 is reported as ErrNoData.
func (h httpSource) getJSON(ctx context.Context, endpoint string, header http.Header, out any) error {
	if err := h.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNoData
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, truncate(string(body), 200))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
