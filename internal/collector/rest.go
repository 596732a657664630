package collector

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"StockSentinel/internal/model"
)

// RestFetcher implements Fetcher against a generic bars/quote REST API.
type RestFetcher struct {
	BaseURL string
	APIKey  string
	http    httpSource
}

// NewRestFetcher creates a new fetcher with optional proxy support.
func NewRestFetcher(baseURL, apiKey string, opts HTTPOptions) *RestFetcher {
	return &RestFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		http:    newHTTPSource(opts),
	}
}

func (f *RestFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape of a daily bar.
type restBar struct {
	Timestamp int64    `json:"timestamp"`
	Open      float64  `json:"open"`
	High      float64  `json:"high"`
	Low       float64  `json:"low"`
	Close     *float64 `json:"close"`
	Volume    float64  `json:"volume"`
}

type restQuote struct {
	Price         float64  `json:"price"`
	Change        *float64 `json:"change"`
	ChangePercent *float64 `json:"change_percent"`
	PrevClose     float64  `json:"prev_close"`
}

func (f *RestFetcher) header() http.Header {
	h := http.Header{}
	if f.APIKey != "" {
		h.Set("Authorization", "Bearer "+f.APIKey)
	}
	return h
}

func (f *RestFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.Candle, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&limit=%d", f.BaseURL, url.QueryEscape(symbol), days)
	var raw []restBar
	if err := f.http.getJSON(ctx, endpoint, f.header(), &raw); err != nil {
		return nil, fmt.Errorf("fetch bars %s: %w", symbol, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("fetch bars %s: %w", symbol, ErrNoData)
	}

	bars := make([]model.Candle, len(raw))
	for i, rb := range raw {
		c := math.NaN()
		if rb.Close != nil {
			c = *rb.Close
		}
		bars[i] = model.Candle{
			Time:   time.Unix(rb.Timestamp, 0).UTC(),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  c,
			Volume: rb.Volume,
		}
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// FetchQuote prefers the change fields reported by the API and falls back
// to deriving them from prev_close.
func (f *RestFetcher) FetchQuote(ctx context.Context, symbol string) (model.Quote, error) {
	endpoint := fmt.Sprintf("%s/api/v1/quote?symbol=%s", f.BaseURL, url.QueryEscape(symbol))
	var raw restQuote
	if err := f.http.getJSON(ctx, endpoint, f.header(), &raw); err != nil {
		return model.Quote{}, fmt.Errorf("fetch quote %s: %w", symbol, err)
	}
	if raw.Change != nil && raw.ChangePercent != nil {
		return model.Quote{Price: raw.Price, Change: *raw.Change, ChangePercent: *raw.ChangePercent}, nil
	}
	return quoteFrom(raw.Price, raw.PrevClose), nil
}
