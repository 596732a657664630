package collector

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"StockSentinel/internal/model"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	BaseURL   string
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
	http      httpSource
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(opts HTTPOptions) *YahooFetcher {
	return &YahooFetcher{
		BaseURL: yahooBaseURL,
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
			"NDX":    "^NDX",
		},
		http: newHTTPSource(opts),
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from the chart API. Prices are
// pointers because Yahoo sends null for missing sessions.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func valueAt(vals []*float64, i int, fallback float64) float64 {
	if i >= len(vals) || vals[i] == nil {
		return fallback
	}
	return *vals[i]
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol, interval, rng string) (*yahooChart, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		strings.TrimRight(f.BaseURL, "/"), url.PathEscape(f.yahooSymbol(symbol)), interval, rng)

	var chart yahooChart
	header := http.Header{"User-Agent": []string{"Mozilla/5.0"}}
	if err := f.http.getJSON(ctx, u, header, &chart); err != nil {
		if errors.Is(err, ErrNoData) {
			return nil, fmt.Errorf("yahoo %s: %w", symbol, ErrNoData)
		}
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	if chart.Chart.Error != nil {
		if chart.Chart.Error.Code == "Not Found" {
			return nil, fmt.Errorf("yahoo %s: %w", symbol, ErrNoData)
		}
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, ErrNoData)
	}
	return &chart, nil
}

// yahooRange picks the smallest chart range covering the requested days.
func yahooRange(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	default:
		return "2y"
	}
}

// FetchDailyBars returns up to days daily candles, oldest first. A null
// close is kept as NaN so the engine can discard it.
func (f *YahooFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.Candle, error) {
	chart, err := f.fetchChart(ctx, symbol, "1d", yahooRange(days))
	if err != nil {
		return nil, err
	}
	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w", symbol, ErrNoData)
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.Candle, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		c := valueAt(quote.Close, i, math.NaN())
		bars = append(bars, model.Candle{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   valueAt(quote.Open, i, c),
			High:   valueAt(quote.High, i, c),
			Low:    valueAt(quote.Low, i, c),
			Close:  c,
			Volume: valueAt(quote.Volume, i, 0),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// FetchQuote reads the live price and the previous close from the chart metadata.
func (f *YahooFetcher) FetchQuote(ctx context.Context, symbol string) (model.Quote, error) {
	chart, err := f.fetchChart(ctx, symbol, "1d", "1d")
	if err != nil {
		return model.Quote{}, err
	}
	meta := chart.Chart.Result[0].Meta
	if meta.RegularMarketPrice <= 0 {
		return model.Quote{}, fmt.Errorf("yahoo %s: %w", symbol, ErrNoData)
	}
	return quoteFrom(meta.RegularMarketPrice, meta.ChartPreviousClose), nil
}

// quoteFrom derives change fields from the previous close, leaving them
// zero when it is unknown.
func quoteFrom(price, prevClose float64) model.Quote {
	q := model.Quote{Price: price}
	if prevClose > 0 {
		q.Change = price - prevClose
		q.ChangePercent = q.Change / prevClose * 100
	}
	return q
}
