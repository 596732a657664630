package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"StockSentinel/internal/model"
)

// DefaultHistoryDays covers MA200 plus the 40-bar contraction scan.
const DefaultHistoryDays = 300

// ErrInvalidSymbol is returned for an empty or malformed ticker.
var ErrInvalidSymbol = errors.New("invalid symbol")

// Collector turns a symbol into the inputs of the analysis engine.
type Collector struct {
	Fetcher     Fetcher
	HistoryDays int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, historyDays int) *Collector {
	if historyDays <= 0 {
		historyDays = DefaultHistoryDays
	}
	return &Collector{Fetcher: fetcher, HistoryDays: historyDays}
}

// NormalizeSymbol upper-cases and validates a ticker.
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" || len(s) > 20 {
		return "", fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '-', r == '^', r == '=':
		default:
			return "", fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
		}
	}
	return s, nil
}

// Collect fetches the daily history and the live quote for symbol. A quote
// failure is not fatal: the zero quote makes the engine derive it from the
// last closes.
func (c *Collector) Collect(ctx context.Context, symbol string) (model.Quote, []model.Candle, error) {
	bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, c.HistoryDays)
	if err != nil {
		return model.Quote{}, nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	if len(bars) == 0 {
		return model.Quote{}, nil, fmt.Errorf("fetch daily bars %s: %w", symbol, ErrNoData)
	}

	quote, err := c.Fetcher.FetchQuote(ctx, symbol)
	if err != nil {
		if ctx.Err() != nil {
			return model.Quote{}, nil, ctx.Err()
		}
		log.Warn().Err(err).Str("symbol", symbol).Str("source", c.Fetcher.Name()).
			Msg("quote unavailable, falling back to last close")
		quote = model.Quote{}
	}

	log.Debug().Str("symbol", symbol).Str("source", c.Fetcher.Name()).
		Int("bars", len(bars)).Float64("price", quote.Price).Msg("market data collected")
	return quote, bars, nil
}
