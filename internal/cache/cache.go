// Package cache stores analysis results between requests. A miss is
// reported as (nil, nil), never as an error.
package cache

import (
	"context"
	"fmt"
	"time"

	"StockSentinel/internal/model"
)

// DefaultTTL keeps a daily-bar analysis fresh for intraday callers.
const DefaultTTL = 15 * time.Minute

// Cache stores AnalysisResult values by symbol.
type Cache interface {
	Get(ctx context.Context, symbol string) (*model.AnalysisResult, error)
	Set(ctx context.Context, symbol string, result *model.AnalysisResult) error
	Delete(ctx context.Context, symbol string) error
	Close() error
}

func key(symbol string) string {
	return fmt.Sprintf("analysis:%s", symbol)
}
