package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"StockSentinel/internal/cache"
	"StockSentinel/internal/collector"
	"StockSentinel/internal/model"
	"StockSentinel/internal/strategy"
)

// DefaultComputeTimeout bounds one shared fetch-and-analyze run.
const DefaultComputeTimeout = time.Minute

// Source supplies the engine inputs for a symbol.
type Source interface {
	Collect(ctx context.Context, symbol string) (model.Quote, []model.Candle, error)
}

// AnalysisService runs the engine for a symbol, caching results and
// collapsing concurrent requests for the same symbol into one fetch.
type AnalysisService struct {
	source  Source
	cache   cache.Cache
	sf      singleflight.Group
	timeout time.Duration
}

// NewAnalysisService creates a service. A nil cache disables caching.
func NewAnalysisService(source Source, c cache.Cache) *AnalysisService {
	return &AnalysisService{source: source, cache: c, timeout: DefaultComputeTimeout}
}

// Analyze returns the cached result for symbol or computes a fresh one.
// Cache failures are logged and never fail the request.
func (s *AnalysisService) Analyze(ctx context.Context, symbol string) (*model.AnalysisResult, error) {
	symbol, err := collector.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, symbol)
		if err != nil {
			log.Warn().Err(err).Str("symbol", symbol).Msg("cache get failed")
		} else if cached != nil {
			log.Debug().Str("symbol", symbol).Msg("cache hit")
			return cached, nil
		}
	}

	// The shared run outlives any single caller; each caller stops waiting
	// when its own context ends.
	ch := s.sf.DoChan(symbol, func() (interface{}, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.compute(runCtx, symbol)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		if r.Shared {
			log.Debug().Str("symbol", symbol).Msg("shared in-flight analysis")
		}
		return r.Val.(*model.AnalysisResult), nil
	}
}

// Refresh drops the cached result and recomputes it.
func (s *AnalysisService) Refresh(ctx context.Context, symbol string) (*model.AnalysisResult, error) {
	symbol, err := collector.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, symbol); err != nil {
			log.Warn().Err(err).Str("symbol", symbol).Msg("cache delete failed")
		}
	}
	return s.Analyze(ctx, symbol)
}

func (s *AnalysisService) compute(ctx context.Context, symbol string) (*model.AnalysisResult, error) {
	start := time.Now()
	quote, candles, err := s.source.Collect(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", symbol, err)
	}

	result := strategy.Analyze(symbol, quote, candles)

	if s.cache != nil {
		if err := s.cache.Set(ctx, symbol, result); err != nil {
			log.Warn().Err(err).Str("symbol", symbol).Msg("cache set failed")
		}
	}

	log.Info().
		Str("symbol", symbol).
		Str("suggestion", string(result.Suggestion)).
		Int("confidence", result.Confidence).
		Dur("took", time.Since(start)).
		Msg("analysis complete")
	return result, nil
}
