package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSentinel/internal/cache"
	"StockSentinel/internal/collector"
	"StockSentinel/internal/model"
)

// countingSource wraps a collector and counts Collect calls. When gate is
// set every call blocks until it is closed or ctx ends.
type countingSource struct {
	inner *collector.Collector
	calls atomic.Int32
	gate  chan struct{}
}

func (c *countingSource) Collect(ctx context.Context, symbol string) (model.Quote, []model.Candle, error) {
	c.calls.Add(1)
	if c.gate != nil {
		select {
		case <-c.gate:
		case <-ctx.Done():
			return model.Quote{}, nil, ctx.Err()
		}
	}
	return c.inner.Collect(ctx, symbol)
}

func newSource(f collector.Fetcher) *countingSource {
	return &countingSource{inner: collector.NewCollector(f, 120)}
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) (*model.AnalysisResult, error) {
	return nil, errors.New("cache down")
}
func (failingCache) Set(context.Context, string, *model.AnalysisResult) error {
	return errors.New("cache down")
}
func (failingCache) Delete(context.Context, string) error { return errors.New("cache down") }
func (failingCache) Close() error                         { return nil }

func TestAnalyze_CachesResult(t *testing.T) {
	src := newSource(&collector.MockFetcher{Price: 100})
	svc := NewAnalysisService(src, cache.NewMemoryCache(time.Minute))
	ctx := context.Background()

	first, err := svc.Analyze(ctx, " aapl")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", first.Symbol)
	assert.NotEqual(t, model.PhaseUnknown, first.WyckoffPhase)

	second, err := svc.Analyze(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), src.calls.Load())

	_, err = svc.Refresh(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestAnalyze_WithoutCache(t *testing.T) {
	src := newSource(&collector.MockFetcher{Price: 50})
	svc := NewAnalysisService(src, nil)

	for i := 0; i < 2; i++ {
		_, err := svc.Analyze(context.Background(), "MSFT")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestAnalyze_CacheErrorsAreNotFatal(t *testing.T) {
	src := newSource(&collector.MockFetcher{Price: 50})
	svc := NewAnalysisService(src, failingCache{})

	res, err := svc.Analyze(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Equal(t, "MSFT", res.Symbol)

	_, err = svc.Refresh(context.Background(), "MSFT")
	require.NoError(t, err)
}

func TestAnalyze_Errors(t *testing.T) {
	svc := NewAnalysisService(newSource(&collector.MockFetcher{Err: collector.ErrNoData}), nil)

	_, err := svc.Analyze(context.Background(), "ZZZZ")
	assert.ErrorIs(t, err, collector.ErrNoData)

	_, err = svc.Analyze(context.Background(), "")
	assert.ErrorIs(t, err, collector.ErrInvalidSymbol)

	_, err = svc.Refresh(context.Background(), "bad symbol")
	assert.ErrorIs(t, err, collector.ErrInvalidSymbol)
}

func TestAnalyze_ShortHistoryIsNotAnError(t *testing.T) {
	bars := make([]model.Candle, 10)
	for i := range bars {
		bars[i] = model.Candle{Time: time.Unix(int64(i)*86400, 0), Open: 1, High: 1, Low: 1, Close: 1, Volume: 1}
	}
	svc := NewAnalysisService(newSource(&collector.MockFetcher{DailyData: bars}), nil)

	res, err := svc.Analyze(context.Background(), "TINY")
	require.NoError(t, err)
	assert.Equal(t, model.SuggestionWatch, res.Suggestion)
	assert.Equal(t, model.PhaseUnknown, res.WyckoffPhase)
}

func TestAnalyze_CollapsesConcurrentRequests(t *testing.T) {
	src := newSource(&collector.MockFetcher{Price: 100})
	src.gate = make(chan struct{})
	svc := NewAnalysisService(src, nil)

	const n = 8
	var wg sync.WaitGroup
	results := make([]*model.AnalysisResult, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.Analyze(context.Background(), "NVDA")
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}

	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, time.Millisecond)
	// Give the remaining goroutines time to join the in-flight call.
	time.Sleep(50 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestAnalyze_CancelledCallerDoesNotFailOthers(t *testing.T) {
	src := newSource(&collector.MockFetcher{Price: 100})
	src.gate = make(chan struct{})
	svc := NewAnalysisService(src, nil)

	ctx1, cancel1 := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := svc.Analyze(ctx1, "MSFT")
		first <- err
	}()
	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, time.Millisecond)

	second := make(chan error, 1)
	var res *model.AnalysisResult
	go func() {
		var err error
		res, err = svc.Analyze(context.Background(), "MSFT")
		second <- err
	}()
	time.Sleep(50 * time.Millisecond)

	cancel1()
	select {
	case err := <-first:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(src.gate)
	select {
	case err := <-second:
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.Equal(t, "MSFT", res.Symbol)
	case <-time.After(time.Second):
		t.Fatal("second caller did not return")
	}
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestAnalyze_SharedRunIsBounded(t *testing.T) {
	src := newSource(&collector.MockFetcher{Price: 100})
	src.gate = make(chan struct{})
	defer close(src.gate)
	svc := NewAnalysisService(src, nil)
	svc.timeout = 20 * time.Millisecond

	_, err := svc.Analyze(context.Background(), "MSFT")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
