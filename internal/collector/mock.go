package collector

import (
	"context"
	"time"

	"StockSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	Quote     *model.Quote
	DailyData []model.Candle
	Err       error // returned by every call when set
	QuoteErr  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, days int) ([]model.Candle, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return generateMockBars(m.Price, days), nil
}

func (m *MockFetcher) FetchQuote(_ context.Context, _ string) (model.Quote, error) {
	if m.Err != nil {
		return model.Quote{}, m.Err
	}
	if m.QuoteErr != nil {
		return model.Quote{}, m.QuoteErr
	}
	if m.Quote != nil {
		return *m.Quote, nil
	}
	return model.Quote{Price: m.Price}, nil
}

// generateMockBars builds a gently rising series ending yesterday.
func generateMockBars(basePrice float64, count int) []model.Candle {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	bars := make([]model.Candle, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Candle{
			Time:   end.AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
