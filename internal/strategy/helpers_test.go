package strategy

import (
	"time"

	"StockSentinel/internal/calculator"
	"StockSentinel/internal/model"
)

var day0 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// baseBar is a quiet green bar closing at price: range 1.5, body 0.5.
func baseBar(i int, price, volume float64) model.Candle {
	return model.Candle{
		Time:   day0.AddDate(0, 0, i),
		Open:   price - 0.5,
		High:   price + 0.5,
		Low:    price - 1,
		Close:  price,
		Volume: volume,
	}
}

// flatSeries returns n quiet bars at 100 with volume 1000.
func flatSeries(n int) []model.Candle {
	bars := make([]model.Candle, n)
	for i := range bars {
		bars[i] = baseBar(i, 100, 1000)
	}
	return bars
}

// risingSeries closes one point higher each day on rising volume.
func risingSeries(n int) []model.Candle {
	bars := make([]model.Candle, n)
	for i := range bars {
		bars[i] = baseBar(i, 100+float64(i), 1000+20*float64(i))
	}
	return bars
}

// fallingSeries closes one point lower each day with red bodies.
func fallingSeries(n int) []model.Candle {
	bars := make([]model.Candle, n)
	for i := range bars {
		c := 200 - float64(i)
		bars[i] = model.Candle{
			Time:   day0.AddDate(0, 0, i),
			Open:   c + 0.5,
			High:   c + 1,
			Low:    c - 0.5,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func factsFor(bars []model.Candle) *barFacts {
	return newBarFacts(calculator.Preprocess(bars))
}

func withLast(bars []model.Candle, c model.Candle) []model.Candle {
	c.Time = bars[len(bars)-1].Time
	bars[len(bars)-1] = c
	return bars
}
