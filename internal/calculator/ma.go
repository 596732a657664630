package calculator

import talib "github.com/markcheno/go-talib"

// trailing returns the start index and length of the window of up to period
// bars ending at i.
func trailing(period, i int) (start, n int) {
	start = i - period + 1
	if start < 0 {
		start = 0
	}
	return start, i - start + 1
}

// SMA returns the arithmetic mean of values[i-period+1..i].
// When fewer than period values precede i, the mean covers values[0..i].
func SMA(values []float64, period, i int) float64 {
	if period <= 0 || i < 0 || i >= len(values) {
		return 0
	}
	start, n := trailing(period, i)
	out := talib.Sma(values[start:i+1], n)
	return out[n-1]
}

// MA returns the simple moving average of closes at bar i.
func (s Series) MA(period, i int) float64 {
	return SMA(s.Close, period, i)
}

// AvgVolume returns the simple moving average of volume at bar i.
func (s Series) AvgVolume(period, i int) float64 {
	return SMA(s.Volume, period, i)
}

// AvgSpread returns the mean high-low range over the window ending at bar i.
func (s Series) AvgSpread(period, i int) float64 {
	if period <= 0 || i < 0 || i >= s.Len() {
		return 0
	}
	start, n := trailing(period, i)
	spreads := talib.Sub(s.High[start:i+1], s.Low[start:i+1])
	return SMA(spreads, n, n-1)
}
