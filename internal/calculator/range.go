package calculator

import talib "github.com/markcheno/go-talib"

// HighestHigh returns the highest high over the window bars ending at i.
func HighestHigh(s Series, window, i int) float64 {
	return rolling(talib.Max, s.High, window, i)
}

// LowestLow returns the lowest low over the window bars ending at i.
func LowestLow(s Series, window, i int) float64 {
	return rolling(talib.Min, s.Low, window, i)
}

// rolling applies a talib window function to the trailing window ending at i.
// talib leaves single-bar windows empty, so those return the bar itself.
func rolling(fn func([]float64, int) []float64, values []float64, window, i int) float64 {
	start, n := trailing(window, i)
	if n == 1 {
		return values[i]
	}
	return fn(values[start:i+1], n)[n-1]
}

// DepthPct is the percentage drop from the window high to the window low.
func DepthPct(s Series, window, i int) float64 {
	high := HighestHigh(s, window, i)
	return SafeDiv(high-LowestLow(s, window, i), high, 1) * 100
}
