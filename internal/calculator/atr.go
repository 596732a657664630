package calculator

import talib "github.com/markcheno/go-talib"

const (
	rmvWindow     = 20
	rmvATRPeriod  = 5
	rmvMinHistory = 25
	rmvDefault    = 50.0
)

// TrueRange returns max(high-low, |high-prevClose|, |low-prevClose|) for bar j.
// The first bar has no previous close and uses its own range.
func (s Series) TrueRange(j int) float64 {
	if j == 0 {
		return s.Spread(j)
	}
	return talib.TRange(s.High[j-1:j+1], s.Low[j-1:j+1], s.Close[j-1:j+1])[1]
}

// ATR is the simple average of true range over period bars ending at i.
// Before period bars of history exist it falls back to the current bar's range.
func ATR(s Series, period, i int) float64 {
	if period <= 0 || i < 0 || i >= s.Len() {
		return 0
	}
	if i < period {
		return s.Spread(i)
	}
	// TRange leaves its first slot empty, so the window starts one bar early.
	tr := talib.TRange(s.High[i-period:i+1], s.Low[i-period:i+1], s.Close[i-period:i+1])
	return SMA(tr[1:], period, period-1)
}

// RMV min-max scales the latest 5-period ATR against the last 20 values.
// Returns 50 for short history or a flat window. Result is clamped to [0,100].
func RMV(s Series, i int) float64 {
	if i < 0 || i >= s.Len() || i+1 < rmvMinHistory {
		return rmvDefault
	}
	lo, hi := 0.0, 0.0
	for k := i - rmvWindow + 1; k <= i; k++ {
		v := ATR(s, rmvATRPeriod, k)
		if k == i-rmvWindow+1 || v < lo {
			lo = v
		}
		if k == i-rmvWindow+1 || v > hi {
			hi = v
		}
	}
	if hi == lo {
		return rmvDefault
	}
	return Clamp((ATR(s, rmvATRPeriod, i)-lo)/(hi-lo)*100, 0, 100)
}
