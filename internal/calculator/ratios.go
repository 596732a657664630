package calculator

import "math"

// MinPriceRange replaces a zero high-low range in divisions.
const MinPriceRange = 0.0001

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SafeDiv divides num by den, substituting fallback for a zero or non-finite denominator.
func SafeDiv(num, den, fallback float64) float64 {
	if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		den = fallback
	}
	return num / den
}

func priceRange(r float64) float64 {
	if r <= 0 {
		return MinPriceRange
	}
	return r
}

// VolRatio is the bar's volume over its period-bar average volume.
func VolRatio(s Series, period, i int) float64 {
	return SafeDiv(s.Volume[i], s.AvgVolume(period, i), 1)
}

// SpreadRatio is the bar's range over its period-bar average range.
func SpreadRatio(s Series, period, i int) float64 {
	return SafeDiv(s.Spread(i), s.AvgSpread(period, i), 1)
}

// EVR (effort vs result) is spreadRatio minus volRatio on 20-bar averages.
func EVR(s Series, i int) float64 {
	return SpreadRatio(s, 20, i) - VolRatio(s, 20, i)
}

// AccRatio is up-bar volume over down-bar volume across the trailing window.
// The denominator is floored at 1.
func AccRatio(s Series, window, i int) float64 {
	start := i - window + 1
	if start < 0 {
		start = 0
	}
	up, down := 0.0, 0.0
	for j := start; j <= i; j++ {
		switch {
		case s.IsGreen(j):
			up += s.Volume[j]
		case s.IsRed(j):
			down += s.Volume[j]
		}
	}
	return up / math.Max(down, 1)
}

// Momentum is the n-bar percentage change of the close.
func Momentum(s Series, n, i int) float64 {
	base := i - n
	if base < 0 {
		base = 0
	}
	return SafeDiv(s.Close[i]-s.Close[base], s.Close[base], 1) * 100
}

// DistancePct is the percentage distance of price from a reference level.
func DistancePct(price, ref float64) float64 {
	return SafeDiv(price-ref, ref, 1) * 100
}
