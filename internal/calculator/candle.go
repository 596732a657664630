package calculator

import (
	"math"

	"StockSentinel/internal/model"
)

const (
	cppBars      = 5
	cppVolPeriod = 10
)

// CPP is the candle power prediction: a volume-weighted, linearly decayed
// sum of body-to-range ratios over the trailing 5 bars.
func CPP(s Series, i int) float64 {
	score := 0.0
	for j := 0; j < cppBars; j++ {
		k := i - j
		if k < 0 {
			break
		}
		direction := (s.Close[k] - s.Open[k]) / priceRange(s.Spread(k))
		volFactor := SafeDiv(s.Volume[k], s.AvgVolume(cppVolPeriod, k), 1)
		weight := float64(cppBars-j) / cppBars
		score += direction * volFactor * weight
	}
	return score
}

// CPPBias maps a CPP score to a directional bias.
func CPPBias(cpp float64) model.Bias {
	switch {
	case cpp > 0.5:
		return model.BiasBullish
	case cpp < -0.5:
		return model.BiasBearish
	default:
		return model.BiasNeutral
	}
}

// CandlePower maps a CPP score onto 0-100 with 50 as neutral.
func CandlePower(cpp float64) int {
	return int(Clamp(math.Round(50+20*cpp), 0, 100))
}
