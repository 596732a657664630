package strategy

import (
	"StockSentinel/internal/calculator"
	"StockSentinel/internal/model"
)

// barFacts caches the latest-bar measurements shared by every detector.
type barFacts struct {
	s    calculator.Series
	i    int
	snap model.IndicatorSnapshot

	spread    float64
	body      float64
	closePos  float64
	lowerWick float64
	upperWick float64
	green     bool
	red       bool
}

func newBarFacts(s calculator.Series) *barFacts {
	i := s.Last()
	return &barFacts{
		s:         s,
		i:         i,
		snap:      calculator.Snapshot(s),
		spread:    s.Spread(i),
		body:      s.Body(i),
		closePos:  s.ClosePosition(i),
		lowerWick: s.LowerWick(i),
		upperWick: s.UpperWick(i),
		green:     s.IsGreen(i),
		red:       s.IsRed(i),
	}
}

func (f *barFacts) uptrend() bool {
	return f.snap.Close > f.snap.MA20 && f.snap.MA20 > f.snap.MA50
}

func (f *barFacts) downtrend() bool {
	return f.snap.Close < f.snap.MA20 && f.snap.MA20 < f.snap.MA50
}
