package strategy

import "StockSentinel/internal/calculator"

const (
	overextendedPct = 15.0
	extremePct      = 30.0
)

// momentumState summarises whether the current move is sustainable.
type momentumState struct {
	Mom3     float64
	Mom5     float64
	Mom10    float64
	Acc3     float64
	UpStreak int
	DistMA20 float64
	DistMA50 float64

	Overextended bool // includes Extreme
	Extreme      bool
	Fading       bool
	Accelerating bool
	Exhausted    bool
}

func analyzeMomentum(f *barFacts) momentumState {
	s, i := f.s, f.i
	m := momentumState{
		Mom3:     calculator.Momentum(s, 3, i),
		Mom5:     calculator.Momentum(s, 5, i),
		Mom10:    f.snap.Momentum,
		Acc3:     calculator.AccRatio(s, 3, i),
		DistMA20: f.snap.DistMA20,
		DistMA50: f.snap.DistMA50,
	}
	for k := i; k > 0 && s.Close[k] > s.Close[k-1]; k-- {
		m.UpStreak++
	}

	dist := m.DistMA20
	if m.DistMA50 > dist {
		dist = m.DistMA50
	}
	m.Extreme = dist > extremePct
	m.Overextended = dist > overextendedPct

	m.Fading = m.Mom3 < 0.4*m.Mom5 && m.Mom10 > 10
	m.Accelerating = m.Mom3 > 0 && m.Mom3 >= 0.4*m.Mom5
	m.Exhausted = s.AvgVolume(3, i) < 0.7*s.AvgVolume(20, i) && m.Mom10 > 20
	return m
}
