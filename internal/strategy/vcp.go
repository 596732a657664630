package strategy

import (
	"fmt"

	"StockSentinel/internal/calculator"
	"StockSentinel/internal/model"
)

const (
	vcpScanBars      = 40
	vcpWindow        = 5
	vcpShrinkFactor  = 0.7 // a contraction is at least 30% shallower than the previous one
	vcpMaxDepthPct   = 15.0
	vcpPivotMaxRMV   = 20.0
	vcpNearHighRatio = 0.8
)

type vcpResult struct {
	Status       model.VCPStatus
	Detail       string
	NearHigh     bool
	IsVCP        bool
	IsPivot      bool
	Contractions int
}

// detectVCP evaluates the volatility-contraction pattern at the latest bar.
func detectVCP(f *barFacts) vcpResult {
	s, i := f.s, f.i

	high30 := calculator.HighestHigh(s, 30, i)
	nearHigh := f.snap.Close > vcpNearHighRatio*high30

	spreadTight := s.AvgSpread(5, i) < 0.75*s.AvgSpread(20, i)
	volumeTight := s.AvgVolume(5, i) < 0.85*s.AvgVolume(20, i)
	isVCP := nearHigh && spreadTight && volumeTight
	isPivot := isVCP && f.snap.RMV <= vcpPivotMaxRMV

	res := vcpResult{
		NearHigh:     nearHigh,
		IsVCP:        isVCP,
		IsPivot:      isPivot,
		Contractions: countContractions(s, i),
	}

	switch {
	case isPivot:
		res.Status = model.VCPPivot
		res.Detail = fmt.Sprintf("Volatility pivot: RMV %.0f with tight range and volume near the 30-bar high", f.snap.RMV)
	case isVCP:
		res.Status = model.VCPBase
		res.Detail = fmt.Sprintf("Base forming: range and volume contracting within %.0f%% of the 30-bar high",
			(1-f.snap.Close/high30)*100)
	case res.Contractions >= 2:
		res.Status = model.VCPContracting
		res.Detail = fmt.Sprintf("%d contractions detected", res.Contractions)
	default:
		res.Status = model.VCPNone
		res.Detail = "No volatility contraction"
	}
	return res
}

// countContractions walks the trailing 40 bars in 5-bar windows, oldest first,
// and counts windows whose depth shrank by at least 30% while staying under 15%.
func countContractions(s calculator.Series, i int) int {
	first := i - vcpScanBars + vcpWindow
	if first < vcpWindow-1 {
		first = vcpWindow - 1
	}
	count := 0
	prev := -1.0
	for end := first; end <= i; end += vcpWindow {
		depth := calculator.DepthPct(s, vcpWindow, end)
		if prev > 0 && depth <= prev*vcpShrinkFactor && depth < vcpMaxDepthPct {
			count++
		}
		prev = depth
	}
	return count
}
