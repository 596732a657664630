package strategy

import (
	"fmt"

	"StockSentinel/internal/calculator"
	"StockSentinel/internal/model"
)

const (
	hakaLookback       = 16
	hakaMinVolRatio    = 1.8
	hakaMinBodyPct     = 0.55
	hakaMinClosePos    = 0.65
	hakaMinCooldown    = 2
	hakaMaxCooldown    = 8
	hakaMaxSellVolPct  = 0.40
	hakaMaxDrawdownPct = 5.0
)

// hakaResult describes a markup bar followed by a quiet cooldown.
type hakaResult struct {
	IsHaka       bool
	Anchor       int // index of the markup bar, -1 when none
	Cooldown     int
	SellVolRatio float64
	DrawdownPct  float64
	Detail       string
}

// isMarkupBar reports whether bar k is a strong, high-volume markup candle.
func isMarkupBar(s calculator.Series, k int) (float64, bool) {
	if !s.IsGreen(k) {
		return 0, false
	}
	vr := calculator.VolRatio(s, 20, k)
	spread := s.Spread(k)
	ok := vr > hakaMinVolRatio &&
		s.Body(k) > hakaMinBodyPct*spread &&
		s.ClosePosition(k) > hakaMinClosePos &&
		s.Close[k] > s.MA(20, k)
	return vr, ok
}

// detectHaka finds the strongest markup bar in the trailing 16 bars (the
// latest excluded) and checks whether the bars since then form a healthy cooldown.
func detectHaka(f *barFacts, bias model.Bias) hakaResult {
	s, i := f.s, f.i
	res := hakaResult{Anchor: -1, Detail: "No markup bar in the last 16 sessions"}

	best := 0.0
	start := i - hakaLookback
	if start < 0 {
		start = 0
	}
	for k := start; k < i; k++ {
		if vr, ok := isMarkupBar(s, k); ok && vr > best {
			best, res.Anchor = vr, k
		}
	}
	if res.Anchor < 0 {
		return res
	}

	res.Cooldown = i - res.Anchor
	sellVol, totalVol := 0.0, 0.0
	for k := res.Anchor + 1; k <= i; k++ {
		totalVol += s.Volume[k]
		if s.IsRed(k) {
			sellVol += s.Volume[k]
		}
	}
	res.SellVolRatio = calculator.SafeDiv(sellVol, totalVol, 1)
	anchorClose := s.Close[res.Anchor]
	res.DrawdownPct = calculator.SafeDiv(anchorClose-f.snap.Close, anchorClose, 1) * 100

	res.IsHaka = res.Cooldown >= hakaMinCooldown &&
		res.Cooldown <= hakaMaxCooldown &&
		f.snap.Close > f.snap.MA20 &&
		res.SellVolRatio < hakaMaxSellVolPct &&
		bias != model.BiasBearish &&
		res.DrawdownPct < hakaMaxDrawdownPct

	if res.IsHaka {
		res.Detail = fmt.Sprintf("Markup %d bars ago (%.1fx volume), cooldown with %.0f%% sell volume and %.1f%% drawdown",
			res.Cooldown, best, res.SellVolRatio*100, res.DrawdownPct)
	} else {
		res.Detail = fmt.Sprintf("Markup %d bars ago, cooldown not confirmed", res.Cooldown)
	}
	return res
}
