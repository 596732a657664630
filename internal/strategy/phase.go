package strategy

import (
	"fmt"

	"StockSentinel/internal/model"
)

// phaseRule maps a predicate on the latest bar to a phase label.
type phaseRule struct {
	phase  model.Phase
	when   func(f *barFacts) bool
	detail func(f *barFacts) string
}

// baselinePhases are evaluated in order; the first match wins.
var baselinePhases = []phaseRule{
	{
		phase: model.PhaseMarkup,
		when:  func(f *barFacts) bool { return f.uptrend() && f.snap.Close > f.snap.MA200 },
		detail: func(f *barFacts) string {
			return fmt.Sprintf("Uptrend confirmed: price above MA20 > MA50 and MA200 (%.2f)", f.snap.MA200)
		},
	},
	{
		phase: model.PhaseMarkdown,
		when:  func(f *barFacts) bool { return f.downtrend() },
		detail: func(f *barFacts) string {
			return fmt.Sprintf("Downtrend confirmed: price below MA20 < MA50 (%+.1f%% from MA20)", f.snap.DistMA20)
		},
	},
	{
		phase: model.PhaseAccumulation,
		when: func(f *barFacts) bool {
			return f.snap.Close >= f.snap.MA20*0.92 && f.snap.Close <= f.snap.MA20
		},
		detail: func(f *barFacts) string {
			return fmt.Sprintf("Sideways near MA20 support (%+.1f%%), possible accumulation", f.snap.DistMA20)
		},
	},
	{
		phase: model.PhaseReAccumulation,
		when:  func(f *barFacts) bool { return f.uptrend() && f.snap.Close < f.snap.MA200*0.98 },
		detail: func(f *barFacts) string {
			return fmt.Sprintf("Short-term uptrend still below MA200 (%.2f), re-accumulation", f.snap.MA200)
		},
	},
	{
		phase: model.PhaseDistribution,
		when:  func(*barFacts) bool { return true },
		detail: func(f *barFacts) string {
			return fmt.Sprintf("No clear trend structure (%+.1f%% from MA20), possible distribution", f.snap.DistMA20)
		},
	},
}

// phaseEvents are evaluated in order after the baseline and every match
// overwrites the previous label, so the last matching event wins.
var phaseEvents = []phaseRule{
	{
		phase: model.PhaseSellingClimax,
		when:  isSellingClimax,
		detail: func(f *barFacts) string {
			return fmt.Sprintf("Selling climax: wide red bar on %.1fx volume closing off the lows", f.snap.VolRatio)
		},
	},
	{
		phase: model.PhaseBuyingClimax,
		when:  isBuyingClimax,
		detail: func(f *barFacts) string {
			return fmt.Sprintf("Buying climax: wide green bar on %.1fx volume closing near the lows", f.snap.VolRatio)
		},
	},
	{
		phase: model.PhaseSpring,
		when:  isSpring,
		detail: func(f *barFacts) string {
			return fmt.Sprintf("Spring: low undercut MA50 (%.2f) and was rejected on light volume", f.snap.MA50)
		},
	},
	{
		phase: model.PhaseUpthrust,
		when:  isUpthrust,
		detail: func(f *barFacts) string {
			return fmt.Sprintf("Upthrust: wide bar on %.1fx volume closing in the bottom 30%% of its range", f.snap.VolRatio)
		},
	},
	{
		phase: model.PhaseStoppingVolume,
		when:  isStoppingVolume,
		detail: func(f *barFacts) string {
			return fmt.Sprintf("Stopping volume: heavy selling (%.1fx) absorbed, close held the upper range", f.snap.VolRatio)
		},
	},
}

// classifyPhase returns the Wyckoff phase and its explanation.
func classifyPhase(f *barFacts) (model.Phase, string) {
	phase, detail := model.PhaseDistribution, ""
	for _, r := range baselinePhases {
		if r.when(f) {
			phase, detail = r.phase, r.detail(f)
			break
		}
	}
	for _, r := range phaseEvents {
		if r.when(f) {
			phase, detail = r.phase, r.detail(f)
		}
	}
	return phase, detail
}

// phaseWeight returns the scoring side and points for a phase.
func phaseWeight(p model.Phase) (side, int) {
	switch p {
	case model.PhaseSpring:
		return sideBull, 3
	case model.PhaseMarkup, model.PhaseReAccumulation, model.PhaseSellingClimax, model.PhaseStoppingVolume:
		return sideBull, 2
	case model.PhaseAccumulation:
		return sideBull, 1
	case model.PhaseBuyingClimax, model.PhaseUpthrust:
		return sideBear, 3
	case model.PhaseMarkdown:
		return sideBear, 2
	case model.PhaseDistribution:
		return sideBear, 1
	case model.PhaseUnknown:
		return sideNone, 0
	}
	return sideNone, 0
}
