package strategy

import (
	"fmt"

	"StockSentinel/internal/model"
)

type vsaRule struct {
	signal model.VSASignal
	when   func(f *barFacts) bool
	detail func(f *barFacts) string
}

// vsaRules are evaluated in order; the first match wins. Several predicates
// overlap (a bar can be both SIGN OF STRENGTH and ICEBERG) and the order is
// what resolves them.
var vsaRules = []vsaRule{
	{
		signal: model.VSASellingClimax,
		when:   isSellingClimax,
		detail: func(f *barFacts) string {
			return fmt.Sprintf("Panic selling on %.1fx volume absorbed by strong hands", f.snap.VolRatio)
		},
	},
	{
		signal: model.VSASpring,
		when:   isSpring,
		detail: func(f *barFacts) string {
			return fmt.Sprintf("Shakeout below support on low volume (%.1fx), supply exhausted", f.snap.VolRatio)
		},
	},
	{
		signal: model.VSAStoppingVolume,
		when:   isStoppingVolume,
		detail: func(f *barFacts) string {
			return fmt.Sprintf("High volume (%.1fx) stopped the decline, close in upper range", f.snap.VolRatio)
		},
	},
	{
		signal: model.VSASignOfStrength,
		when: func(f *barFacts) bool {
			return f.green && f.snap.VolRatio > 1.5 && f.snap.SpreadRatio > 1.2 && f.snap.AccRatio > 1.3
		},
		detail: func(f *barFacts) string {
			return fmt.Sprintf("Wide up bar on %.1fx volume with accumulation %.2f", f.snap.VolRatio, f.snap.AccRatio)
		},
	},
	{
		signal: model.VSANoSupply,
		when: func(f *barFacts) bool {
			pullback := f.red || f.body < 0.3*f.spread
			return pullback && f.snap.VolRatio <= 0.6 && f.snap.AccRatio > 0.8 && f.snap.Close > f.snap.MA50
		},
		detail: func(f *barFacts) string {
			return fmt.Sprintf("Pullback on low volume (%.1fx), sellers absent", f.snap.VolRatio)
		},
	},
	{
		signal: model.VSADryUp,
		when: func(f *barFacts) bool {
			return f.snap.VolRatio < 0.5 && f.snap.SpreadRatio < 0.7
		},
		detail: func(f *barFacts) string {
			return fmt.Sprintf("Volume dried up to %.1fx with a narrow range", f.snap.VolRatio)
		},
	},
	{
		signal: model.VSAIceberg,
		when: func(f *barFacts) bool {
			return f.snap.VolRatio > 1.2 && f.snap.SpreadRatio < 0.75 && f.snap.AccRatio > 1.2
		},
		detail: func(f *barFacts) string {
			return fmt.Sprintf("Hidden buying: %.1fx volume on a narrow spread (%.2f)", f.snap.VolRatio, f.snap.SpreadRatio)
		},
	},
	{
		signal: model.VSAHammer,
		when: func(f *barFacts) bool {
			return f.lowerWick > 2*f.body && f.lowerWick > 2*f.upperWick && f.lowerWick > 0.5*f.spread
		},
		detail: func(*barFacts) string {
			return "Long lower wick: buyers rejected lower prices"
		},
	},
	{
		signal: model.VSAUpthrust,
		when:   isUpthrust,
		detail: func(f *barFacts) string {
			return fmt.Sprintf("False breakout on %.1fx volume, closed near the low", f.snap.VolRatio)
		},
	},
	{
		signal: model.VSABuyingClimax,
		when:   isBuyingClimax,
		detail: func(f *barFacts) string {
			return fmt.Sprintf("Euphoric buying on %.1fx volume met heavy supply", f.snap.VolRatio)
		},
	},
	{
		signal: model.VSASignOfWeakness,
		when: func(f *barFacts) bool {
			return f.red && f.snap.VolRatio > 1.5 && f.snap.SpreadRatio > 1.2 && f.snap.AccRatio < 0.77
		},
		detail: func(f *barFacts) string {
			return fmt.Sprintf("Wide down bar on %.1fx volume with distribution %.2f", f.snap.VolRatio, f.snap.AccRatio)
		},
	},
	{
		signal: model.VSANoDemand,
		when: func(f *barFacts) bool {
			return f.green && f.snap.SpreadRatio < 0.7 && f.snap.VolRatio < 0.7
		},
		detail: func(f *barFacts) string {
			return fmt.Sprintf("Narrow up bar on low volume (%.1fx), buyers absent", f.snap.VolRatio)
		},
	},
}

// classifyVSA returns the first matching volume-spread signal.
func classifyVSA(f *barFacts) (model.VSASignal, string) {
	for _, r := range vsaRules {
		if r.when(f) {
			return r.signal, r.detail(f)
		}
	}
	return model.VSANeutral, fmt.Sprintf("No volume anomaly (vol %.1fx, spread %.1fx)", f.snap.VolRatio, f.snap.SpreadRatio)
}

// vsaWeight returns the scoring side and points for a VSA signal.
func vsaWeight(v model.VSASignal) (side, int) {
	switch v {
	case model.VSASpring, model.VSASignOfStrength:
		return sideBull, 3
	case model.VSASellingClimax, model.VSAStoppingVolume, model.VSANoSupply,
		model.VSADryUp, model.VSAIceberg, model.VSAHammer:
		return sideBull, 2
	case model.VSAUpthrust, model.VSABuyingClimax, model.VSASignOfWeakness:
		return sideBear, 3
	case model.VSANoDemand:
		return sideBear, 2
	case model.VSANeutral, model.VSAUnknown:
		return sideNone, 0
	}
	return sideNone, 0
}
