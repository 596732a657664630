package strategy

import "StockSentinel/internal/model"

// decisionInput is what the decision cascade reads.
type decisionInput struct {
	bull, bear, bonus int
	overextended      bool
}

func (d decisionInput) netBull() int { return d.bull - d.bear }

// decision is the outcome of the cascade before dampening.
type decision struct {
	Suggestion model.Suggestion
	Confidence int
	Note       string
}

type decisionRule struct {
	when   func(d decisionInput) bool
	decide func(d decisionInput) decision
}

// decisionRules are evaluated in order; the first match wins.
// The confluence bonus only lifts BUY and WAIT confidence.
var decisionRules = []decisionRule{
	{
		when: func(d decisionInput) bool { return d.netBull() >= 7 && d.bear <= 1 },
		decide: func(d decisionInput) decision {
			return decision{Suggestion: model.SuggestionBuy, Confidence: minInt(95, 55+3*d.netBull()+d.bonus)}
		},
	},
	{
		when: func(d decisionInput) bool { return d.netBull() >= 4 && d.bear <= 2 },
		decide: func(d decisionInput) decision {
			return decision{Suggestion: model.SuggestionBuy, Confidence: minInt(88, 48+3*d.netBull()+d.bonus)}
		},
	},
	{
		when: func(d decisionInput) bool { return d.bear >= 6 && d.bull <= 2 },
		decide: func(d decisionInput) decision {
			return decision{Suggestion: model.SuggestionSell, Confidence: minInt(95, 55+3*(d.bear-d.bull))}
		},
	},
	{
		when: func(d decisionInput) bool { return d.netBull() >= 2 },
		decide: func(d decisionInput) decision {
			note := "Setup is building: wait for volume confirmation before entering"
			if d.overextended {
				note = "Price is overextended: wait for a pullback toward MA20 before entering"
			}
			return decision{Suggestion: model.SuggestionWait, Confidence: minInt(75, 40+4*d.netBull()+d.bonus), Note: note}
		},
	},
	{
		when: func(d decisionInput) bool { return d.bear > d.bull },
		decide: func(d decisionInput) decision {
			return decision{
				Suggestion: model.SuggestionSell,
				Confidence: minInt(80, 40+4*(d.bear-d.bull)),
				Note:       "Bearish pressure dominates: reduce exposure or tighten stops",
			}
		},
	},
	{
		when: func(decisionInput) bool { return true },
		decide: func(decisionInput) decision {
			return decision{Suggestion: model.SuggestionWatch, Confidence: 35, Note: "Mixed signals: keep on the watchlist"}
		},
	},
}

// decide runs the cascade, dampens overextended BUY calls and clamps confidence.
func decide(d decisionInput, mom momentumState) decision {
	var out decision
	for _, r := range decisionRules {
		if r.when(d) {
			out = r.decide(d)
			break
		}
	}
	if out.Suggestion == model.SuggestionBuy {
		switch {
		case mom.Extreme:
			out.Confidence = maxInt(42, out.Confidence-22)
		case mom.Overextended:
			out.Confidence = maxInt(50, out.Confidence-10)
		}
	}
	out.Confidence = clampInt(out.Confidence, 0, 100)
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	return maxInt(lo, minInt(hi, v))
}
