package strategy

import (
	"fmt"
	"math"

	"StockSentinel/internal/model"
)

// signals bundles the detector outputs the scoring rules read.
type signals struct {
	f     *barFacts
	phase model.Phase
	vsa   model.VSASignal
	vcp   vcpResult
	cpp   float64
	bias  model.Bias
	evr   float64
	haka  hakaResult
	mom   momentumState
}

// scoringRule turns signals into zero or more pieces of evidence.
type scoringRule struct {
	name string
	eval func(sig *signals) []Evidence
}

// scoringRules run in this order; reasons and warnings keep the same order.
var scoringRules = []scoringRule{
	{"phase", rulePhase},
	{"vsa", ruleVSA},
	{"vcp", ruleVCP},
	{"cpp", ruleCPP},
	{"evr", ruleEVR},
	{"ma_structure", ruleMAStructure},
	{"haka", ruleHaka},
	{"accumulation", ruleAccumulation},
	{"pressure", rulePressure},
	{"momentum", ruleMomentum},
	{"streak", ruleStreak},
	{"overextension", ruleOverextension},
	{"exhaustion", ruleExhaustion},
	{"fading", ruleFading},
	{"high_momentum", ruleHighMomentum},
	{"long_streak", ruleLongStreak},
}

// evaluate runs every rule and folds the evidence into a scorecard.
func evaluate(sig *signals) scorecard {
	var all []Evidence
	for _, r := range scoringRules {
		all = append(all, r.eval(sig)...)
	}
	return fold(all)
}

func rulePhase(sig *signals) []Evidence {
	sd, pts := phaseWeight(sig.phase)
	switch sd {
	case sideBull:
		return []Evidence{bull("phase", pts, fmt.Sprintf("Wyckoff %s phase", sig.phase))}
	case sideBear:
		return []Evidence{bear("phase", pts, fmt.Sprintf("Wyckoff %s phase", sig.phase))}
	}
	return nil
}

func ruleVSA(sig *signals) []Evidence {
	sd, pts := vsaWeight(sig.vsa)
	switch sd {
	case sideBull:
		return []Evidence{bull("vsa", pts, fmt.Sprintf("VSA %s", sig.vsa))}
	case sideBear:
		return []Evidence{bear("vsa", pts, fmt.Sprintf("VSA %s", sig.vsa))}
	}
	return nil
}

func ruleVCP(sig *signals) []Evidence {
	switch sig.vcp.Status {
	case model.VCPPivot:
		return []Evidence{bull("vcp", 3, "VCP pivot: volatility fully contracted near highs")}
	case model.VCPBase:
		return []Evidence{bull("vcp", 2, "VCP base forming near highs")}
	case model.VCPContracting:
		return []Evidence{bull("vcp", 1, fmt.Sprintf("Price contracting (%d contractions)", sig.vcp.Contractions))}
	}
	return nil
}

func ruleCPP(sig *signals) []Evidence {
	mag := math.Abs(sig.cpp)
	switch sig.bias {
	case model.BiasBullish:
		pts := 1
		if mag > 1.5 {
			pts = 3
		} else if mag > 1.0 {
			pts = 2
		}
		return []Evidence{bull("cpp", pts, fmt.Sprintf("Candle power bullish (CPP %.2f)", sig.cpp))}
	case model.BiasBearish:
		pts := 2
		if mag > 1.0 {
			pts = 3
		}
		return []Evidence{bear("cpp", pts, fmt.Sprintf("Candle power bearish (CPP %.2f)", sig.cpp))}
	}
	return nil
}

// ruleEVR rewards a bar whose range kept pace with its volume in the
// direction of the candle.
func ruleEVR(sig *signals) []Evidence {
	if sig.evr < 0 {
		return nil
	}
	switch {
	case sig.f.green:
		return []Evidence{bull("evr", 1, fmt.Sprintf("Up move achieved with little effort (EVR %+.2f)", sig.evr))}
	case sig.f.red:
		return []Evidence{bear("evr", 1, fmt.Sprintf("Down move achieved with little effort (EVR %+.2f)", sig.evr))}
	}
	return nil
}

func ruleMAStructure(sig *signals) []Evidence {
	var out []Evidence
	snap := sig.f.snap
	switch {
	case sig.f.uptrend():
		out = append(out, bull("ma_structure", 1, "Price above MA20 > MA50"))
	case sig.f.downtrend():
		out = append(out, bear("ma_structure", 1, "Price below MA20 < MA50"))
	}
	if snap.Low <= snap.MA50*1.01 && snap.Close > snap.MA50 && sig.f.green {
		out = append(out, bull("ma_structure", 2, fmt.Sprintf("Successful test of MA50 support (%.2f)", snap.MA50)))
	}
	return out
}

func ruleHaka(sig *signals) []Evidence {
	if !sig.haka.IsHaka {
		return nil
	}
	return []Evidence{bull("haka", 3, fmt.Sprintf("Healthy cooldown %d bars after markup", sig.haka.Cooldown))}
}

func ruleAccumulation(sig *signals) []Evidence {
	acc := sig.f.snap.AccRatio
	switch {
	case acc > 2.0:
		return []Evidence{bull("accumulation", 2, fmt.Sprintf("Strong accumulation (ratio %.2f)", acc))}
	case acc > 1.5:
		return []Evidence{bull("accumulation", 1, fmt.Sprintf("Accumulation (ratio %.2f)", acc))}
	case acc < 0.6:
		return []Evidence{bear("accumulation", 1, fmt.Sprintf("Distribution volume dominates (ratio %.2f)", acc))}
	}
	return nil
}

func rulePressure(sig *signals) []Evidence {
	switch {
	case sig.mom.Acc3 > 1.2:
		return []Evidence{bull("pressure", 1, "Buying pressure over the last 3 sessions")}
	case sig.mom.Acc3 < 0.8 && sig.f.uptrend():
		return []Evidence{warning("pressure", "Weak buying in the last 3 sessions despite the uptrend")}
	}
	return nil
}

func ruleMomentum(sig *signals) []Evidence {
	m := sig.mom.Mom10
	switch {
	case m > 10:
		return []Evidence{bull("momentum", 2, fmt.Sprintf("Strong 10-day momentum %+.1f%%", m))}
	case m > 3:
		return []Evidence{bull("momentum", 1, fmt.Sprintf("Positive 10-day momentum %+.1f%%", m))}
	case m < -5:
		return []Evidence{bear("momentum", 1, fmt.Sprintf("Negative 10-day momentum %+.1f%%", m))}
	}
	return nil
}

func ruleStreak(sig *signals) []Evidence {
	var out []Evidence
	if sig.mom.UpStreak >= 3 {
		out = append(out, bull("streak", 1, fmt.Sprintf("%d consecutive higher closes", sig.mom.UpStreak)))
	}
	if sig.mom.Accelerating && sig.mom.Mom10 > 0 {
		out = append(out, bull("streak", 1, fmt.Sprintf("Momentum accelerating (3-day %+.1f%%)", sig.mom.Mom3)))
	}
	return out
}

func ruleOverextension(sig *signals) []Evidence {
	switch {
	case sig.mom.Extreme:
		return []Evidence{bear("overextension", 2, fmt.Sprintf("Extremely overextended: %+.1f%% above MA20, %+.1f%% above MA50",
			sig.mom.DistMA20, sig.mom.DistMA50))}
	case sig.mom.Overextended:
		return []Evidence{bear("overextension", 1, fmt.Sprintf("Overextended: %+.1f%% above MA20, %+.1f%% above MA50",
			sig.mom.DistMA20, sig.mom.DistMA50))}
	}
	return nil
}

func ruleExhaustion(sig *signals) []Evidence {
	if !sig.mom.Exhausted {
		return nil
	}
	return []Evidence{bear("exhaustion", 1, "Volume drying up after a strong run, exhaustion risk")}
}

func ruleFading(sig *signals) []Evidence {
	if !sig.mom.Fading {
		return nil
	}
	return []Evidence{warning("fading", fmt.Sprintf("Momentum fading: 3-day %+.1f%% vs 5-day %+.1f%%", sig.mom.Mom3, sig.mom.Mom5))}
}

func ruleHighMomentum(sig *signals) []Evidence {
	if sig.mom.Mom10 <= 50 {
		return nil
	}
	if sig.mom.Accelerating && !sig.mom.Exhausted {
		return []Evidence{note("high_momentum", fmt.Sprintf("Momentum %+.0f%% still accelerating on volume, continuation likely", sig.mom.Mom10))}
	}
	return []Evidence{warning("high_momentum", fmt.Sprintf("Momentum %+.0f%% without follow-through, correction risk", sig.mom.Mom10))}
}

func ruleLongStreak(sig *signals) []Evidence {
	if sig.mom.UpStreak < 5 {
		return nil
	}
	return []Evidence{warning("long_streak", fmt.Sprintf("%d straight up days, a pause is likely", sig.mom.UpStreak))}
}

// confluenceBonus counts how many of phase, VSA, VCP and CPP are bullish.
// Four pillars earn 15, three earn 8.
func confluenceBonus(sig *signals) int {
	n := 0
	if sd, _ := phaseWeight(sig.phase); sd == sideBull {
		n++
	}
	if sd, _ := vsaWeight(sig.vsa); sd == sideBull {
		n++
	}
	if sig.vcp.Status == model.VCPPivot || sig.vcp.Status == model.VCPBase || sig.vcp.Status == model.VCPContracting {
		n++
	}
	if sig.bias == model.BiasBullish {
		n++
	}
	switch n {
	case 4:
		return 15
	case 3:
		return 8
	}
	return 0
}
