package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSentinel/internal/model"
)

func TestDecide_Cascade(t *testing.T) {
	tests := []struct {
		name     string
		in       decisionInput
		mom      momentumState
		want     model.Suggestion
		wantConf int
		wantNote string
	}{
		{"strong buy", decisionInput{bull: 10, bear: 1}, momentumState{}, model.SuggestionBuy, 82, ""},
		{"strong buy capped", decisionInput{bull: 16, bear: 0, bonus: 15}, momentumState{}, model.SuggestionBuy, 95, ""},
		{"moderate buy", decisionInput{bull: 6, bear: 2}, momentumState{}, model.SuggestionBuy, 60, ""},
		{"strong sell", decisionInput{bull: 1, bear: 8}, momentumState{}, model.SuggestionSell, 76, ""},
		{"wait", decisionInput{bull: 5, bear: 3, bonus: 8}, momentumState{}, model.SuggestionWait, 56, "volume confirmation"},
		{"wait overextended", decisionInput{bull: 5, bear: 3, overextended: true}, momentumState{}, model.SuggestionWait, 48, "pullback toward MA20"},
		{"weak sell", decisionInput{bull: 3, bear: 5}, momentumState{}, model.SuggestionSell, 48, "Bearish pressure"},
		{"watch", decisionInput{bull: 3, bear: 3}, momentumState{}, model.SuggestionWatch, 35, "Mixed signals"},
		{"buy dampened overextended", decisionInput{bull: 10, bear: 1}, momentumState{Overextended: true}, model.SuggestionBuy, 72, ""},
		{"buy dampened extreme", decisionInput{bull: 8, bear: 1}, momentumState{Overextended: true, Extreme: true}, model.SuggestionBuy, 54, ""},
		{"dampening floor", decisionInput{bull: 5, bear: 1}, momentumState{Overextended: true, Extreme: true}, model.SuggestionBuy, 42, ""},
		{"sell not dampened", decisionInput{bull: 0, bear: 7}, momentumState{Extreme: true}, model.SuggestionSell, 76, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decide(tt.in, tt.mom)
			assert.Equal(t, tt.want, got.Suggestion)
			assert.Equal(t, tt.wantConf, got.Confidence)
			if tt.wantNote == "" {
				assert.Empty(t, got.Note)
			} else {
				assert.Contains(t, got.Note, tt.wantNote)
			}
		})
	}
}

func TestRiskLevels(t *testing.T) {
	stop, target := riskLevels(model.SuggestionBuy, 100, 2, false, false, false)
	require.NotNil(t, stop)
	require.NotNil(t, target)
	assert.InDelta(t, 97, *stop, 1e-9)
	assert.InDelta(t, 106, *target, 1e-9)

	stop, target = riskLevels(model.SuggestionBuy, 100, 2, false, true, false)
	assert.InDelta(t, 98, *stop, 1e-9)
	assert.InDelta(t, 108, *target, 1e-9)

	// Overextension tightens the stop even when a pivot is present.
	stop, target = riskLevels(model.SuggestionBuy, 100, 2, true, true, false)
	assert.InDelta(t, 97.6, *stop, 1e-9)
	assert.InDelta(t, 108, *target, 1e-9)

	stop, target = riskLevels(model.SuggestionSell, 100, 2, false, false, true)
	assert.InDelta(t, 103, *stop, 1e-9)
	assert.InDelta(t, 92, *target, 1e-9)

	for _, s := range []model.Suggestion{model.SuggestionWait, model.SuggestionWatch} {
		stop, target = riskLevels(s, 100, 2, false, false, false)
		assert.Nil(t, stop)
		assert.Nil(t, target)
	}
}

func TestConfluenceBonus(t *testing.T) {
	tests := []struct {
		name  string
		phase model.Phase
		vsa   model.VSASignal
		vcp   model.VCPStatus
		bias  model.Bias
		want  int
	}{
		{"all four pillars", model.PhaseMarkup, model.VSASignOfStrength, model.VCPPivot, model.BiasBullish, 15},
		{"contracting counts as vcp pillar", model.PhaseSpring, model.VSANoSupply, model.VCPContracting, model.BiasBullish, 15},
		{"base counts as vcp pillar", model.PhaseAccumulation, model.VSADryUp, model.VCPBase, model.BiasBullish, 15},
		{"three without bias", model.PhaseMarkup, model.VSAIceberg, model.VCPBase, model.BiasNeutral, 8},
		{"three without vcp", model.PhaseStoppingVolume, model.VSAHammer, model.VCPNone, model.BiasBullish, 8},
		{"three with bearish vsa", model.PhaseReAccumulation, model.VSANoDemand, model.VCPPivot, model.BiasBullish, 8},
		{"two pillars", model.PhaseMarkup, model.VSANeutral, model.VCPNone, model.BiasBullish, 0},
		{"one pillar", model.PhaseDistribution, model.VSANeutral, model.VCPContracting, model.BiasBearish, 0},
		{"none", model.PhaseMarkdown, model.VSAUpthrust, model.VCPNone, model.BiasBearish, 0},
		{"unknown everything", model.PhaseUnknown, model.VSAUnknown, model.VCPUnknown, model.BiasUnknown, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := &signals{
				phase: tt.phase,
				vsa:   tt.vsa,
				vcp:   vcpResult{Status: tt.vcp},
				bias:  tt.bias,
			}
			assert.Equal(t, tt.want, confluenceBonus(sig))
		})
	}
}
