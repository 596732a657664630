package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSentinel/internal/config"
	"StockSentinel/internal/model"
)

func TestPrintResult(t *testing.T) {
	stop, target := 97.255, 106.0
	r := &model.AnalysisResult{
		Symbol:        "AAPL",
		Price:         100,
		ChangePercent: 1.25,
		WyckoffPhase:  model.PhaseMarkup,
		VSASignal:     model.VSANeutral,
		VCPStatus:     model.VCPNone,
		CPPBias:       model.BiasBullish,
		Suggestion:    model.SuggestionBuy,
		Confidence:    80,
		Reasons:       []string{"first", "second"},
		StopLoss:      &stop,
		Target:        &target,
	}
	var buf bytes.Buffer
	require.NoError(t, printResult(&buf, r))

	out := buf.String()
	assert.Contains(t, out, "100.00 (+1.25%)")
	assert.Contains(t, out, "BUY (confidence 80)")
	assert.Contains(t, out, "97.26 / 106.00")
	assert.Contains(t, out, "Evidence:\n  - first\n  - second\n")
}

func TestNewFetcher(t *testing.T) {
	c := &config.Config{}
	assert.Equal(t, "yahoo", newFetcher(c).Name())

	c.DataSource.BaseURL = "https://bars.example.com"
	assert.Equal(t, "rest", newFetcher(c).Name())
}
