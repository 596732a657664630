package strategy

import (
	"github.com/rs/zerolog/log"

	"StockSentinel/internal/calculator"
	"StockSentinel/internal/model"
)

const insufficientDataReason = "Insufficient historical data for analysis"

// Analyze runs the full pipeline over a symbol's daily candles and returns
// the trading call. It is a pure function of its inputs.
func Analyze(symbol string, quote model.Quote, candles []model.Candle) *model.AnalysisResult {
	s := calculator.Preprocess(candles)
	if s.Len() < calculator.MinBars {
		return insufficientData(symbol, quote)
	}

	f := newBarFacts(s)
	snap := f.snap

	phase, phaseDetail := classifyPhase(f)
	vsa, vsaDetail := classifyVSA(f)
	bias := calculator.CPPBias(snap.CPP)
	sig := &signals{
		f:     f,
		phase: phase,
		vsa:   vsa,
		vcp:   detectVCP(f),
		cpp:   snap.CPP,
		bias:  bias,
		evr:   calculator.EVR(s, f.i),
		haka:  detectHaka(f, bias),
		mom:   analyzeMomentum(f),
	}

	card := evaluate(sig)
	bonus := confluenceBonus(sig)
	d := decide(decisionInput{
		bull:         card.Bull,
		bear:         card.Bear,
		bonus:        bonus,
		overextended: sig.mom.Overextended,
	}, sig.mom)

	reasons := make([]string, 0, len(card.Reasons)+len(card.Warnings)+1)
	reasons = append(reasons, card.Reasons...)
	reasons = append(reasons, card.Warnings...)
	if d.Note != "" {
		reasons = append(reasons, d.Note)
	}

	stop, target := riskLevels(d.Suggestion, snap.Close, snap.ATR14, sig.mom.Overextended, sig.vcp.IsPivot, sig.haka.IsHaka)
	quote = fillQuote(quote, s)

	res := &model.AnalysisResult{
		Symbol:          symbol,
		Price:           quote.Price,
		Change:          quote.Change,
		ChangePercent:   quote.ChangePercent,
		WyckoffPhase:    phase,
		WyckoffDetail:   phaseDetail,
		VSASignal:       vsa,
		VSADetail:       vsaDetail,
		VCPStatus:       sig.vcp.Status,
		VCPDetail:       sig.vcp.Detail,
		CPPScore:        snap.CPP,
		CPPBias:         bias,
		CandlePower:     calculator.CandlePower(snap.CPP),
		EVRScore:        sig.evr,
		IsHaka:          sig.haka.IsHaka,
		Suggestion:      d.Suggestion,
		Confidence:      d.Confidence,
		BullScore:       card.Bull,
		BearScore:       card.Bear,
		ConfluenceBonus: bonus,
		Reasons:         reasons,
		StopLoss:        stop,
		Target:          target,
		MA20:            snap.MA20,
		MA50:            snap.MA50,
		MA200:           snap.MA200,
		ATR14:           snap.ATR14,
		VolRatio:        snap.VolRatio,
		AccRatio:        snap.AccRatio,
		RMV:             snap.RMV,
		Momentum:        snap.Momentum,
		DistMA20:        snap.DistMA20,
		DistMA50:        snap.DistMA50,
	}

	log.Debug().
		Str("symbol", symbol).
		Int("bars", s.Len()).
		Str("phase", string(phase)).
		Str("vsa", string(vsa)).
		Str("vcp", string(sig.vcp.Status)).
		Int("bull", card.Bull).
		Int("bear", card.Bear).
		Int("bonus", bonus).
		Str("suggestion", string(d.Suggestion)).
		Int("confidence", d.Confidence).
		Msg("Analysis complete")

	return res
}

// insufficientData is the fixed result for fewer than MinBars valid bars.
func insufficientData(symbol string, quote model.Quote) *model.AnalysisResult {
	return &model.AnalysisResult{
		Symbol:        symbol,
		Price:         quote.Price,
		Change:        quote.Change,
		ChangePercent: quote.ChangePercent,
		WyckoffPhase:  model.PhaseUnknown,
		WyckoffDetail: string(model.PhaseUnknown),
		VSASignal:     model.VSAUnknown,
		VSADetail:     string(model.VSAUnknown),
		VCPStatus:     model.VCPUnknown,
		VCPDetail:     string(model.VCPUnknown),
		CPPBias:       model.BiasUnknown,
		CandlePower:   50,
		Suggestion:    model.SuggestionWatch,
		Confidence:    0,
		Reasons:       []string{insufficientDataReason},
		RMV:           50,
		VolRatio:      1,
		AccRatio:      1,
	}
}

// fillQuote derives price and change from the last two closes when the
// live quote is missing.
func fillQuote(q model.Quote, s calculator.Series) model.Quote {
	if q.Price != 0 {
		return q
	}
	i := s.Last()
	q.Price = s.Close[i]
	if i > 0 {
		q.Change = s.Close[i] - s.Close[i-1]
		q.ChangePercent = calculator.DistancePct(s.Close[i], s.Close[i-1])
	}
	return q
}
