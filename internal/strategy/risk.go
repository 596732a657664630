package strategy

import "StockSentinel/internal/model"

// riskLevels derives stop-loss and target from ATR14. Only BUY and SELL
// calls carry levels; WAIT and WATCH return nil for both.
func riskLevels(s model.Suggestion, price, atr float64, overextended, pivot, haka bool) (stop, target *float64) {
	if s != model.SuggestionBuy && s != model.SuggestionSell {
		return nil, nil
	}

	slMult := 1.5
	switch {
	case overextended:
		slMult = 1.2
	case pivot:
		slMult = 1.0
	}
	tpMult := 3.0
	if pivot || haka {
		tpMult = 4.0
	}

	var sl, tp float64
	if s == model.SuggestionBuy {
		sl = price - atr*slMult
		tp = price + atr*tpMult
	} else {
		sl = price + atr*slMult
		tp = price - atr*tpMult
	}
	return &sl, &tp
}
