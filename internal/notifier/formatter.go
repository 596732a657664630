package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"StockSentinel/internal/model"
)

var suggestionIcon = map[model.Suggestion]string{
	model.SuggestionBuy:   "🟢",
	model.SuggestionWait:  "🟡",
	model.SuggestionSell:  "🔴",
	model.SuggestionWatch: "⚪",
}

// formatPrice rounds half away from zero to two decimals.
func formatPrice(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// riskReward returns |target-price| / |price-stop| rounded to one decimal,
// or "" when the stop distance is zero.
func riskReward(price, stop, target float64) string {
	p := decimal.NewFromFloat(price)
	risk := p.Sub(decimal.NewFromFloat(stop)).Abs()
	if risk.IsZero() {
		return ""
	}
	reward := decimal.NewFromFloat(target).Sub(p).Abs()
	return reward.Div(risk).StringFixed(1)
}

// FormatAnalysis formats one analysis result into a Telegram HTML message.
func FormatAnalysis(r *model.AnalysisResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n", html.EscapeString(r.Symbol), time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Price: %s (%s, %+.2f%%)\n\n",
		formatPrice(r.Price), signedPrice(r.Change), r.ChangePercent))

	b.WriteString(fmt.Sprintf("%s <b>%s</b> | confidence %d%%\n", suggestionIcon[r.Suggestion], r.Suggestion, r.Confidence))
	b.WriteString(fmt.Sprintf("Score: bull %d / bear %d", r.BullScore, r.BearScore))
	if r.ConfluenceBonus > 0 {
		b.WriteString(fmt.Sprintf(" (+%d confluence)", r.ConfluenceBonus))
	}
	b.WriteString("\n\n")

	if r.WyckoffPhase == model.PhaseUnknown {
		writeReasons(&b, r.Reasons)
		return b.String()
	}

	b.WriteString("📈 <b>Signals:</b>\n")
	b.WriteString(fmt.Sprintf("  Wyckoff: %s\n", r.WyckoffPhase))
	b.WriteString(fmt.Sprintf("  VSA: %s\n", r.VSASignal))
	b.WriteString(fmt.Sprintf("  VCP: %s (RMV %.0f)\n", r.VCPStatus, r.RMV))
	b.WriteString(fmt.Sprintf("  Candle power: %d (%s)\n", r.CandlePower, r.CPPBias))
	if r.IsHaka {
		b.WriteString("  HAKA cooldown: yes\n")
	}
	b.WriteString(fmt.Sprintf("  MA20 %s | MA50 %s | MA200 %s\n\n",
		formatPrice(r.MA20), formatPrice(r.MA50), formatPrice(r.MA200)))

	if r.HasRiskLevels() {
		b.WriteString("🎯 <b>Levels:</b>\n")
		b.WriteString(fmt.Sprintf("  Stop: %s | Target: %s", formatPrice(*r.StopLoss), formatPrice(*r.Target)))
		if rr := riskReward(r.Price, *r.StopLoss, *r.Target); rr != "" {
			b.WriteString(fmt.Sprintf(" | R:R %s", rr))
		}
		b.WriteString("\n\n")
	}

	writeReasons(&b, r.Reasons)
	return b.String()
}

func signedPrice(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.IsNegative() {
		return d.StringFixed(2)
	}
	return "+" + d.StringFixed(2)
}

func writeReasons(b *strings.Builder, reasons []string) {
	if len(reasons) == 0 {
		return
	}
	b.WriteString("📝 <b>Evidence:</b>\n")
	for _, r := range reasons {
		b.WriteString("  • " + html.EscapeString(r) + "\n")
	}
}

// FormatError reports a failed analysis.
func FormatError(symbol string, err error) string {
	return fmt.Sprintf("⚠️ <b>%s</b>: analysis failed\n%s", html.EscapeString(symbol), html.EscapeString(err.Error()))
}

// FormatWatchlistHeader opens the daily watchlist run.
func FormatWatchlistHeader(symbols []string, at time.Time) string {
	return fmt.Sprintf("🗓 <b>Daily watchlist</b> | %s\n%s", at.Format("2006-01-02"), html.EscapeString(strings.Join(symbols, ", ")))
}

// HelpText lists the bot commands.
const HelpText = `<b>Commands</b>
/analyze SYMBOL - run the signal engine for a ticker
/watchlist - analyse every symbol on the watchlist
/help - show this message`
