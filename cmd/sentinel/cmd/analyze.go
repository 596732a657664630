package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"StockSentinel/internal/model"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze SYMBOL",
	Short: "Analyse one ticker",
	Long: `Fetches daily history for SYMBOL, runs the signal engine and prints the result.

Examples:
  sentinel analyze AAPL
  sentinel analyze BBCA.JK --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the raw JSON result")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	svc, _ := newService(cmd.Context(), cfg, false)
	res, err := svc.Analyze(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if analyzeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return printResult(cmd.OutOrStdout(), res)
}

func price(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func printResult(out io.Writer, r *model.AnalysisResult) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Symbol\t%s\n", r.Symbol)
	fmt.Fprintf(tw, "Price\t%s (%+.2f%%)\n", price(r.Price), r.ChangePercent)
	fmt.Fprintf(tw, "Suggestion\t%s (confidence %d)\n", r.Suggestion, r.Confidence)
	fmt.Fprintf(tw, "Score\tbull %d / bear %d, confluence +%d\n", r.BullScore, r.BearScore, r.ConfluenceBonus)
	fmt.Fprintf(tw, "Wyckoff\t%s\t%s\n", r.WyckoffPhase, r.WyckoffDetail)
	fmt.Fprintf(tw, "VSA\t%s\t%s\n", r.VSASignal, r.VSADetail)
	fmt.Fprintf(tw, "VCP\t%s\t%s\n", r.VCPStatus, r.VCPDetail)
	fmt.Fprintf(tw, "Candle power\t%d (%s, CPP %.2f)\n", r.CandlePower, r.CPPBias, r.CPPScore)
	fmt.Fprintf(tw, "HAKA\t%v\n", r.IsHaka)
	if r.HasRiskLevels() {
		fmt.Fprintf(tw, "Stop / Target\t%s / %s\n", price(*r.StopLoss), price(*r.Target))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(r.Reasons) > 0 {
		fmt.Fprintf(out, "\nEvidence:\n  - %s\n", strings.Join(r.Reasons, "\n  - "))
	}
	return nil
}
