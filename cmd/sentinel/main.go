// Package main is the StockSentinel CLI.
//
// Usage:
//
//	sentinel analyze AAPL [--json]
//	sentinel serve
//	sentinel bot
package main

import (
	"os"

	"StockSentinel/cmd/sentinel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
