package main

import (
	"os"

	"github.com/stockpulse/backend/cmd/pulse/commands"
)

// main is the entry point for the StockPulse CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
