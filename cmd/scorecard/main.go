package main

import (
	"os"

	"github.com/wonny/scorecard/cmd/scorecard/commands"
)

// main is the entry point for the scorecard CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/scorecard [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
