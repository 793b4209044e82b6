package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	inputPath  string
	policyPath string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scorecard",
	Short: "판매자 성과 스코어카드",
	Long: `Seller Scorecard CLI

판매 데이터(판매자, 상품, 영수증)에서 판매자별 매출, 이익, 보너스를 계산합니다.
Validator → Indexer → Accumulator → Ranker 4단계 파이프라인.

Usage:
  go run ./cmd/scorecard [command]

Examples:
  go run ./cmd/scorecard analyze --input sales.json
  go run ./cmd/scorecard analyze --input sales.yaml --policy config/policy/discounted.yaml --format json
  go run ./cmd/scorecard api
  go run ./cmd/scorecard schedule start`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyFlagEnv()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "", "dataset file or URL (overrides REPORT_INPUT)")
	rootCmd.PersistentFlags().StringVarP(&policyPath, "policy", "p", "", "scoring policy YAML (overrides REPORT_POLICY)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging (overrides LOG_LEVEL)")
}

// applyFlagEnv lets flags override the environment before config.Load reads it
func applyFlagEnv() {
	if inputPath != "" {
		os.Setenv("REPORT_INPUT", inputPath)
	}
	if policyPath != "" {
		os.Setenv("REPORT_POLICY", policyPath)
	}
	if verbose {
		os.Setenv("LOG_LEVEL", "debug")
	}
}
