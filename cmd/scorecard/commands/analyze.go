package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/wonny/scorecard/internal/report"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "스코어카드 1회 계산",
	Long: `데이터셋을 읽어 스코어카드를 계산하고 출력합니다.

데이터 소스 우선순위:
  1. --input (또는 REPORT_INPUT): 파일(.json/.yaml) 또는 http(s) URL
  2. DATABASE_URL: sales 스키마

Example:
  go run ./cmd/scorecard analyze --input testdata/sales.json
  go run ./cmd/scorecard analyze -i sales.yaml -p config/policy/discounted.yaml --format json`,
	RunE: runAnalyze,
}

var outputFormat string

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&outputFormat, "format", "f", formatTable, "output format (table|json)")
}

func runAnalyze(cmd *cobra.Command, args []string) (err error) {
	if outputFormat != formatTable && outputFormat != formatJSON {
		return fmt.Errorf("unknown format %q (table|json)", outputFormat)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, a.Close()) }()

	data, err := a.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load dataset from %s: %w", a.source.Name(), err)
	}

	result, cached, err := a.service.Generate(ctx, report.TriggerCLI, data, a.policy)
	if err != nil {
		a.log.WithError(err).Error("Scorecard failed")
		return err
	}

	return writeReport(os.Stdout, outputFormat, result, cached)
}
