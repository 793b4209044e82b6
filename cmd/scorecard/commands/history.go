package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "스코어카드 실행 이력 조회",
	Long: `audit.scorecard_runs 에 저장된 최근 실행 이력을 출력합니다. DATABASE_URL 필요.

Example:
  go run ./cmd/scorecard history --limit 10`,
	RunE: runHistory,
}

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of runs")
}

func runHistory(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, a.Close()) }()

	if a.runs == nil {
		return errors.New("run history requires DATABASE_URL")
	}

	runs, err := a.runs.ListRuns(ctx, historyLimit)
	if err != nil {
		return err
	}

	fmt.Println(doubleLine)
	fmt.Printf("  %-36s %-12s %-10s %-19s %7s %12s\n", "RUN ID", "POLICY", "TRIGGER", "GENERATED", "SELLERS", "TOTAL BONUS")
	fmt.Println(singleLine)
	for _, r := range runs {
		fmt.Printf("  %-36s %-12s %-10s %-19s %7d %12.2f\n",
			r.RunID, truncate(r.PolicyID, 12), r.Trigger,
			r.GeneratedAt.Local().Format("2006-01-02 15:04:05"), r.Sellers, r.TotalBonus)
	}
	fmt.Println(doubleLine)
	fmt.Printf("  %d runs\n", len(runs))
	return nil
}
