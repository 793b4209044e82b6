package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/wonny/scorecard/internal/report"
	"github.com/wonny/scorecard/internal/scheduler"
	"github.com/wonny/scorecard/internal/scheduler/jobs"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "스케줄러 관리",
	Long: `설정된 소스에서 스코어카드를 주기적으로 재계산합니다.
결과는 Redis에 최신 리포트로 저장되어 GET /api/scorecard/latest 가 사용합니다.

Subcommands:
  start   - 스케줄러 시작 (REPORT_SCHEDULE, 기본 매일 06:00)
  run     - 재계산 1회 즉시 실행

Example:
  go run ./cmd/scorecard schedule start
  go run ./cmd/scorecard schedule run`,
}

var (
	scheduleStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		RunE:  runScheduler,
	}

	scheduleRunCmd = &cobra.Command{
		Use:   "run",
		Short: "재계산 1회 즉시 실행",
		RunE:  runRefreshOnce,
	}
)

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.AddCommand(scheduleStartCmd)
	scheduleCmd.AddCommand(scheduleRunCmd)
}

func runScheduler(cmd *cobra.Command, args []string) (err error) {
	a, err := newApp(context.Background())
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, a.Close()) }()

	if !a.redis.Enabled() {
		a.log.Warn("Redis disabled: scheduled reports are computed but not stored")
	}

	sched := scheduler.New(a.log)
	job := jobs.NewScorecardJob(a.service, a.source, a.policy, a.cfg.Report.Schedule, a.log)
	if err := sched.AddJob(job); err != nil {
		return err
	}

	sched.Start()
	defer sched.Stop()

	fmt.Printf("\n✅ Scheduler running: %s (%s)\n", job.Name(), job.Schedule())
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)
	<-quit

	for name, stats := range sched.GetJobStats() {
		a.log.WithFields(map[string]interface{}{
			"job":       name,
			"runs":      stats.TotalRuns,
			"successes": stats.SuccessCount,
			"failures":  stats.FailureCount,
		}).Info("Job summary")
	}
	return nil
}

func runRefreshOnce(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, a.Close()) }()

	result, err := a.service.Refresh(ctx, report.TriggerScheduler, a.source, a.policy)
	if err != nil {
		return err
	}

	writeTable(os.Stdout, result, false)
	return nil
}
