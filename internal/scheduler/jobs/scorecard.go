package jobs

import (
	"context"

	"github.com/wonny/scorecard/internal/contracts"
	"github.com/wonny/scorecard/internal/policy"
	"github.com/wonny/scorecard/internal/report"
	"github.com/wonny/scorecard/internal/source"
	"github.com/wonny/scorecard/pkg/logger"
)

// Refresher recomputes and stores the latest report
type Refresher interface {
	Refresh(ctx context.Context, trigger string, src source.Source, pol *policy.Config) (*contracts.Report, error)
}

// ScorecardJob recomputes the latest scorecard from the configured source
type ScorecardJob struct {
	service  Refresher
	source   source.Source
	policy   *policy.Config
	schedule string
	logger   *logger.Logger
}

// NewScorecardJob creates a new scorecard job
func NewScorecardJob(svc Refresher, src source.Source, pol *policy.Config, schedule string, log *logger.Logger) *ScorecardJob {
	return &ScorecardJob{
		service:  svc,
		source:   src,
		policy:   pol,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *ScorecardJob) Name() string {
	return "scorecard_refresh"
}

// Schedule returns the configured cron expression
func (j *ScorecardJob) Schedule() string {
	return j.schedule
}

// Run executes the refresh
func (j *ScorecardJob) Run(ctx context.Context) error {
	j.logger.WithField("source", j.source.Name()).Debug("Starting scheduled scorecard refresh")

	result, err := j.service.Refresh(ctx, report.TriggerScheduler, j.source, j.policy)
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"run_id":      result.RunID,
		"total_bonus": result.TotalBonus().String(),
	}).Info("Scheduled scorecard refresh completed")

	return nil
}
