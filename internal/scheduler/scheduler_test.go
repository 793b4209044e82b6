package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/scorecard/pkg/logger"
)

type countingJob struct {
	name     string
	schedule string
	failures int32 // fail this many times before succeeding
	calls    atomic.Int32
}

func (j *countingJob) Name() string     { return j.name }
func (j *countingJob) Schedule() string { return j.schedule }

func (j *countingJob) Run(ctx context.Context) error {
	n := j.calls.Add(1)
	if n <= j.failures {
		return errors.New("transient")
	}
	return nil
}

func waitForResults(t *testing.T, s *Scheduler, name string, n int) []JobResult {
	t.Helper()
	var results []JobResult
	require.Eventually(t, func() bool {
		var err error
		results, err = s.GetJobHistory(name)
		return err == nil && len(results) >= n
	}, 2*time.Second, 5*time.Millisecond)
	return results
}

func TestAddJob(t *testing.T) {
	s := New(logger.Nop())

	require.NoError(t, s.AddJob(&countingJob{name: "b", schedule: "@daily"}))
	require.NoError(t, s.AddJob(&countingJob{name: "a", schedule: "0 0 6 * * *"}))

	assert.Error(t, s.AddJob(&countingJob{name: "a", schedule: "@daily"}), "duplicate name")
	assert.Error(t, s.AddJob(&countingJob{name: "c", schedule: "not a cron"}))

	assert.Equal(t, []string{"a", "b"}, s.GetAllJobs())

	require.NoError(t, s.RemoveJob("a"))
	assert.Equal(t, []string{"b"}, s.GetAllJobs())
	assert.Error(t, s.RemoveJob("a"))
}

func TestRunJob_Retries(t *testing.T) {
	s := New(logger.Nop(), WithRetry(3, time.Millisecond))
	job := &countingJob{name: "flaky", schedule: "@daily", failures: 2}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("flaky"))
	results := waitForResults(t, s, "flaky", 1)

	assert.True(t, results[0].Success)
	assert.Equal(t, 3, results[0].Attempts)
	assert.Empty(t, results[0].Error)

	stats := s.GetJobStats()["flaky"]
	assert.Equal(t, 1, stats.TotalRuns)
	assert.Equal(t, 1.0, stats.SuccessRate)
	assert.NotNil(t, stats.LastSuccess)
	assert.Nil(t, stats.LastFailure)
}

func TestRunJob_GivesUp(t *testing.T) {
	s := New(logger.Nop(), WithRetry(1, time.Millisecond))
	require.NoError(t, s.AddJob(&countingJob{name: "broken", schedule: "@daily", failures: 100}))

	require.NoError(t, s.RunJob("broken"))
	results := waitForResults(t, s, "broken", 1)

	assert.False(t, results[0].Success)
	assert.Equal(t, 2, results[0].Attempts)
	assert.Equal(t, "transient", results[0].Error)

	stats := s.GetJobStats()["broken"]
	assert.Equal(t, 1, stats.FailureCount)
	assert.Equal(t, 0.0, stats.SuccessRate)

	assert.Error(t, s.RunJob("missing"))
}

func TestStop_CancelsRetryWait(t *testing.T) {
	s := New(logger.Nop(), WithRetry(5, time.Hour))
	require.NoError(t, s.AddJob(&countingJob{name: "slow", schedule: "@daily", failures: 100}))
	s.Start()

	require.NoError(t, s.RunJob("slow"))

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}

	results, err := s.GetJobHistory("slow")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
}

func TestJobHistory_Limit(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < historyLimit+20; i++ {
		h.AddResult(JobResult{Success: i%2 == 0})
	}

	assert.Len(t, h.Results, historyLimit)
	assert.Len(t, h.GetLatestResults(10), 10)
	assert.Len(t, h.GetLatestResults(1000), historyLimit)
	assert.Equal(t, 0.5, h.GetSuccessRate())
	assert.Equal(t, 0.0, (&JobHistory{}).GetSuccessRate())
}
