package report

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/scorecard/internal/analysis"
	"github.com/wonny/scorecard/internal/contracts"
	"github.com/wonny/scorecard/internal/obs"
	"github.com/wonny/scorecard/internal/policy"
	"github.com/wonny/scorecard/internal/source"
	"github.com/wonny/scorecard/pkg/logger"
	"github.com/wonny/scorecard/pkg/redis"
)

// Run triggers
const (
	TriggerCLI       = "cli"
	TriggerAPI       = "api"
	TriggerScheduler = "scheduler"
)

// Archive persists computed reports
type Archive interface {
	SaveRun(ctx context.Context, trigger string, report *contracts.Report) error
}

// Service runs the pipeline with caching and metrics around it
// ⭐ SSOT: 리포트 생성/캐시는 여기서만
type Service struct {
	analyzer *analysis.Analyzer
	cache    *redis.Cache
	metrics  *obs.PipelineMetrics
	archive  Archive
	logger   *logger.Logger
	ttl      time.Duration
}

// NewService creates a report service. cache and metrics may be nil.
func NewService(analyzer *analysis.Analyzer, cache *redis.Cache, metrics *obs.PipelineMetrics, log *logger.Logger, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = redis.TTLMedium
	}
	return &Service{
		analyzer: analyzer,
		cache:    cache,
		metrics:  metrics,
		logger:   log,
		ttl:      ttl,
	}
}

// WithArchive records every freshly computed report in a
func (s *Service) WithArchive(a Archive) *Service {
	s.archive = a
	return s
}

// Generate returns the scorecard for data under pol (nil means the default policy).
// Identical dataset and policy content is served from cache; cached reports true.
func (s *Service) Generate(ctx context.Context, trigger string, data *contracts.Dataset, pol *policy.Config) (*contracts.Report, bool, error) {
	if pol == nil {
		pol = policy.Default()
	}

	key, err := s.cacheKey(data, pol)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		var cached contracts.Report
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.WithError(err).Warn("Report cache read failed")
		}
		s.observeCache(found)
		if found {
			return &cached, true, nil
		}
	}

	report, err := s.run(ctx, trigger, data, pol)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, report, s.ttl); err != nil {
			s.logger.WithError(err).Warn("Report cache write failed")
		}
	}

	return report, false, nil
}

// Refresh loads the dataset from src, recomputes and stores it as the latest report
func (s *Service) Refresh(ctx context.Context, trigger string, src source.Source, pol *policy.Config) (*contracts.Report, error) {
	if pol == nil {
		pol = policy.Default()
	}

	data, err := src.Load(ctx)
	if err != nil {
		if s.metrics != nil {
			s.metrics.ObserveFailure(trigger)
		}
		return nil, fmt.Errorf("load dataset from %s: %w", src.Name(), err)
	}

	report, err := s.run(ctx, trigger, data, pol)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, redis.LatestKey(pol.Meta.PolicyID), report, redis.TTLDaily); err != nil {
			s.logger.WithError(err).Warn("Latest report cache write failed")
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"run_id":  report.RunID,
		"source":  src.Name(),
		"sellers": len(report.Sellers),
		"skipped": report.Skipped.Total(),
	}).Info("Latest scorecard refreshed")

	return report, nil
}

// Latest returns the most recent refreshed report for a policy
func (s *Service) Latest(ctx context.Context, policyID string) (*contracts.Report, bool, error) {
	if s.cache == nil {
		return nil, false, nil
	}

	var cached contracts.Report
	found, err := s.cache.Get(ctx, redis.LatestKey(policyID), &cached)
	if err != nil {
		return nil, false, err
	}
	s.observeCache(found)
	if !found {
		return nil, false, nil
	}
	return &cached, true, nil
}

// run executes the pipeline, records metrics and archives the result
func (s *Service) run(ctx context.Context, trigger string, data *contracts.Dataset, pol *policy.Config) (*contracts.Report, error) {
	opts, err := policy.Options(pol, data)
	if err != nil {
		return nil, err
	}

	report, err := s.analyzer.Run(data, opts)
	if err != nil {
		if s.metrics != nil {
			s.metrics.ObserveFailure(trigger)
		}
		return nil, err
	}
	report.PolicyID = pol.Meta.PolicyID

	if s.metrics != nil {
		s.metrics.ObserveReport(trigger, report)
	}

	if s.archive != nil {
		if err := s.archive.SaveRun(ctx, trigger, report); err != nil {
			s.logger.WithError(err).WithField("run_id", report.RunID).Warn("Report archive failed")
		}
	}
	return report, nil
}

func (s *Service) cacheKey(data *contracts.Dataset, pol *policy.Config) (string, error) {
	dataHash, err := DatasetHash(data)
	if err != nil {
		return "", err
	}
	policyHash, err := policy.Hash(pol)
	if err != nil {
		return "", err
	}
	return redis.ReportKey(dataHash, policyHash), nil
}

func (s *Service) observeCache(hit bool) {
	if s.metrics != nil {
		s.metrics.ObserveCache(hit)
	}
}
