package commands

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/wonny/scorecard/internal/analysis"
	"github.com/wonny/scorecard/internal/audit"
	"github.com/wonny/scorecard/internal/obs"
	"github.com/wonny/scorecard/internal/policy"
	"github.com/wonny/scorecard/internal/report"
	"github.com/wonny/scorecard/internal/source"
	"github.com/wonny/scorecard/pkg/config"
	"github.com/wonny/scorecard/pkg/database"
	"github.com/wonny/scorecard/pkg/httputil"
	"github.com/wonny/scorecard/pkg/logger"
	"github.com/wonny/scorecard/pkg/redis"
)

// app holds the wired dependencies shared by every command
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	db     *database.DB // nil without DATABASE_URL
	redis  *redis.Client
	source source.Source
	policy *policy.Config
	runs   *audit.Repository // nil without DATABASE_URL

	registry *prometheus.Registry
	metrics  *obs.PipelineMetrics
	service  *report.Service
}

// newApp wires config → logger → db/redis/http → source → service
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)
	a := &app{cfg: cfg, log: log}

	pol, _, err := policy.Load(cfg.Report.PolicyPath)
	if err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}
	a.policy = pol
	for _, w := range policy.Warn(pol) {
		log.WithField("code", w.Code).Warn(w.Message)
	}

	if cfg.HasDatabase() {
		a.db, err = database.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		log.Info("Connected to database")
	}

	a.redis, err = redis.New(ctx, cfg)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("connect to redis: %w", err), a.Close())
	}

	a.source, err = source.New(cfg, a.db, httputil.New(log))
	if err != nil {
		return nil, multierr.Append(err, a.Close())
	}

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.metrics = obs.NewPipelineMetrics(a.registry)

	var cache *redis.Cache
	if a.redis.Enabled() {
		cache = redis.NewCache(a.redis, "scorecard")
	}

	analyzer := analysis.New(analysis.WithDiagnostics(analysis.NewLogSink(log)))
	a.service = report.NewService(analyzer, cache, a.metrics, log, cfg.Report.CacheTTL)
	if a.db != nil {
		a.runs = audit.NewRepository(a.db.Pool)
		a.service.WithArchive(a.runs)
	}

	log.WithFields(map[string]interface{}{
		"source":    a.source.Name(),
		"policy_id": pol.Meta.PolicyID,
		"redis":     a.redis.Enabled(),
	}).Debug("Dependencies initialized")

	return a, nil
}

// Close releases every connection the app opened
func (a *app) Close() error {
	var err error
	if a.redis != nil {
		err = multierr.Append(err, a.redis.Close())
	}
	if a.db != nil {
		a.db.Close()
	}
	return err
}
