package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/time/rate"

	"github.com/wonny/scorecard/internal/api"
	"github.com/wonny/scorecard/internal/api/handlers"
	"github.com/wonny/scorecard/internal/obs"
	"github.com/wonny/scorecard/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

Endpoints:
  GET  /health                 - Health check (postgres, redis)
  POST /api/scorecard          - 요청 본문의 데이터셋으로 스코어카드 계산
  GET  /api/scorecard/latest   - 설정된 소스의 최신 스코어카드
  GET  /api/scorecard/runs     - 실행 이력 (DATABASE_URL)
  GET  /api/scorecard/runs/{id}
  GET  /metrics                - Prometheus metrics (METRICS_ENABLED)

Example:
  go run ./cmd/scorecard api
  go run ./cmd/scorecard api --port 8080 --client-limit 30`,
	RunE: runAPIServer,
}

var (
	apiPort     string
	clientLimit int
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (default PORT)")
	apiCmd.Flags().IntVar(&clientLimit, "client-limit", 60, "POST /api/scorecard requests per client per minute (redis only, 0 disables)")
}

func runAPIServer(cmd *cobra.Command, args []string) (err error) {
	a, err := newApp(context.Background())
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, a.Close()) }()

	cfg, log := a.cfg, a.log
	if apiPort != "" {
		cfg.Port = apiPort
	}

	checks := map[string]handlers.Pinger{}
	if a.db != nil {
		checks["postgres"] = a.db
	}
	if a.redis.Enabled() {
		checks["redis"] = a.redis
	}

	deps := api.RouterDeps{
		Scorecard: handlers.NewScorecardHandler(a.service, a.source, a.policy, log),
		Health:    handlers.NewHealthHandler("scorecard-api", checks),
		Logger:    log,
	}
	if a.runs != nil {
		deps.Runs = handlers.NewRunsHandler(a.runs, log)
	}
	if cfg.MetricsEnabled {
		deps.Metrics = obs.NewHTTPMetrics(a.registry)
		deps.Gatherer = a.registry
	}
	if cfg.API.RateLimit > 0 {
		deps.Limiter = rate.NewLimiter(rate.Limit(cfg.API.RateLimit), cfg.API.RateBurst)
	}
	if a.redis.Enabled() && clientLimit > 0 {
		deps.ClientLimiter = redis.NewRateLimiter(a.redis, "scorecard")
		deps.ClientLimit = clientLimit
	}

	server := api.New(cfg, log, api.NewRouter(deps))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  POST /api/scorecard")
	fmt.Println("  GET  /api/scorecard/latest")
	if a.runs != nil {
		fmt.Println("  GET  /api/scorecard/runs")
		fmt.Println("  GET  /api/scorecard/runs/{run_id}")
	}
	if cfg.MetricsEnabled {
		fmt.Println("  GET  /metrics")
	}
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
