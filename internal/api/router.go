package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/wonny/scorecard/internal/api/handlers"
	"github.com/wonny/scorecard/internal/obs"
	"github.com/wonny/scorecard/pkg/logger"
	"github.com/wonny/scorecard/pkg/redis"
)

// RouterDeps collects everything the router wires together.
// Optional fields may be left nil.
type RouterDeps struct {
	Scorecard *handlers.ScorecardHandler
	Health    *handlers.HealthHandler
	Runs      *handlers.RunsHandler // nil without a database
	Logger    *logger.Logger

	Metrics  *obs.HTTPMetrics
	Gatherer prometheus.Gatherer // serves /metrics when set

	Limiter       *rate.Limiter      // process-wide
	ClientLimiter *redis.RateLimiter // per client, POST /api/scorecard only
	ClientLimit   int                // requests per minute
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(deps RouterDeps) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", deps.Health.Check).Methods(http.MethodGet)

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	if deps.Limiter != nil {
		api.Use(rateLimitMiddleware(deps.Limiter))
	}

	api.HandleFunc("/scorecard/latest", deps.Scorecard.Latest).Methods(http.MethodGet)
	if deps.Runs != nil {
		api.HandleFunc("/scorecard/runs", deps.Runs.List).Methods(http.MethodGet)
		api.HandleFunc("/scorecard/runs/{run_id}", deps.Runs.Get).Methods(http.MethodGet)
	}

	create := http.Handler(http.HandlerFunc(deps.Scorecard.Create))
	if deps.ClientLimiter != nil && deps.ClientLimit > 0 {
		create = clientLimitMiddleware(deps.ClientLimiter, deps.ClientLimit, deps.Logger)(create)
	}
	api.Handle("/scorecard", create).Methods(http.MethodPost)

	// Apply middleware
	r.Use(recoveryMiddleware(deps.Logger))
	r.Use(loggingMiddleware(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	return r
}
