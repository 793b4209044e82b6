package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/wonny/scorecard/internal/analysis"
	"github.com/wonny/scorecard/internal/api/handlers"
	"github.com/wonny/scorecard/internal/obs"
	"github.com/wonny/scorecard/internal/report"
	"github.com/wonny/scorecard/pkg/logger"
	"github.com/wonny/scorecard/pkg/redis"
)

const body = `{"dataset": {
	"sellers": [{"id": "s1", "first_name": "Ivan", "last_name": "Petrov"}],
	"products": [{"sku": "A", "price": 100, "purchase_price": 60}],
	"purchase_records": [{"seller_id": "s1", "total_amount": 200, "items": [{"sku": "A", "quantity": 2}]}]
}}`

func baseDeps() RouterDeps {
	svc := report.NewService(analysis.New(), nil, nil, logger.Nop(), 0)
	return RouterDeps{
		Scorecard: handlers.NewScorecardHandler(svc, nil, nil, logger.Nop()),
		Health:    handlers.NewHealthHandler("scorecard-api", nil),
		Logger:    logger.Nop(),
	}
}

func do(h http.Handler, method, path, payload string) *httptest.ResponseRecorder {
	var req *http.Request
	if payload == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(payload))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Routes(t *testing.T) {
	router := NewRouter(baseDeps())

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodPost, "/api/scorecard", body, http.StatusOK},
		{http.MethodGet, "/api/scorecard/latest", "", http.StatusNotFound},
		{http.MethodGet, "/api/scorecard", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/metrics", "", http.StatusNotFound}, // no gatherer configured
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := do(router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRouter_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	deps := baseDeps()
	deps.Metrics = obs.NewHTTPMetrics(reg)
	deps.Gatherer = reg
	router := NewRouter(deps)

	require.Equal(t, http.StatusOK, do(router, http.MethodPost, "/api/scorecard", body).Code)

	rec := do(router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/api/scorecard"`)
}

func TestRouter_GlobalRateLimit(t *testing.T) {
	deps := baseDeps()
	deps.Limiter = rate.NewLimiter(rate.Limit(0.001), 1)
	router := NewRouter(deps)

	assert.Equal(t, http.StatusOK, do(router, http.MethodPost, "/api/scorecard", body).Code)

	rec := do(router, http.MethodPost, "/api/scorecard", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// health is outside /api and never limited
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/health", "").Code)
}

func TestRouter_ClientRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewFromAddr(mr.Addr())
	t.Cleanup(func() { client.Close() })

	deps := baseDeps()
	deps.ClientLimiter = redis.NewRateLimiter(client, "test")
	deps.ClientLimit = 2
	router := NewRouter(deps)

	for i := 0; i < 2; i++ {
		rec := do(router, http.MethodPost, "/api/scorecard", body)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := do(router, http.MethodPost, "/api/scorecard", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	// reads are not client limited
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/api/scorecard/latest", "").Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	h := recoveryMiddleware(logger.Nop())(panicky)

	rec := do(h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL")
}
