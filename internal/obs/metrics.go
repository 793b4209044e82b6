package obs

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wonny/scorecard/internal/contracts"
)

// Namespace prefixes every collector
const Namespace = "scorecard"

// HTTPMetrics groups Prometheus collectors for the API
type HTTPMetrics struct {
	ReqTotal *prometheus.CounterVec
	ReqDur   *prometheus.HistogramVec
	InFlight prometheus.Gauge
}

// NewHTTPMetrics registers and returns HTTP collectors
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &HTTPMetrics{
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "route", "status"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency distribution in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "route"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "http_in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
	}

	mustRegister(reg, m.ReqTotal, func(c prometheus.Collector) { m.ReqTotal = c.(*prometheus.CounterVec) })
	mustRegister(reg, m.ReqDur, func(c prometheus.Collector) { m.ReqDur = c.(*prometheus.HistogramVec) })
	mustRegister(reg, m.InFlight, func(c prometheus.Collector) { m.InFlight = c.(prometheus.Gauge) })
	return m
}

// Middleware instruments requests; the route label is the mux path template
func (m *HTTPMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := NewStatusRecorder(w)
		m.InFlight.Inc()
		start := time.Now()
		next.ServeHTTP(recorder, r)
		m.InFlight.Dec()

		route := "unknown"
		if cr := mux.CurrentRoute(r); cr != nil {
			if tpl, err := cr.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		m.ReqTotal.WithLabelValues(r.Method, route, strconv.Itoa(recorder.Status())).Inc()
		m.ReqDur.WithLabelValues(r.Method, route).Observe(DurationMillis(time.Since(start)))
	})
}

// PipelineMetrics groups collectors for scorecard runs
type PipelineMetrics struct {
	RunsTotal     *prometheus.CounterVec
	SkippedTotal  *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	CacheTotal    *prometheus.CounterVec
	Sellers       prometheus.Gauge
}

// NewPipelineMetrics registers and returns pipeline collectors
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &PipelineMetrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "runs_total",
			Help:      "Scorecard pipeline runs by trigger and outcome.",
		}, []string{"trigger", "status"}),
		SkippedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "skipped_total",
			Help:      "Records and line items skipped during accumulation.",
		}, []string{"reason"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "stage_duration_ms",
			Help:      "Pipeline stage latency in milliseconds.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000},
		}, []string{"stage"}),
		CacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "report_cache_total",
			Help:      "Report cache lookups by result.",
		}, []string{"result"}),
		Sellers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "last_run_sellers",
			Help:      "Number of sellers ranked by the most recent run.",
		}),
	}

	mustRegister(reg, m.RunsTotal, func(c prometheus.Collector) { m.RunsTotal = c.(*prometheus.CounterVec) })
	mustRegister(reg, m.SkippedTotal, func(c prometheus.Collector) { m.SkippedTotal = c.(*prometheus.CounterVec) })
	mustRegister(reg, m.StageDuration, func(c prometheus.Collector) { m.StageDuration = c.(*prometheus.HistogramVec) })
	mustRegister(reg, m.CacheTotal, func(c prometheus.Collector) { m.CacheTotal = c.(*prometheus.CounterVec) })
	mustRegister(reg, m.Sellers, func(c prometheus.Collector) { m.Sellers = c.(prometheus.Gauge) })
	return m
}

// ObserveReport records a successful run
func (m *PipelineMetrics) ObserveReport(trigger string, report *contracts.Report) {
	m.RunsTotal.WithLabelValues(trigger, "success").Inc()
	m.Sellers.Set(float64(len(report.Sellers)))

	m.SkippedTotal.WithLabelValues("unknown_seller").Add(float64(report.Skipped.UnknownSellers))
	m.SkippedTotal.WithLabelValues("malformed_item").Add(float64(report.Skipped.MalformedItems))
	m.SkippedTotal.WithLabelValues("unknown_product").Add(float64(report.Skipped.UnknownProducts))

	for _, stage := range report.Stages {
		m.StageDuration.WithLabelValues(stage.Stage.ShortName()).Observe(float64(stage.Duration) / 1000)
	}
}

// ObserveFailure records a failed run
func (m *PipelineMetrics) ObserveFailure(trigger string) {
	m.RunsTotal.WithLabelValues(trigger, "error").Inc()
}

// ObserveCache records a cache lookup
func (m *PipelineMetrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheTotal.WithLabelValues(result).Inc()
}

// DurationMillis converts a duration to milliseconds for metric observation
func DurationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// mustRegister reuses an already registered collector of the same name
func mustRegister(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			reuse(are.ExistingCollector)
			return
		}
		panic(fmt.Errorf("register metric: %w", err))
	}
}
