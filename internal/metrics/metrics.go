// Package metrics exposes the API's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/compare"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bench_history"

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RunsAppended *prometheus.CounterVec
	Regressions  *prometheus.CounterVec
	LatestValue  *prometheus.GaugeVec

	registry *prometheus.Registry
}

// NewMetrics creates the collectors on a private registry so that several
// servers (and tests) can live in one process.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	m.RunsAppended = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_appended_total",
			Help:      "Total number of benchmark runs appended",
		},
		[]string{"suite"},
	)

	m.Regressions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "regressions_total",
			Help:      "Total number of benches that exceeded the alert threshold",
		},
		[]string{"suite"},
	)

	m.LatestValue = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bench_latest_value",
			Help:      "Value of the most recently appended result of a bench",
		},
		[]string{"suite", "bench", "unit"},
	)

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.RunsAppended,
		m.Regressions,
		m.LatestValue,
	)

	return m
}

// Recorded implements tracker.Observer.
func (m *Metrics) Recorded(suite string, run domain.CommitRun, res *compare.Result) {
	m.RunsAppended.WithLabelValues(suite).Inc()
	for _, b := range run.Benches {
		m.LatestValue.WithLabelValues(suite, b.Name, b.Unit).Set(b.Value)
	}
	if res != nil {
		if n := len(res.Regressions()); n > 0 {
			m.Regressions.WithLabelValues(suite).Add(float64(n))
		}
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records request counts and latency by route pattern.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil && !c.Response().Committed {
				status = apperr.StatusFor(err)
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			m.HTTPRequestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
