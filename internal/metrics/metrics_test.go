package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/compare"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Recorded(t *testing.T) {
	m := NewMetrics()

	prev := domain.CommitRun{Commit: domain.Commit{ID: "a"}, Tool: domain.ToolGo,
		Benches: []domain.BenchResult{{Name: "BenchmarkA", Value: 100, Unit: "ns/op"}}}
	curr := domain.CommitRun{Commit: domain.Commit{ID: "b"}, Tool: domain.ToolGo,
		Benches: []domain.BenchResult{{Name: "BenchmarkA", Value: 300, Unit: "ns/op"}}}

	m.Recorded("Go", prev, nil)
	m.Recorded("Go", curr, compare.Runs("Go", prev, curr, 2))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RunsAppended.WithLabelValues("Go")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Regressions.WithLabelValues("Go")))
	assert.Equal(t, 300.0, testutil.ToFloat64(m.LatestValue.WithLabelValues("Go", "BenchmarkA", "ns/op")))
}

func TestMetrics_MiddlewareAndHandler(t *testing.T) {
	m := NewMetrics()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/ping", "200")))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{method="GET",path="/ping",status="200"} 1`)
}

func TestMetrics_MiddlewareLabelsAppErrors(t *testing.T) {
	m := NewMetrics()
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	e.Use(m.Middleware())
	e.GET("/suites/:suite", func(c echo.Context) error {
		return apperr.NewNotFound("suite", c.Param("suite"))
	})
	e.POST("/suites/:suite", func(c echo.Context) error {
		return apperr.NewConflict("run already recorded", nil)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/suites/missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/suites/dup", nil))
	require.Equal(t, http.StatusConflict, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/suites/:suite", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/suites/:suite", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/suites/:suite", "409")))
}
