package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	_ "github.com/DjordjeVuckovic/bench-history/internal/api/docs"
	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/metrics"
	pkgserver "github.com/DjordjeVuckovic/bench-history/pkg/server"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{Port: "8080", CorsOrigins: []string{"*"}, BodyLimit: "1K"}
}

func serve(s *Server, method, target string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func TestServer_HealthChecks(t *testing.T) {
	s := New(testConfig(), pkgserver.NewOkHealthChecker()).SetupHealthChecks("/health")
	rec := serve(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	down := pkgserver.HealthCheckerFunc(func(ctx context.Context) bool { return false })
	s = New(testConfig(), down).SetupHealthChecks("/health")
	rec = serve(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_ErrorHandler(t *testing.T) {
	s := New(testConfig(), pkgserver.NewOkHealthChecker()).
		SetupMiddlewares().
		SetupErrorHandler()
	s.Echo.GET("/missing", func(c echo.Context) error {
		return apperr.NewNotFound("suite", "x")
	})
	s.Echo.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})
	s.Echo.POST("/echo", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusNotFound, serve(s, http.MethodGet, "/missing", "").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(s, http.MethodGet, "/panic", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(s, http.MethodGet, "/nope", "").Code)

	big := strings.Repeat("a", 2048)
	assert.Equal(t, http.StatusRequestEntityTooLarge, serve(s, http.MethodPost, "/echo", big).Code)
	assert.Equal(t, http.StatusNoContent, serve(s, http.MethodPost, "/echo", "small").Code)
}

func TestServer_OpenApi(t *testing.T) {
	s := New(testConfig(), pkgserver.NewOkHealthChecker()).SetupOpenApi("/swagger/*")

	rec := serve(s, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/suites/{suite}/runs")
}

func TestServer_Metrics(t *testing.T) {
	s := New(testConfig(), pkgserver.NewOkHealthChecker()).
		SetupMetrics("/metrics", metrics.NewMetrics()).
		SetupHealthChecks("/health")

	serve(s, http.MethodGet, "/health", "")
	rec := serve(s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/health",status="200"} 1`)
}

func TestServer_Context(t *testing.T) {
	s := New(testConfig(), pkgserver.NewOkHealthChecker())
	assert.NoError(t, s.Context().Err())
	s.cancel()
	assert.Error(t, s.Context().Err())
}
