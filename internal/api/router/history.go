package router

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/benchdata"
	"github.com/DjordjeVuckovic/bench-history/internal/compare"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/DjordjeVuckovic/bench-history/internal/stats"
	"github.com/DjordjeVuckovic/bench-history/internal/storage"
	"github.com/DjordjeVuckovic/bench-history/internal/tracker"
	"github.com/DjordjeVuckovic/bench-history/pkg/pagination"
	"github.com/labstack/echo/v4"
)

const jsContentType = "application/javascript; charset=utf-8"

type HistoryRouter struct {
	e         *echo.Echo
	store     storage.Store
	tracker   *tracker.Tracker
	threshold float64
	observers []tracker.Observer
}

type HistoryRouterOption func(*HistoryRouter)

// WithThreshold sets the default alert threshold for appends and comparisons.
func WithThreshold(threshold float64) HistoryRouterOption {
	return func(r *HistoryRouter) {
		if threshold > 0 {
			r.threshold = threshold
		}
	}
}

func WithObserver(o tracker.Observer) HistoryRouterOption {
	return func(r *HistoryRouter) {
		r.observers = append(r.observers, o)
	}
}

func NewHistoryRouter(e *echo.Echo, store storage.Store, opts ...HistoryRouterOption) *HistoryRouter {
	r := &HistoryRouter{
		e:         e,
		store:     store,
		threshold: compare.DefaultThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.tracker = tracker.New(store, tracker.Options{Threshold: r.threshold, Observers: r.observers})
	return r
}

func (r *HistoryRouter) Bind() {
	r.e.GET("/"+benchdata.FileName, r.dataJSHandler)

	v1 := r.e.Group("/api/v1")
	v1.GET("/benchmarks", r.snapshotHandler)
	v1.GET("/suites", r.suitesHandler)
	v1.GET("/suites/:suite/runs", r.runsHandler)
	v1.GET("/suites/:suite/history", r.historyHandler)
	v1.POST("/suites/:suite/runs", r.appendHandler)
	v1.GET("/suites/:suite/latest", r.latestHandler)
	v1.GET("/suites/:suite/compare", r.compareHandler)
	v1.GET("/suites/:suite/stats", r.statsHandler)
}

type SuitesResponse struct {
	Suites []string `json:"suites"`
}

type AppendResponse struct {
	Suite      string           `json:"suite"`
	Run        domain.CommitRun `json:"run"`
	Comparison *compare.Result  `json:"comparison,omitempty"`
}

type StatsResponse struct {
	Suite  string         `json:"suite"`
	Runs   int            `json:"runs"`
	Series []stats.Series `json:"series"`
}

// dataJSHandler godoc
// @Summary Published data.js
// @Description Returns the whole history in the window.BENCHMARK_DATA form loaded by the chart page.
// @Tags history
// @Produce application/javascript
// @Success 200 {string} string
// @Router /data.js [get]
func (r *HistoryRouter) dataJSHandler(c echo.Context) error {
	snap, err := r.store.Snapshot(c.Request().Context())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := benchdata.Encode(&buf, snap); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, jsContentType, buf.Bytes())
}

// snapshotHandler godoc
// @Summary Benchmark history
// @Description Returns the whole history as JSON.
// @Tags history
// @Produce json
// @Success 200 {object} domain.BenchmarkData
// @Router /api/v1/benchmarks [get]
func (r *HistoryRouter) snapshotHandler(c echo.Context) error {
	snap, err := r.store.Snapshot(c.Request().Context())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := benchdata.EncodeJSON(&buf, snap); err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, buf.Bytes())
}

// suitesHandler godoc
// @Summary List suites
// @Tags history
// @Produce json
// @Success 200 {object} SuitesResponse
// @Router /api/v1/suites [get]
func (r *HistoryRouter) suitesHandler(c echo.Context) error {
	suites, err := r.store.Suites(c.Request().Context())
	if err != nil {
		return err
	}
	if suites == nil {
		suites = []string{}
	}
	return c.JSON(http.StatusOK, SuitesResponse{Suites: suites})
}

// runsHandler godoc
// @Summary Runs of a suite
// @Description Returns the newest runs of a suite, oldest first.
// @Tags history
// @Produce json
// @Param suite path string true "Suite name"
// @Param limit query int false "Number of newest runs to return, all when omitted"
// @Success 200 {array} domain.CommitRun
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/suites/{suite}/runs [get]
func (r *HistoryRouter) runsHandler(c echo.Context) error {
	suite, err := suiteParam(c)
	if err != nil {
		return err
	}
	limit, err := limitParam(c)
	if err != nil {
		return err
	}

	runs, err := r.store.Runs(c.Request().Context(), suite)
	if err != nil {
		return err
	}
	if limit > 0 && len(runs) > limit {
		runs = runs[len(runs)-limit:]
	}
	return c.JSON(http.StatusOK, runs)
}

// historyHandler godoc
// @Summary Paged run history of a suite
// @Description Pages through the runs of a suite, newest first.
// @Tags history
// @Produce json
// @Param suite path string true "Suite name"
// @Param page query int false "Page number, starting at 1"
// @Param size query int false "Page size"
// @Success 200 {object} pagination.OffsetResult[domain.CommitRun]
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/suites/{suite}/history [get]
func (r *HistoryRouter) historyHandler(c echo.Context) error {
	suite, err := suiteParam(c)
	if err != nil {
		return err
	}

	var req pagination.OffsetRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return apperr.NewValidationWrap("invalid page parameters", err)
	}
	if err := req.Normalize(); err != nil {
		return apperr.NewValidationWrap("invalid page parameters", err)
	}

	runs, err := r.store.Runs(c.Request().Context(), suite)
	if err != nil {
		return err
	}
	slices.Reverse(runs)
	return c.JSON(http.StatusOK, pagination.Paginate(runs, req))
}

// latestHandler godoc
// @Summary Latest run of a suite
// @Tags history
// @Produce json
// @Param suite path string true "Suite name"
// @Success 200 {object} domain.CommitRun
// @Failure 404 {object} map[string]string
// @Router /api/v1/suites/{suite}/latest [get]
func (r *HistoryRouter) latestHandler(c echo.Context) error {
	suite, err := suiteParam(c)
	if err != nil {
		return err
	}

	runs, err := r.store.Runs(c.Request().Context(), suite)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, runs[len(runs)-1])
}

// compareHandler godoc
// @Summary Compare the latest run with the previous one
// @Tags history
// @Produce json
// @Param suite path string true "Suite name"
// @Param threshold query string false "Alert threshold such as 200% or 1.5"
// @Success 200 {object} compare.Result
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/suites/{suite}/compare [get]
func (r *HistoryRouter) compareHandler(c echo.Context) error {
	suite, err := suiteParam(c)
	if err != nil {
		return err
	}

	threshold := r.threshold
	if q := c.QueryParam("threshold"); q != "" {
		threshold, err = compare.ParseThreshold(q)
		if err != nil {
			return apperr.NewValidationWrap("invalid threshold", err)
		}
	}

	runs, err := r.store.Runs(c.Request().Context(), suite)
	if err != nil {
		return err
	}
	if len(runs) < 2 {
		return apperr.NewNotFound("previous run of suite", suite)
	}

	res := compare.Runs(suite, runs[len(runs)-2], runs[len(runs)-1], threshold)
	return c.JSON(http.StatusOK, res)
}

// statsHandler godoc
// @Summary Per-bench statistics of a suite
// @Tags history
// @Produce json
// @Param suite path string true "Suite name"
// @Success 200 {object} StatsResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/suites/{suite}/stats [get]
func (r *HistoryRouter) statsHandler(c echo.Context) error {
	suite, err := suiteParam(c)
	if err != nil {
		return err
	}

	runs, err := r.store.Runs(c.Request().Context(), suite)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, StatsResponse{
		Suite:  suite,
		Runs:   len(runs),
		Series: stats.ForSuite(runs),
	})
}

// appendHandler godoc
// @Summary Append a run
// @Description Appends a run to a suite and compares it with the previous run.
// @Tags history
// @Accept json
// @Produce json
// @Param suite path string true "Suite name"
// @Param run body domain.CommitRun true "Run to append"
// @Success 201 {object} AppendResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/suites/{suite}/runs [post]
func (r *HistoryRouter) appendHandler(c echo.Context) error {
	suite, err := suiteParam(c)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}
	run, err := decodeRun(body)
	if err != nil {
		return err
	}

	res, err := r.tracker.Record(c.Request().Context(), suite, run)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, AppendResponse{Suite: suite, Run: run, Comparison: res})
}

func suiteParam(c echo.Context) (string, error) {
	suite := c.Param("suite")
	// echo routes on the raw path when one is set, leaving params escaped.
	if c.Request().URL.RawPath != "" {
		unescaped, err := url.PathUnescape(suite)
		if err != nil {
			return "", apperr.NewValidationWrap("invalid suite name", err)
		}
		suite = unescaped
	}
	if err := domain.ValidateSuiteName(suite); err != nil {
		return "", err
	}
	return suite, nil
}

func limitParam(c echo.Context) (int, error) {
	q := c.QueryParam("limit")
	if q == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(q)
	if err != nil || n < 0 {
		return 0, apperr.NewValidation(fmt.Sprintf("limit must be a non-negative integer, got %q", q))
	}
	return n, nil
}
