package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", fmt.Errorf("decode: %w", apperr.NewValidation("run has no benches")), http.StatusBadRequest},
		{"not found", apperr.NewNotFound("suite", "missing"), http.StatusNotFound},
		{"conflict", apperr.NewConflict("run already recorded", nil), http.StatusConflict},
		{"echo http error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed},
		{"plain", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			apperr.GlobalErrorHandler()(tt.err, c)

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusOK, apperr.StatusFor(nil))
	assert.Equal(t, http.StatusBadRequest, apperr.StatusFor(fmt.Errorf("bind: %w", apperr.NewValidation("bad page"))))
	assert.Equal(t, http.StatusNotFound, apperr.StatusFor(apperr.NewNotFound("suite", "x")))
	assert.Equal(t, http.StatusConflict, apperr.StatusFor(apperr.NewConflict("dup", nil)))
	assert.Equal(t, http.StatusTeapot, apperr.StatusFor(echo.NewHTTPError(http.StatusTeapot)))
	assert.Equal(t, http.StatusInternalServerError, apperr.StatusFor(errors.New("boom")))
}
