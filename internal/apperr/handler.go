package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// StatusFor maps err to the HTTP status GlobalErrorHandler responds with.
func StatusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var ve *ValidationError
	var nf *NotFoundError
	var ce *ConflictError
	var he *echo.HTTPError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &ce):
		return http.StatusConflict
	case errors.As(err, &he):
		return he.Code
	default:
		return http.StatusInternalServerError
	}
}

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := StatusFor(err)
		body := map[string]string{"error": err.Error()}
		switch status {
		case http.StatusBadRequest:
			body["title"] = "validation error"
		case http.StatusConflict:
			body["title"] = "conflict"
		case http.StatusInternalServerError:
			slog.Error("Unhandled error", "method", c.Request().Method, "path", c.Request().URL.Path, "error", err)
			body = map[string]string{"error": "internal server error"}
		}

		var he *echo.HTTPError
		if errors.As(err, &he) && status != http.StatusInternalServerError {
			body = map[string]string{"error": fmt.Sprintf("%v", he.Message)}
		}
		_ = c.JSON(status, body)
	}
}
