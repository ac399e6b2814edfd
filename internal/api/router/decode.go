package router

import (
	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.Config{
	EscapeHTML:             false,
	DisallowUnknownFields:  true,
	ValidateJsonRawMessage: true,
}.Froze()

// decodeRun rejects unknown fields.
func decodeRun(body []byte) (domain.CommitRun, error) {
	if len(body) == 0 {
		return domain.CommitRun{}, apperr.NewValidation("request body is required")
	}

	var run domain.CommitRun
	if err := json.Unmarshal(body, &run); err != nil {
		return domain.CommitRun{}, apperr.NewValidationWrap("invalid run JSON", err)
	}
	return run, nil
}
