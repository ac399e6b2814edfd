package extract

import (
	"fmt"
	"io"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
)

// extractCustom reads a JSON array of results already in the stored shape.
func extractCustom(r io.Reader) ([]domain.BenchResult, error) {
	var results []domain.BenchResult
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, apperr.NewValidationWrap("invalid custom benchmark JSON", err)
	}
	if len(results) == 0 {
		return nil, apperr.NewValidation("no benchmark results found in custom output")
	}
	for i, b := range results {
		if err := b.Validate(); err != nil {
			return nil, apperr.NewValidationWrap(fmt.Sprintf("result at index %d", i), err)
		}
	}
	return results, nil
}
