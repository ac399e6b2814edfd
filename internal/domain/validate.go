package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
)

// Validate checks the rules every recorded run must satisfy.
func (r CommitRun) Validate() error {
	if strings.TrimSpace(r.Commit.ID) == "" {
		return apperr.NewValidation("commit id is required")
	}
	if r.Date <= 0 {
		return apperr.NewValidation(fmt.Sprintf("date must be a positive epoch millisecond timestamp, got %d", r.Date))
	}
	if _, err := ParseTool(string(r.Tool)); err != nil {
		return apperr.NewValidationWrap("invalid tool", err)
	}
	if len(r.Benches) == 0 {
		return apperr.NewValidation("run has no benches")
	}
	for i, b := range r.Benches {
		if err := b.Validate(); err != nil {
			return apperr.NewValidationWrap(fmt.Sprintf("bench at index %d", i), err)
		}
	}
	return nil
}

func (b BenchResult) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(b.Unit) == "" {
		return fmt.Errorf("bench %q has no unit", b.Name)
	}
	if math.IsNaN(b.Value) || math.IsInf(b.Value, 0) {
		return fmt.Errorf("bench %q has a non-finite value", b.Name)
	}
	return nil
}

func ValidateSuiteName(suite string) error {
	if strings.TrimSpace(suite) == "" {
		return apperr.NewValidation("suite name is required")
	}
	return nil
}
