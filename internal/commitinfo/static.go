package commitinfo

import (
	"context"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
)

// Static returns a fixed commit, with the ref filling in a missing id.
type Static struct {
	commit domain.Commit
}

func NewStatic(commit domain.Commit) *Static {
	return &Static{commit: commit}
}

func (s *Static) Resolve(ctx context.Context, ref string) (domain.Commit, error) {
	c := s.commit
	if c.ID == "" {
		c.ID = ref
	}
	if c.ID == "" {
		return domain.Commit{}, apperr.NewValidation("commit id is required")
	}
	return c, nil
}
