package commitinfo

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const defaultGitLabURL = "https://gitlab.com"

type GitLabConfig struct {
	Token string
	// Project is the numeric id or the "group/name" path.
	Project string
	BaseURL string
}

// GitLab looks commits up through the GitLab REST API.
type GitLab struct {
	client  *gitlab.Client
	project string
}

func NewGitLab(cfg GitLabConfig) (*GitLab, error) {
	if cfg.Project == "" {
		return nil, apperr.NewValidation("GitLab project is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGitLabURL
	}

	client, err := gitlab.NewClient(cfg.Token, gitlab.WithBaseURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}

	return &GitLab{client: client, project: cfg.Project}, nil
}

func (g *GitLab) Resolve(ctx context.Context, ref string) (domain.Commit, error) {
	if ref == "" {
		return domain.Commit{}, apperr.NewValidation("commit ref is required")
	}

	c, _, err := g.client.Commits.GetCommit(g.project, ref, nil, gitlab.WithContext(ctx))
	if err != nil {
		return domain.Commit{}, fmt.Errorf("get commit %s from GitLab: %w", ref, err)
	}

	return commitFromGitLab(c), nil
}

// GitLab has no usernames or tree ids on commits.
func commitFromGitLab(c *gitlab.Commit) domain.Commit {
	commit := domain.Commit{
		Author:    domain.Identity{Email: c.AuthorEmail, Name: c.AuthorName},
		Committer: domain.Identity{Email: c.CommitterEmail, Name: c.CommitterName},
		Distinct:  true,
		ID:        c.ID,
		Message:   c.Message,
		URL:       c.WebURL,
	}
	if c.AuthoredDate != nil {
		commit.Timestamp = formatTime(*c.AuthoredDate)
	}
	return commit
}
