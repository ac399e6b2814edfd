package commitinfo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

const defaultGitHubURL = "https://api.github.com/"

type GitHubConfig struct {
	Token      string
	Repository string
	// BaseURL overrides the REST endpoint, e.g. for GitHub Enterprise.
	BaseURL string
}

// GitHub looks commits up through the GitHub REST API.
type GitHub struct {
	client *github.Client
	owner  string
	repo   string
}

func NewGitHub(cfg GitHubConfig) (*GitHub, error) {
	owner, repo, err := splitRepository(cfg.Repository)
	if err != nil {
		return nil, err
	}

	var client *github.Client
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		client = github.NewClient(oauth2.NewClient(context.Background(), ts))
	} else {
		client = github.NewClient(nil)
	}

	if cfg.BaseURL != "" && strings.TrimSuffix(cfg.BaseURL, "/") != strings.TrimSuffix(defaultGitHubURL, "/") {
		u, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, apperr.NewValidationWrap("invalid GitHub API URL", err)
		}
		client.BaseURL = u
	}

	return &GitHub{client: client, owner: owner, repo: repo}, nil
}

func (g *GitHub) Resolve(ctx context.Context, ref string) (domain.Commit, error) {
	if ref == "" {
		return domain.Commit{}, apperr.NewValidation("commit ref is required")
	}

	rc, _, err := g.client.Repositories.GetCommit(ctx, g.owner, g.repo, ref, nil)
	if err != nil {
		return domain.Commit{}, fmt.Errorf("get commit %s from GitHub: %w", ref, err)
	}

	return commitFromGitHub(rc), nil
}

func commitFromGitHub(rc *github.RepositoryCommit) domain.Commit {
	c := rc.GetCommit()
	return domain.Commit{
		Author: domain.Identity{
			Email:    c.GetAuthor().GetEmail(),
			Name:     c.GetAuthor().GetName(),
			Username: rc.GetAuthor().GetLogin(),
		},
		Committer: domain.Identity{
			Email:    c.GetCommitter().GetEmail(),
			Name:     c.GetCommitter().GetName(),
			Username: rc.GetCommitter().GetLogin(),
		},
		Distinct:  true,
		ID:        rc.GetSHA(),
		Message:   c.GetMessage(),
		Timestamp: formatTime(c.GetAuthor().GetDate().Time),
		TreeID:    c.GetTree().GetSHA(),
		URL:       rc.GetHTMLURL(),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
