// Package commitinfo resolves the commit metadata attached to every run.
package commitinfo

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
)

type Resolver interface {
	// Resolve returns the commit identified by ref. Resolvers that read a CI
	// event may ignore ref.
	Resolve(ctx context.Context, ref string) (domain.Commit, error)
}

type Kind string

const (
	KindEvent  Kind = "event"
	KindGitHub Kind = "github"
	KindGitLab Kind = "gitlab"
	KindStatic Kind = "static"
)

var Kinds = []Kind{KindEvent, KindGitHub, KindGitLab, KindStatic}

type Config struct {
	Kind Kind

	// EventPath is the CI event payload read by the event resolver.
	EventPath string

	Token   string
	BaseURL string
	// Repository is "owner/name" on GitHub or the project id or path on GitLab.
	Repository string

	Static domain.Commit
}

// ConfigFromEnv fills what the CI environment provides. Explicit values in
// base win.
func ConfigFromEnv(base Config) Config {
	cfg := base
	if cfg.Kind == "" {
		switch {
		case os.Getenv("GITHUB_EVENT_PATH") != "":
			cfg.Kind = KindEvent
		case os.Getenv("GITLAB_CI") == "true":
			cfg.Kind = KindGitLab
		default:
			cfg.Kind = KindStatic
		}
	}

	switch cfg.Kind {
	case KindEvent, KindGitHub:
		cfg.EventPath = firstNonEmpty(cfg.EventPath, os.Getenv("GITHUB_EVENT_PATH"))
		cfg.Token = firstNonEmpty(cfg.Token, os.Getenv("GITHUB_TOKEN"))
		cfg.Repository = firstNonEmpty(cfg.Repository, os.Getenv("GITHUB_REPOSITORY"))
		cfg.BaseURL = firstNonEmpty(cfg.BaseURL, os.Getenv("GITHUB_API_URL"))
	case KindGitLab:
		cfg.Token = firstNonEmpty(cfg.Token, os.Getenv("GITLAB_TOKEN"), os.Getenv("CI_JOB_TOKEN"))
		cfg.Repository = firstNonEmpty(cfg.Repository, os.Getenv("CI_PROJECT_ID"))
		cfg.BaseURL = firstNonEmpty(cfg.BaseURL, os.Getenv("CI_SERVER_URL"))
	}
	return cfg
}

// DefaultRef is the commit the current CI job runs for.
func DefaultRef() string {
	return firstNonEmpty(os.Getenv("GITHUB_SHA"), os.Getenv("CI_COMMIT_SHA"))
}

func New(cfg Config) (Resolver, error) {
	switch cfg.Kind {
	case KindEvent:
		var api Resolver
		if cfg.Token != "" && cfg.Repository != "" {
			gh, err := NewGitHub(GitHubConfig{Token: cfg.Token, Repository: cfg.Repository, BaseURL: cfg.BaseURL})
			if err != nil {
				return nil, err
			}
			api = gh
		}
		return NewEvent(cfg.EventPath, api)
	case KindGitHub:
		return NewGitHub(GitHubConfig{Token: cfg.Token, Repository: cfg.Repository, BaseURL: cfg.BaseURL})
	case KindGitLab:
		return NewGitLab(GitLabConfig{Token: cfg.Token, Project: cfg.Repository, BaseURL: cfg.BaseURL})
	case KindStatic:
		return NewStatic(cfg.Static), nil
	default:
		return nil, apperr.NewValidation(fmt.Sprintf("unknown commit resolver %q", cfg.Kind))
	}
}

func splitRepository(repo string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", apperr.NewValidation(fmt.Sprintf("repository must look like owner/name, got %q", repo))
	}
	return owner, name, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
