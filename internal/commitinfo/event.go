package commitinfo

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type eventPayload struct {
	HeadCommit  jsoniter.RawMessage `json:"head_commit"`
	PullRequest *pullRequestPayload `json:"pull_request"`
}

type pullRequestPayload struct {
	Title     string `json:"title"`
	HTMLURL   string `json:"html_url"`
	UpdatedAt string `json:"updated_at"`
	User      struct {
		Login string `json:"login"`
	} `json:"user"`
	Head struct {
		SHA  string `json:"sha"`
		Repo struct {
			UpdatedAt string `json:"updated_at"`
		} `json:"repo"`
	} `json:"head"`
}

// Event reads the commit from a GitHub Actions event payload.
type Event struct {
	path string
	api  Resolver
}

// NewEvent reads the payload at path. api, when set, resolves the head commit
// of pull request events in full.
func NewEvent(path string, api Resolver) (*Event, error) {
	if path == "" {
		return nil, apperr.NewValidation("event payload path is required (GITHUB_EVENT_PATH)")
	}
	return &Event{path: path, api: api}, nil
}

func (e *Event) Resolve(ctx context.Context, ref string) (domain.Commit, error) {
	raw, err := os.ReadFile(e.path)
	if err != nil {
		return domain.Commit{}, fmt.Errorf("read event payload: %w", err)
	}

	var p eventPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Commit{}, apperr.NewValidationWrap("invalid event payload", err)
	}

	switch {
	case len(p.HeadCommit) > 0 && string(p.HeadCommit) != "null":
		c := domain.Commit{Distinct: true}
		if err := json.Unmarshal(p.HeadCommit, &c); err != nil {
			return domain.Commit{}, apperr.NewValidationWrap("invalid head_commit", err)
		}
		return c, nil

	case p.PullRequest != nil:
		sha := p.PullRequest.Head.SHA
		if e.api != nil {
			c, err := e.api.Resolve(ctx, sha)
			if err == nil {
				return c, nil
			}
			slog.Warn("Commit lookup failed, using pull request payload", "sha", sha, "error", err)
		}
		return commitFromPullRequest(p.PullRequest), nil

	case ref != "" && e.api != nil:
		return e.api.Resolve(ctx, ref)

	default:
		return domain.Commit{}, apperr.NewValidation("event payload has neither head_commit nor pull_request")
	}
}

func commitFromPullRequest(pr *pullRequestPayload) domain.Commit {
	who := domain.Identity{Name: pr.User.Login, Username: pr.User.Login}
	return domain.Commit{
		Author:    who,
		Committer: who,
		Distinct:  true,
		ID:        pr.Head.SHA,
		Message:   pr.Title,
		Timestamp: firstNonEmpty(pr.Head.Repo.UpdatedAt, pr.UpdatedAt),
		URL:       strings.TrimSuffix(pr.HTMLURL, "/") + "/commits/" + pr.Head.SHA,
	}
}
