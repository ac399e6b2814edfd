// Package es keeps one Elasticsearch document per run, keyed by its run id.
package es

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/bench-history/internal/apperr"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/DjordjeVuckovic/bench-history/internal/history"
	"github.com/DjordjeVuckovic/bench-history/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/refresh"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	jsoniter "github.com/json-iterator/go"
)

const pageSize = 500

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is the stored form of a run. The run itself is kept in source only.
type Document struct {
	ID         string           `json:"id"`
	Suite      string           `json:"suite"`
	CommitID   string           `json:"commit_id"`
	RunDate    int64            `json:"run_date"`
	Tool       string           `json:"tool"`
	RecordedAt int64            `json:"recorded_at"`
	Seq        int64            `json:"seq"`
	Run        domain.CommitRun `json:"run"`
}

type Store struct {
	client    *elasticsearch.TypedClient
	indexName string
	repoURL   string
	now       func() time.Time

	mu      sync.Mutex
	lastSeq int64
}

func NewStore(ctx context.Context, config ClientConfig) (*Store, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	s := &Store{
		client:    client,
		indexName: config.IndexName,
		repoURL:   config.RepoURL,
		now:       time.Now,
	}

	if err := s.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return s, nil
}

func (s *Store) EnsureIndex(ctx context.Context) error {
	exists, err := s.client.Indices.Exists(s.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		slog.Info("Index already exists", "index", s.indexName)
		return nil
	}

	disabled := false
	run := types.NewObjectProperty()
	run.Enabled = &disabled

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"id":          types.NewKeywordProperty(),
			"suite":       types.NewKeywordProperty(),
			"commit_id":   types.NewKeywordProperty(),
			"run_date":    types.NewLongNumberProperty(),
			"tool":        types.NewKeywordProperty(),
			"recorded_at": types.NewLongNumberProperty(),
			"seq":         types.NewLongNumberProperty(),
			"run":         run,
		},
	}

	res, err := s.client.Indices.Create(s.indexName).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	if !res.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", s.indexName)
	return nil
}

// nextSeq is a microsecond clock forced to increase so that runs appended
// within the same tick keep their order.
func (s *Store) nextSeq() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.now().UnixMicro()
	if seq <= s.lastSeq {
		seq = s.lastSeq + 1
	}
	s.lastSeq = seq
	return seq
}

func (s *Store) Append(ctx context.Context, suite string, run domain.CommitRun) error {
	if err := storage.Validate(suite, run); err != nil {
		return err
	}

	id := storage.RunID(suite, run).String()
	seq := s.nextSeq()
	doc := Document{
		ID:         id,
		Suite:      suite,
		CommitID:   run.Commit.ID,
		RunDate:    run.Date,
		Tool:       string(run.Tool),
		RecordedAt: seq / 1000,
		Seq:        seq,
		Run:        run,
	}

	res, err := s.client.Create(s.indexName, id).
		Document(doc).
		Refresh(refresh.Waitfor).
		Do(ctx)
	if err != nil {
		var esErr *types.ElasticsearchError
		if errors.As(err, &esErr) && esErr.Status == http.StatusConflict {
			return apperr.NewConflict(
				fmt.Sprintf("suite %q already has commit %s at %d", suite, run.Commit.ID, run.Date),
				history.ErrDuplicateRun,
			)
		}
		return fmt.Errorf("failed to index run: %w", err)
	}

	slog.Info("Run indexed", "id", id, "index", s.indexName, "suite", suite, "result", res.Result)
	return nil
}

// scan pages through every document matching query in append order.
func (s *Store) scan(ctx context.Context, query *types.Query, fn func(Document) error) error {
	asc := sortorder.Asc
	var after []types.FieldValue

	for {
		req := s.client.Search().
			Index(s.indexName).
			Query(query).
			Size(pageSize).
			Sort(
				&types.SortOptions{SortOptions: map[string]types.FieldSort{"seq": {Order: &asc}}},
				&types.SortOptions{SortOptions: map[string]types.FieldSort{"id": {Order: &asc}}},
			)
		if after != nil {
			req = req.SearchAfter(after...)
		}

		res, err := req.Do(ctx)
		if err != nil {
			return fmt.Errorf("failed to execute search: %w", err)
		}

		for _, hit := range res.Hits.Hits {
			var doc Document
			if err := json.Unmarshal(hit.Source_, &doc); err != nil {
				return fmt.Errorf("failed to decode run document: %w", err)
			}
			if err := fn(doc); err != nil {
				return err
			}
		}

		if len(res.Hits.Hits) < pageSize {
			return nil
		}
		after = res.Hits.Hits[len(res.Hits.Hits)-1].Sort
	}
}

func (s *Store) Runs(ctx context.Context, suite string) ([]domain.CommitRun, error) {
	query := &types.Query{
		Term: map[string]types.TermQuery{
			"suite": {Value: suite},
		},
	}

	var runs []domain.CommitRun
	err := s.scan(ctx, query, func(doc Document) error {
		runs = append(runs, doc.Run)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, apperr.NewNotFound("suite", suite)
	}
	return runs, nil
}

func (s *Store) Suites(ctx context.Context) ([]string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.SuiteNames(), nil
}

func (s *Store) Snapshot(ctx context.Context) (*domain.BenchmarkData, error) {
	data := domain.NewBenchmarkData(s.repoURL)
	err := s.scan(ctx, &types.Query{MatchAll: &types.MatchAllQuery{}}, func(doc Document) error {
		data.Entries[doc.Suite] = append(data.Entries[doc.Suite], doc.Run)
		data.LastUpdate = max(data.LastUpdate, doc.RecordedAt)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Store) Close() error {
	return nil
}

// Healthy reports whether the cluster answers and the run index exists.
func (s *Store) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	exists, err := s.client.Indices.Exists(s.indexName).Do(ctx)
	return err == nil && exists
}
