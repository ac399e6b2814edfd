// Package file stores the run history directly in the published data.js file.
package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/bench-history/internal/benchdata"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/DjordjeVuckovic/bench-history/internal/history"
	"github.com/DjordjeVuckovic/bench-history/pkg/utils"
	"github.com/fsnotify/fsnotify"
)

type Config struct {
	Path     string
	RepoURL  string
	MaxItems int
	// Watch drops the cached document whenever another process rewrites the file.
	Watch bool
}

type Store struct {
	cfg Config
	now func() time.Time

	mu    sync.Mutex
	cache *history.Log
	stamp fileStamp

	watcher *fsnotify.Watcher
	wg      sync.WaitGroup
}

func NewStore(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("data file path is required")
	}

	s := &Store{cfg: cfg, now: time.Now}
	if cfg.Watch {
		if err := s.startWatch(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) startWatch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}

	dir := filepath.Dir(s.cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		w.Close()
		return fmt.Errorf("create data directory: %w", err)
	}
	// The file is replaced by rename on every write, so watch its directory.
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	s.watcher = w
	s.wg.Add(1)
	go s.watchLoop()
	return nil
}

func (s *Store) watchLoop() {
	defer s.wg.Done()
	target := filepath.Clean(s.cfg.Path)

	for {
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
				s.invalidate()
				slog.Debug("Data file changed, cache dropped", "path", target, "op", ev.Op.String())
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Data file watcher error", "path", target, "error", err)
		}
	}
}

func (s *Store) invalidate() {
	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()
}

// fileStamp identifies the file version a cached log was decoded from.
type fileStamp struct {
	modTime time.Time
	size    int64
	exists  bool
}

func (f fileStamp) same(o fileStamp) bool {
	return f.exists == o.exists && f.size == o.size && f.modTime.Equal(o.modTime)
}

func (s *Store) statFile() (fileStamp, error) {
	fi, err := os.Stat(s.cfg.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return fileStamp{}, nil
	}
	if err != nil {
		return fileStamp{}, fmt.Errorf("stat data file: %w", err)
	}
	return fileStamp{modTime: fi.ModTime(), size: fi.Size(), exists: true}, nil
}

// load must be called with mu held. The cached log is reused only while the
// file on disk still matches the version it was read from.
func (s *Store) load() (*history.Log, error) {
	st, err := s.statFile()
	if err != nil {
		return nil, err
	}
	if s.cache != nil && st.same(s.stamp) {
		return s.cache, nil
	}
	return s.reload(st)
}

// reload must be called with mu held.
func (s *Store) reload(st fileStamp) (*history.Log, error) {
	raw, err := os.ReadFile(s.cfg.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	data, err := benchdata.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.cfg.Path, err)
	}

	l := history.NewLog(data, history.Options{MaxItems: s.cfg.MaxItems})
	if data.RepoURL == "" {
		l.SetRepoURL(s.cfg.RepoURL)
	}
	s.cache = l
	s.stamp = st
	return l, nil
}

func (s *Store) Append(ctx context.Context, suite string, run domain.CommitRun) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Always start from the file on disk so runs written by other processes
	// since the last read are kept.
	st, err := s.statFile()
	if err != nil {
		return err
	}
	l, err := s.reload(st)
	if err != nil {
		return err
	}
	if err := l.Append(suite, run, s.now()); err != nil {
		return err
	}

	out, err := benchdata.Marshal(l.Snapshot())
	if err != nil {
		s.cache = nil
		return err
	}
	if err := utils.WriteFileAtomic(s.cfg.Path, out, 0644); err != nil {
		// the cached log holds a run that never reached disk
		s.cache = nil
		return fmt.Errorf("write data file: %w", err)
	}
	if st, err := s.statFile(); err == nil {
		s.stamp = st
	} else {
		s.cache = nil
	}

	slog.Info("Run appended to data file", "path", s.cfg.Path, "suite", suite, "commit", run.Commit.ID, "benches", len(run.Benches))
	return nil
}

func (s *Store) Runs(ctx context.Context, suite string) ([]domain.CommitRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.load()
	if err != nil {
		return nil, err
	}
	return l.Runs(suite)
}

func (s *Store) Suites(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.load()
	if err != nil {
		return nil, err
	}
	return l.Suites(), nil
}

func (s *Store) Snapshot(ctx context.Context) (*domain.BenchmarkData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.load()
	if err != nil {
		return nil, err
	}
	return l.Snapshot(), nil
}

func (s *Store) Close() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.wg.Wait()
	return err
}
