// Package publish writes the data.js document where the chart page can load it.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/DjordjeVuckovic/bench-history/internal/benchdata"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/DjordjeVuckovic/bench-history/pkg/utils"
)

const ContentType = "application/javascript"

type Publisher interface {
	Publish(ctx context.Context, data *domain.BenchmarkData) error
}

// Dir writes <dir>/data.js.
type Dir struct {
	dir string
}

func NewDir(dir string) *Dir {
	return &Dir{dir: dir}
}

func (d *Dir) Path() string {
	return filepath.Join(d.dir, benchdata.FileName)
}

func (d *Dir) Publish(ctx context.Context, data *domain.BenchmarkData) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	out, err := benchdata.Marshal(data)
	if err != nil {
		return err
	}
	if err := utils.WriteFileAtomic(d.Path(), out, 0644); err != nil {
		return fmt.Errorf("publish %s: %w", d.Path(), err)
	}

	slog.Info("Benchmark data published", "path", d.Path(), "suites", len(data.Entries), "bytes", len(out))
	return nil
}
