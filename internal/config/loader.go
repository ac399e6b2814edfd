// Package config loads the benchhist project file.
package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/DjordjeVuckovic/bench-history/internal/benchdata"
	"github.com/DjordjeVuckovic/bench-history/internal/commitinfo"
	"github.com/DjordjeVuckovic/bench-history/internal/compare"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/DjordjeVuckovic/bench-history/internal/storage"
	"github.com/DjordjeVuckovic/bench-history/internal/storage/es"
	"github.com/DjordjeVuckovic/bench-history/internal/storage/factory"
	"github.com/DjordjeVuckovic/bench-history/internal/storage/file"
	"github.com/DjordjeVuckovic/bench-history/internal/storage/pg"
	"github.com/DjordjeVuckovic/bench-history/internal/storage/sqlite"
	"gopkg.in/yaml.v3"
)

const (
	PublishDir = "dir"
	PublishS3  = "s3"
)

func LoadFromFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Project, error) {
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse config YAML: %w", err)
	}
	if err := validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Default is the configuration used when no project file is given.
func Default() *Project {
	p := &Project{}
	_ = validate(p)
	return p
}

func validate(p *Project) error {
	if p.Store.Type == "" {
		p.Store.Type = string(storage.File)
	}
	if !slices.Contains(storage.Types, storage.Type(p.Store.Type)) {
		return fmt.Errorf("store has invalid type %q", p.Store.Type)
	}
	if p.Store.MaxItems < 0 {
		return fmt.Errorf("store max_items must not be negative")
	}
	if p.Store.DataFile == "" {
		p.Store.DataFile = benchdata.FileName
	}

	if _, err := compare.ParseThreshold(p.Alert.Threshold); err != nil {
		return fmt.Errorf("alert: %w", err)
	}
	if p.Alert.Threshold == "" {
		p.Alert.Threshold = compare.FormatThreshold(compare.DefaultThreshold)
	}

	if p.Commit.Resolver != "" && !slices.Contains(commitinfo.Kinds, commitinfo.Kind(p.Commit.Resolver)) {
		return fmt.Errorf("commit has invalid resolver %q", p.Commit.Resolver)
	}

	seen := make(map[string]bool, len(p.Benchmarks))
	for i, b := range p.Benchmarks {
		if b.Suite == "" {
			return fmt.Errorf("benchmark at index %d has no suite", i)
		}
		if seen[b.Suite] {
			return fmt.Errorf("benchmark suite %q is declared twice", b.Suite)
		}
		seen[b.Suite] = true
		if _, err := domain.ParseTool(b.Tool); err != nil {
			return fmt.Errorf("benchmark %q: %w", b.Suite, err)
		}
		if len(b.Output) == 0 {
			return fmt.Errorf("benchmark %q has no output files", b.Suite)
		}
	}

	switch p.Publish.To {
	case "":
		p.Publish.To = PublishDir
	case PublishDir, PublishS3:
	default:
		return fmt.Errorf("publish has invalid target %q", p.Publish.To)
	}
	if p.Publish.Dir == "" {
		p.Publish.Dir = "."
	}
	if p.Publish.To == PublishS3 && p.Publish.S3.Bucket == "" {
		return fmt.Errorf("publish to s3 requires a bucket")
	}

	return nil
}

// Benchmark returns the declared benchmark for suite.
func (p *Project) Benchmark(suite string) (Benchmark, bool) {
	for _, b := range p.Benchmarks {
		if b.Suite == suite {
			return b, true
		}
	}
	return Benchmark{}, false
}

func (p *Project) Threshold() float64 {
	v, err := compare.ParseThreshold(p.Alert.Threshold)
	if err != nil {
		return compare.DefaultThreshold
	}
	return v
}

// StorageConfig converts the store section for factory.NewStore.
func (p *Project) StorageConfig() *factory.StorageConfig {
	cfg := &factory.StorageConfig{
		Type:     storage.Type(p.Store.Type),
		RepoURL:  p.RepoURL,
		MaxItems: p.Store.MaxItems,
	}

	switch cfg.Type {
	case storage.File:
		cfg.File = &file.Config{Path: p.Store.DataFile, Watch: p.Store.Watch}
	case storage.SQLite:
		cfg.SQLite = &sqlite.Config{Path: p.Store.SQLitePath}
	case storage.PG:
		cfg.Pg = &pg.PoolConfig{ConnStr: p.Store.PgConn}
		cfg.Migrate = p.Store.PgMigrate
	case storage.ES:
		cfg.Es = &es.ClientConfig{
			Addresses: p.Store.ES.Addresses,
			IndexName: p.Store.ES.Index,
			Username:  p.Store.ES.Username,
			Password:  p.Store.ES.Password,
		}
	}
	return cfg
}
