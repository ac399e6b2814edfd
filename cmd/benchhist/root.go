package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/DjordjeVuckovic/bench-history/internal/config"
	"github.com/DjordjeVuckovic/bench-history/internal/storage"
	"github.com/DjordjeVuckovic/bench-history/internal/storage/factory"
	"github.com/DjordjeVuckovic/bench-history/pkg/utils"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	storeType  string
	dataFile   string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "benchhist",
		Short:         "Keep the benchmark history behind data.js",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(opts.logLevel)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to the benchhist YAML project file")
	pf.StringVar(&opts.storeType, "store", "", fmt.Sprintf("Store type, one of %v (overrides the project file)", storage.Types))
	pf.StringVar(&opts.dataFile, "data-file", "", "Path of the data.js file used by the file store")
	pf.StringVar(&opts.logLevel, "log-level", firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"), "Log level: debug, info, warn or error")

	cmd.AddCommand(
		newAppendCmd(opts),
		newShowCmd(opts),
		newCompareCmd(opts),
		newStatsCmd(opts),
		newPublishCmd(opts),
		newSchemaCmd(),
	)
	return cmd
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetLogLoggerLevel(lvl)
	return nil
}

// project loads the project file, if any, and applies the global flag overrides.
func (o *rootOptions) project() (*config.Project, error) {
	p := config.Default()
	if o.configPath != "" {
		loaded, err := config.LoadFromFile(o.configPath)
		if err != nil {
			return nil, err
		}
		p = loaded
	}

	if o.storeType != "" {
		p.Store.Type = o.storeType
	}
	if o.dataFile != "" {
		p.Store.DataFile = o.dataFile
	}
	if !slices.Contains(storage.Types, storage.Type(p.Store.Type)) {
		return nil, fmt.Errorf("invalid store type %q, expected one of %v", p.Store.Type, storage.Types)
	}

	p.RepoURL = firstNonEmpty(p.RepoURL, os.Getenv("REPO_URL"))
	p.Store.SQLitePath = firstNonEmpty(p.Store.SQLitePath, os.Getenv("SQLITE_PATH"))
	p.Store.PgConn = firstNonEmpty(p.Store.PgConn, os.Getenv("PG_CONNECTION_STRING"))
	if len(p.Store.ES.Addresses) == 0 && os.Getenv("ES_ADDRESSES") != "" {
		p.Store.ES.Addresses = utils.SplitTrim(os.Getenv("ES_ADDRESSES"), ",")
	}
	p.Store.ES.Index = firstNonEmpty(p.Store.ES.Index, os.Getenv("ES_INDEX_NAME"))
	return p, nil
}

func (o *rootOptions) openStore(ctx context.Context, p *config.Project) (storage.Store, error) {
	s, err := factory.NewStore(ctx, p.StorageConfig())
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", p.Store.Type, err)
	}
	slog.Debug("Store opened", "type", p.Store.Type)
	return s, nil
}

func closeStore(s storage.Store) {
	if err := s.Close(); err != nil {
		slog.Warn("Failed to close store", "error", err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
