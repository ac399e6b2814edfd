package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/bench-history/internal/commitinfo"
	"github.com/DjordjeVuckovic/bench-history/internal/compare"
	"github.com/DjordjeVuckovic/bench-history/internal/config"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/DjordjeVuckovic/bench-history/internal/ingest"
	"github.com/DjordjeVuckovic/bench-history/internal/tracker"
	"github.com/spf13/cobra"
)

type appendOptions struct {
	suite          string
	tool           string
	outputs        []string
	commitRef      string
	resolver       string
	repository     string
	alertThreshold string
	failOnAlert    bool
	maxItems       int
	workers        int
	date           int64

	commit domain.Commit
}

func newAppendCmd(root *rootOptions) *cobra.Command {
	opts := &appendOptions{}

	cmd := &cobra.Command{
		Use:   "append",
		Short: "Extract benchmark results and append them as a new run",
		Example: `  benchhist append --suite "Go Benchmarks" --tool go --output bench.txt
  benchhist append --suite api --tool pytest --output a.json,b.json --resolver static --commit-id $(git rev-parse HEAD)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppend(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.suite, "suite", "", "Suite the run is appended to")
	f.StringVar(&opts.tool, "tool", "", fmt.Sprintf("Tool that produced the output, one of %v", domain.Tools))
	f.StringSliceVar(&opts.outputs, "output", nil, "Tool output file(s), comma-separated or repeated")
	f.StringVar(&opts.commitRef, "commit-ref", "", "Commit to resolve (defaults to the CI commit)")
	f.StringVar(&opts.resolver, "resolver", "", fmt.Sprintf("Commit resolver, one of %v (detected from the CI environment when empty)", commitinfo.Kinds))
	f.StringVar(&opts.repository, "repository", "", "owner/name on GitHub or project id on GitLab")
	f.StringVar(&opts.alertThreshold, "alert-threshold", "", `Regression threshold such as "200%" or "1.5"`)
	f.BoolVar(&opts.failOnAlert, "fail-on-alert", false, "Exit with status 2 when a regression is found")
	f.IntVar(&opts.maxItems, "max-items", 0, "Keep at most this many runs per suite (file and in_mem stores, 0 keeps all)")
	f.IntVar(&opts.workers, "workers", 0, "Output files extracted in parallel")
	f.Int64Var(&opts.date, "date", 0, "Run date in epoch milliseconds (defaults to now)")

	f.StringVar(&opts.commit.ID, "commit-id", "", "Commit id for the static resolver")
	f.StringVar(&opts.commit.Message, "commit-message", "", "Commit message for the static resolver")
	f.StringVar(&opts.commit.Timestamp, "commit-timestamp", "", "RFC3339 commit time for the static resolver")
	f.StringVar(&opts.commit.URL, "commit-url", "", "Commit URL for the static resolver")
	f.StringVar(&opts.commit.Author.Name, "commit-author", "", "Author name for the static resolver")
	f.StringVar(&opts.commit.Author.Email, "commit-email", "", "Author email for the static resolver")

	return cmd
}

func runAppend(cmd *cobra.Command, root *rootOptions, opts *appendOptions) error {
	ctx := cmd.Context()

	p, err := root.project()
	if err != nil {
		return err
	}
	if err := opts.complete(cmd, p); err != nil {
		return err
	}

	tool, err := domain.ParseTool(opts.tool)
	if err != nil {
		return err
	}
	threshold, err := compare.ParseThreshold(opts.alertThreshold)
	if err != nil {
		return err
	}

	resolver, err := commitinfo.New(commitinfo.ConfigFromEnv(opts.resolverConfig(p)))
	if err != nil {
		return fmt.Errorf("create commit resolver: %w", err)
	}
	ref := firstNonEmpty(opts.commitRef, commitinfo.DefaultRef())
	commit, err := resolver.Resolve(ctx, ref)
	if err != nil {
		return fmt.Errorf("resolve commit %q: %w", ref, err)
	}

	benches, err := ingest.NewPipeline(tool, ingest.WithWorkers(opts.workers)).Run(ctx, opts.outputs)
	if err != nil {
		return err
	}

	date := opts.date
	if date == 0 {
		date = time.Now().UnixMilli()
	}
	run := domain.CommitRun{
		Commit:  commit,
		Date:    date,
		Tool:    tool,
		Benches: benches,
	}

	store, err := root.openStore(ctx, p)
	if err != nil {
		return err
	}
	defer closeStore(store)

	tr := tracker.New(store, tracker.Options{
		Threshold:   threshold,
		FailOnAlert: opts.failOnAlert,
	})
	res, err := tr.Record(ctx, opts.suite, run)
	if res != nil {
		compare.WriteTable(res, cmd.OutOrStdout())
	}
	if err != nil {
		if errors.Is(err, tracker.ErrRegression) {
			slog.Error("Benchmark alert", "suite", opts.suite, "error", err)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Appended %d bench(es) for commit %s to %q\n", len(run.Benches), commit.ID, opts.suite)
	return nil
}

// complete fills unset flags from the project file.
func (o *appendOptions) complete(cmd *cobra.Command, p *config.Project) error {
	if o.suite == "" {
		if len(p.Benchmarks) != 1 {
			return fmt.Errorf("--suite is required")
		}
		o.suite = p.Benchmarks[0].Suite
	}

	if b, ok := p.Benchmark(o.suite); ok {
		if o.tool == "" {
			o.tool = b.Tool
		}
		if len(o.outputs) == 0 {
			o.outputs = b.Output
		}
	}
	if o.tool == "" {
		return fmt.Errorf("--tool is required for suite %q", o.suite)
	}
	if len(o.outputs) == 0 {
		return fmt.Errorf("--output is required for suite %q", o.suite)
	}

	if o.alertThreshold == "" {
		o.alertThreshold = p.Alert.Threshold
	}
	if !cmd.Flags().Changed("fail-on-alert") {
		o.failOnAlert = p.Alert.FailOnAlert
	}
	if cmd.Flags().Changed("max-items") {
		if o.maxItems < 0 {
			return fmt.Errorf("--max-items must not be negative")
		}
		p.Store.MaxItems = o.maxItems
	}
	return nil
}

func (o *appendOptions) resolverConfig(p *config.Project) commitinfo.Config {
	cfg := commitinfo.Config{
		Kind:       commitinfo.Kind(firstNonEmpty(o.resolver, p.Commit.Resolver)),
		Repository: firstNonEmpty(o.repository, p.Commit.Repository),
		BaseURL:    p.Commit.BaseURL,
		Static:     o.commit,
	}
	if cfg.Kind == "" && o.commit.ID != "" {
		cfg.Kind = commitinfo.KindStatic
	}
	if cfg.Static.Committer == (domain.Identity{}) {
		cfg.Static.Committer = cfg.Static.Author
	}
	cfg.Static.Distinct = true
	return cfg
}
