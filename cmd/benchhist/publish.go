package main

import (
	"fmt"

	"github.com/DjordjeVuckovic/bench-history/internal/config"
	"github.com/DjordjeVuckovic/bench-history/internal/publish"
	"github.com/spf13/cobra"
)

type publishOptions struct {
	to           string
	dir          string
	bucket       string
	prefix       string
	region       string
	endpoint     string
	cacheControl string
}

func newPublishCmd(root *rootOptions) *cobra.Command {
	opts := &publishOptions{}

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write the current history as data.js to a directory or S3",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := root.project()
			if err != nil {
				return err
			}
			pub, err := opts.publisher(p)
			if err != nil {
				return err
			}

			store, err := root.openStore(cmd.Context(), p)
			if err != nil {
				return err
			}
			defer closeStore(store)

			data, err := store.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			return pub.Publish(cmd.Context(), data)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.to, "to", "", "Target: dir or s3")
	f.StringVar(&opts.dir, "dir", "", "Directory data.js is written to")
	f.StringVar(&opts.bucket, "bucket", "", "S3 bucket")
	f.StringVar(&opts.prefix, "prefix", "", "S3 key prefix")
	f.StringVar(&opts.region, "region", "", "AWS region")
	f.StringVar(&opts.endpoint, "endpoint", "", "S3-compatible endpoint URL")
	f.StringVar(&opts.cacheControl, "cache-control", "no-cache", "Cache-Control header of the uploaded object")
	return cmd
}

func (o *publishOptions) publisher(p *config.Project) (publish.Publisher, error) {
	switch to := firstNonEmpty(o.to, p.Publish.To); to {
	case config.PublishDir:
		return publish.NewDir(firstNonEmpty(o.dir, p.Publish.Dir)), nil
	case config.PublishS3:
		return publish.NewS3(publish.S3Config{
			Bucket:       firstNonEmpty(o.bucket, p.Publish.S3.Bucket),
			Prefix:       firstNonEmpty(o.prefix, p.Publish.S3.Prefix),
			Region:       firstNonEmpty(o.region, p.Publish.S3.Region),
			Endpoint:     firstNonEmpty(o.endpoint, p.Publish.S3.Endpoint),
			CacheControl: o.cacheControl,
		})
	default:
		return nil, fmt.Errorf("invalid publish target %q, expected %s or %s", to, config.PublishDir, config.PublishS3)
	}
}
