package publish

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/DjordjeVuckovic/bench-history/internal/benchdata"
	"github.com/DjordjeVuckovic/bench-history/internal/domain"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
)

type S3Config struct {
	Bucket string
	Prefix string
	Region string
	// Endpoint points at an S3-compatible service such as MinIO.
	Endpoint     string
	CacheControl string
}

// S3 uploads data.js to s3://bucket/prefix/data.js.
type S3 struct {
	cfg      S3Config
	uploader s3manageriface.UploaderAPI
}

func NewS3(cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	awsCfg := &aws.Config{MaxRetries: aws.Int(5)}
	if cfg.Region != "" {
		awsCfg.Region = aws.String(cfg.Region)
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	return NewS3WithUploader(cfg, s3manager.NewUploader(sess)), nil
}

func NewS3WithUploader(cfg S3Config, uploader s3manageriface.UploaderAPI) *S3 {
	if cfg.CacheControl == "" {
		cfg.CacheControl = "no-cache"
	}
	return &S3{cfg: cfg, uploader: uploader}
}

func (s *S3) Key() string {
	return path.Join(strings.Trim(s.cfg.Prefix, "/"), benchdata.FileName)
}

func (s *S3) Publish(ctx context.Context, data *domain.BenchmarkData) error {
	out, err := benchdata.Marshal(data)
	if err != nil {
		return err
	}

	res, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:       aws.String(s.cfg.Bucket),
		Key:          aws.String(s.Key()),
		Body:         bytes.NewReader(out),
		ContentType:  aws.String(ContentType),
		CacheControl: aws.String(s.cfg.CacheControl),
	})
	if err != nil {
		return fmt.Errorf("upload s3://%s/%s: %w", s.cfg.Bucket, s.Key(), err)
	}

	slog.Info("Benchmark data uploaded", "location", res.Location, "bytes", len(out))
	return nil
}
