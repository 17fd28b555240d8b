package storage

import (
	"bytes"
	"context"
	"fmt"

	"go-booking-api/core/config"
	"go-booking-api/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore writes blobs to object storage.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store returns nil when no bucket is configured.
func NewS3Store(cfg config.StorageConfig) *S3Store {
	if !cfg.Enabled() {
		return nil
	}

	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.UsePathStyle,
	}
	if cfg.AccessKey != "" {
		opts.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		)
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	logger.Info("Storage:S3:Configured", "bucket", cfg.Bucket, "endpoint", cfg.Endpoint)
	return &S3Store{
		client: s3.New(opts),
		bucket: cfg.Bucket,
	}
}

func (s *S3Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}
