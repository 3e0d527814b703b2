// Package storage uploads user files to S3-compatible object storage
// (Cloudflare R2, MinIO, S3).
package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"inkwell/internal/domain"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Uploader stores raw file bytes and returns the object key.
type Uploader interface {
	Upload(ctx context.Context, data []byte, contentType, suggestedName string) (string, error)
}

// MinioUploader implements Uploader on any S3-compatible endpoint.
type MinioUploader struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// Options configures the storage client.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewMinioUploader creates an uploader for the configured bucket.
func NewMinioUploader(opts Options, logger *slog.Logger) (*MinioUploader, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &MinioUploader{
		client: client,
		bucket: opts.Bucket,
		logger: logger,
	}, nil
}

// Upload stores the bytes under a timestamped key derived from the suggested
// name. Transport errors surface as domain.ErrServiceUnavailable; the caller
// never sees the underlying SDK error text.
func (u *MinioUploader) Upload(ctx context.Context, data []byte, contentType, suggestedName string) (string, error) {
	key := ObjectKey(suggestedName, time.Now())

	_, err := u.client.PutObject(ctx, u.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		u.logger.Error("object upload failed", "bucket", u.bucket, "key", key, "error", err)
		return "", fmt.Errorf("upload to bucket %s: %w", u.bucket, domain.ErrServiceUnavailable)
	}

	return key, nil
}

// ObjectKey builds the storage key for an uploaded file. Keys are prefixed
// with the upload's unix milliseconds so repeated uploads of the same file
// never collide.
func ObjectKey(suggestedName string, now time.Time) string {
	if suggestedName == "" {
		suggestedName = "upload"
	}
	return fmt.Sprintf("%d_%s", now.UnixMilli(), suggestedName)
}
