package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// MinioStorage implements domain.FileStorage on an S3-compatible bucket store
type MinioStorage struct {
	client    *minio.Client
	publicURL string
	log       zerolog.Logger
}

// NewMinioStorage connects to endpoint. publicURL is the externally reachable
// base that object URLs are built from.
func NewMinioStorage(endpoint, accessKey, secretKey string, useSSL bool, publicURL string, log zerolog.Logger) (*MinioStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &MinioStorage{
		client:    client,
		publicURL: strings.TrimRight(publicURL, "/"),
		log:       log.With().Str("component", "storage").Logger(),
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet
func (s *MinioStorage) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	s.log.Info().Str("bucket", bucket).Msg("bucket created")
	return nil
}

// Upload implements domain.FileStorage. size may be -1 when unknown.
func (s *MinioStorage) Upload(ctx context.Context, bucket, path string, r io.Reader, size int64, contentType string) error {
	info, err := s.client.PutObject(ctx, bucket, path, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", bucket, path, err)
	}
	s.log.Debug().Str("bucket", bucket).Str("path", path).Int64("size", info.Size).Msg("object stored")
	return nil
}

// PublicURL implements domain.FileStorage
func (s *MinioStorage) PublicURL(bucket, path string) string {
	return PublicURL(s.publicURL, bucket, path)
}

// PublicURL joins base, bucket and an escaped object path
func PublicURL(base, bucket, path string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(bucket) + "/" + (&url.URL{Path: path}).EscapedPath()
}
