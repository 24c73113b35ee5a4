package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	"github.com/dkotenko/filegate/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore implements ObjectStore on a MinIO / S3-compatible backend.
type MinioStore struct {
	client *minio.Client
	bucket string
}

func NewMinioStore(cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	s := &MinioStore{client: client, bucket: cfg.MinioBucket}
	s.ensureBucket(context.Background())
	return s, nil
}

// ensureBucket creates the bucket if it does not exist. A transient failure
// here is logged but not fatal; the first Put will surface a real outage.
func (s *MinioStore) ensureBucket(ctx context.Context) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		slog.Warn("could not check bucket existence", "bucket", s.bucket, "error", err)
		return
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			slog.Warn("could not create bucket", "bucket", s.bucket, "error", err)
			return
		}
		slog.Info("bucket created", "bucket", s.bucket)
	}
}

// Put writes data under a fresh {ownerID}/{uuid} key and returns the key,
// sha256 digest and size of the exact bytes written.
func (s *MinioStore) Put(ctx context.Context, ownerID string, data []byte) (*PutResult, error) {
	key := fmt.Sprintf("%s/%s", ownerID, uuid.New().String())

	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return nil, fmt.Errorf("%w: put %s: %v", ErrBackend, key, err)
	}

	return &PutResult{
		Key:      key,
		Digest:   digest,
		Size:     int64(len(data)),
		Location: fmt.Sprintf("s3://%s/%s", s.bucket, key),
	}, nil
}

func (s *MinioStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrBackend, key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrBackend, key, err)
	}
	return data, nil
}

// Delete removes the object. Backend failures are returned, never swallowed:
// callers rely on this to keep metadata consistent with stored bytes.
func (s *MinioStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrBackend, key, err)
	}
	return nil
}
