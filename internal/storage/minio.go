package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"scopeapi/internal/config"
)

const contentTypeJSON = "application/json"

// minioStore implements the Store interface using an S3-compatible backend (MinIO, AWS S3, etc.).
// It is safe for concurrent use by multiple goroutines.
type minioStore struct {
	client *minio.Client
	bucket string
}

// NewMinIO creates a new S3-compatible record store backed by MinIO.
// It validates connectivity and ensures the bucket exists (creates it
// if missing); the bucket check is idempotent one-time setup and never
// runs on the request path.
func NewMinIO(cfg config.MinIOConfig) (Store, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ms := &minioStore{client: cli, bucket: cfg.Bucket}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure bucket exists.
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return ms, nil
}

// Put marshals value and uploads it under key as a JSON object.
func (m *minioStore) Put(ctx context.Context, key string, value any) (ObjectInfo, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("marshal record: %w", err)
	}
	info, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(b), int64(len(b)), minio.PutObjectOptions{
		ContentType: contentTypeJSON,
	})
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{
		Key:          key,
		Size:         info.Size,
		ETag:         info.ETag,
		LastModified: time.Now(), // MinIO PutObjectInfo doesn't return LastModified
	}, nil
}

// Get downloads the record stored under key and decodes it into out.
func (m *minioStore) Get(ctx context.Context, key string, out any) error {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return err
	}
	defer obj.Close()
	if err := json.NewDecoder(obj).Decode(out); err != nil {
		return fmt.Errorf("decode record %s: %w", key, err)
	}
	return nil
}

// Delete removes a record by key.
func (m *minioStore) Delete(ctx context.Context, key string) error {
	return m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
}
