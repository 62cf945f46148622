// Package storage contains the durable key/value record store used for
// submission payloads, backed by an S3-compatible object store.
// Records are JSON objects; keys are slash-separated object names.
package storage

import (
	"context"
	"time"
)

// ObjectInfo contains basic information about a stored record.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	LastModified time.Time
}

// Store is a reusable JSON record store over an S3-compatible backend.
// Put provides per-key atomic write semantics; callers never contend on
// the same key because keys embed a unique submission identifier.
type Store interface {
	// Put marshals value as JSON and writes it under the given key.
	Put(ctx context.Context, key string, value any) (ObjectInfo, error)
	// Get reads the JSON record stored under key into out.
	Get(ctx context.Context, key string, out any) error
	// Delete removes the record stored under key.
	Delete(ctx context.Context, key string) error
}
