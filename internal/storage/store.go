package storage

import (
	"context"
	"errors"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrBackend        = errors.New("storage backend error")
)

// PutResult describes the object written by Put. Digest is the sha256 hex of
// the exact bytes written; Location is the descriptor persisted alongside the
// file metadata.
type PutResult struct {
	Key      string
	Digest   string
	Size     int64
	Location string
}

// ObjectStore is the binary-payload backend, addressed by opaque keys and
// independent of the metadata store's transactions.
type ObjectStore interface {
	Put(ctx context.Context, ownerID string, data []byte) (*PutResult, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
