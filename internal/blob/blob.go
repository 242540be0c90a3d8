package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned by GetObject and DeleteObject when the key does not
// exist in the store.
var ErrNotFound = errors.New("object not found")

// Store is the draft snapshot sink. Keys are slash-separated paths.
type Store interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) (int64, error)
	GetObject(ctx context.Context, key string) ([]byte, error)
	DeleteObject(ctx context.Context, key string) error
}
