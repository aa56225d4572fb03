package port

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is a flat byte store. Get returns ErrKeyNotFound when the key is absent.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
