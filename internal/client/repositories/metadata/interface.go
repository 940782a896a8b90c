// Package metadata is the client-local key/value store. It holds small
// per-user values such as the cached default salt.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns common.ErrorNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetIfAbsent stores value only when key is absent and returns the value
	// that is stored afterwards.
	SetIfAbsent(ctx context.Context, key string, value []byte) ([]byte, error)
	Delete(ctx context.Context, key string) error
	// ListPrefix returns every pair whose key starts with prefix.
	ListPrefix(ctx context.Context, prefix string) (map[string][]byte, error)
}
