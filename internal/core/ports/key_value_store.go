package ports

import "context"

// KeyValueStore is the flat string key space both repositories are built on.
type KeyValueStore interface {
	// Get returns the value stored under key and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Keys returns every key starting with prefix, sorted lexically.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
