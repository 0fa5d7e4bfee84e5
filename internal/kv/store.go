package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when no value exists for the key.
var ErrKeyNotFound = errors.New("key not found")

// Store is the flat key-value primitive the index layer is built on.
// Implementations provide durable point get/set and prefix scans; they
// offer no transactions and no compare-and-swap across keys, so any
// multi-key consistency has to be enforced by the caller.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	GetByPrefix(ctx context.Context, prefix string) ([][]byte, error)
}
