package core

import (
	"context"

	"rentify-backend-go/internal/kv"
)

// getRecord reads and decodes one entity record. kv.ErrKeyNotFound
// and kv.ErrCorruptRecord pass through for the caller to classify.
func getRecord[T any](ctx context.Context, s kv.Store, key string) (*T, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var v T
	if err := kv.Decode(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// putRecord encodes and writes one entity record.
func putRecord(ctx context.Context, s kv.Store, key string, v any) error {
	data, err := kv.Encode(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, data)
}
