package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorruptRecord is returned when a stored value cannot be decoded.
var ErrCorruptRecord = errors.New("corrupt record")

// Encode serializes an entity for storage.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// Decode deserializes a stored value into v. Unknown fields are
// ignored and missing fields keep their zero values, so records
// written by an older schema shape still decode.
func Decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return nil
}

// GetList reads a string-id index list. An absent key is an empty
// list, never an error.
func GetList(ctx context.Context, s Store, key string) ([]string, error) {
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := Decode(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// SetList writes a string-id index list.
func SetList(ctx context.Context, s Store, key string, ids []string) error {
	data, err := Encode(ids)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, data)
}
