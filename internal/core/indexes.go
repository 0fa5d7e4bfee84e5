package core

import (
	"context"

	"rentify-backend-go/internal/kv"
)

// indexStore maintains the derived id lists (listings, rentals,
// conversations, message threads) with per-key serialization and
// optional set semantics, instead of read-modify-write at every call
// site.
type indexStore struct {
	store kv.Store
	locks *KeyLock
}

// ids reads a list without locking. Readers tolerate staleness.
func (x *indexStore) ids(ctx context.Context, key string) ([]string, error) {
	return kv.GetList(ctx, x.store, key)
}

// append adds id to the end of the list under the key's lock.
func (x *indexStore) append(ctx context.Context, key, id string) error {
	release, err := x.locks.Acquire(ctx, key)
	if err != nil {
		return err
	}
	defer release()

	ids, err := kv.GetList(ctx, x.store, key)
	if err != nil {
		return err
	}
	return kv.SetList(ctx, x.store, key, append(ids, id))
}

// appendUnique adds id only if the list does not already contain it.
// The membership check runs under the lock, so concurrent senders
// cannot insert a duplicate.
func (x *indexStore) appendUnique(ctx context.Context, key, id string) error {
	release, err := x.locks.Acquire(ctx, key)
	if err != nil {
		return err
	}
	defer release()

	ids, err := kv.GetList(ctx, x.store, key)
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	return kv.SetList(ctx, x.store, key, append(ids, id))
}
