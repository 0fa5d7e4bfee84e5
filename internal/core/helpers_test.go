package core

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"rentify-backend-go/internal/kv"
	"rentify-backend-go/internal/models"
)

// testEnv wires every service onto one in-memory store and one shared
// lock table, mirroring the production wiring.
type testEnv struct {
	store    kv.Store
	users    UserService
	items    ItemService
	rentals  RentalService
	messages MessageService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := kv.NewMemoryStore()
	locks := NewKeyLock(5 * time.Second)
	logger := zap.NewNop()
	return &testEnv{
		store:    store,
		users:    NewUserService(store),
		items:    NewItemService(store, locks, logger),
		rentals:  NewRentalService(store, locks, logger),
		messages: NewMessageService(store, locks, logger),
	}
}

func (e *testEnv) seedUser(t *testing.T, uid, name string) *models.User {
	t.Helper()
	user, _, err := e.users.GetOrCreate(context.Background(), uid, uid+"@example.com", name)
	if err != nil {
		t.Fatalf("seed user %q: %v", uid, err)
	}
	return user
}

func (e *testEnv) seedItem(t *testing.T, ownerID, title string) *models.Item {
	t.Helper()
	item, err := e.items.Create(context.Background(), ownerID, models.CreateItemRequest{
		Title:       title,
		Description: "a " + title + " in good shape",
		Price:       25,
		PriceUnit:   "day",
		Category:    "Tools",
		Location:    "Lisbon",
	})
	if err != nil {
		t.Fatalf("seed item %q: %v", title, err)
	}
	return item
}
