package core

import (
	"context"
	"errors"
	"testing"

	"rentify-backend-go/internal/kv"
	"rentify-backend-go/internal/models"
)

func TestCreateItemIndexesListing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "owner", "Owner")

	item := env.seedItem(t, "owner", "Drill")
	if !item.Available {
		t.Fatal("new items must start available")
	}
	if item.Owner.ID != "owner" || item.Owner.Name != "Owner" {
		t.Fatalf("owner snapshot not embedded: %+v", item.Owner)
	}

	listings, err := env.items.ListByOwner(ctx, "owner")
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if len(listings) != 1 || listings[0].ID != item.ID {
		t.Fatalf("listing index missing the new item: %+v", listings)
	}
}

func TestCreateItemValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "owner", "Owner")

	cases := []struct {
		name string
		req  models.CreateItemRequest
	}{
		{"empty title", models.CreateItemRequest{Title: "  ", Description: "d", Price: 1, PriceUnit: "day", Category: "Tools", Location: "x"}},
		{"zero price", models.CreateItemRequest{Title: "t", Description: "d", Price: 0, PriceUnit: "day", Category: "Tools", Location: "x"}},
		{"negative price", models.CreateItemRequest{Title: "t", Description: "d", Price: -5, PriceUnit: "day", Category: "Tools", Location: "x"}},
		{"bad price unit", models.CreateItemRequest{Title: "t", Description: "d", Price: 1, PriceUnit: "year", Category: "Tools", Location: "x"}},
		{"empty location", models.CreateItemRequest{Title: "t", Description: "d", Price: 1, PriceUnit: "day", Category: "Tools", Location: ""}},
	}
	for _, tc := range cases {
		if _, err := env.items.Create(ctx, "owner", tc.req); !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestCreateItemUnknownOwner(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.items.Create(context.Background(), "ghost", models.CreateItemRequest{
		Title: "t", Description: "d", Price: 1, PriceUnit: "day", Category: "Tools", Location: "x",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateItemDefaultImage(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Owner")

	item := env.seedItem(t, "owner", "Drill")
	if item.ImageURL == "" {
		t.Fatal("expected a default image URL")
	}
}

func TestListFiltersAndOrdering(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "owner", "Owner")

	drill := env.seedItem(t, "owner", "Power Drill")
	camera, err := env.items.Create(ctx, "owner", models.CreateItemRequest{
		Title:       "DSLR Camera",
		Description: "full frame body",
		Price:       40,
		PriceUnit:   "day",
		Category:    "Photography",
		Location:    "Porto",
	})
	if err != nil {
		t.Fatalf("create camera: %v", err)
	}

	all, err := env.items.List(ctx, "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 items, got %d", len(all))
	}

	// "All" disables the category filter.
	all, err = env.items.List(ctx, "All", "")
	if err != nil {
		t.Fatalf("list All: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 items with category All, got %d", len(all))
	}

	photo, err := env.items.List(ctx, "Photography", "")
	if err != nil {
		t.Fatalf("list category: %v", err)
	}
	if len(photo) != 1 || photo[0].ID != camera.ID {
		t.Fatalf("category filter wrong: %+v", photo)
	}

	// Case-insensitive substring over title and description.
	found, err := env.items.List(ctx, "", "DRILL")
	if err != nil {
		t.Fatalf("list search: %v", err)
	}
	if len(found) != 1 || found[0].ID != drill.ID {
		t.Fatalf("search filter wrong: %+v", found)
	}
	found, err = env.items.List(ctx, "", "frame")
	if err != nil {
		t.Fatalf("list search description: %v", err)
	}
	if len(found) != 1 || found[0].ID != camera.ID {
		t.Fatalf("description search wrong: %+v", found)
	}
}

func TestUpdateItemForbiddenForNonOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "owner", "Owner")
	env.seedUser(t, "stranger", "Stranger")
	item := env.seedItem(t, "owner", "Drill")

	title := "Stolen"
	_, err := env.items.Update(ctx, item.ID, "stranger", models.UpdateItemRequest{Title: &title})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	unchanged, err := env.items.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if unchanged.Title != "Drill" {
		t.Fatalf("item was modified by a non-owner: %q", unchanged.Title)
	}
}

func TestUpdateItemPatchesOnlyProvidedFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "owner", "Owner")
	item := env.seedItem(t, "owner", "Drill")

	price := 99.5
	updated, err := env.items.Update(ctx, item.ID, "owner", models.UpdateItemRequest{Price: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Price != 99.5 {
		t.Fatalf("price not updated: %v", updated.Price)
	}
	if updated.Title != item.Title || updated.Category != item.Category {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.ID != item.ID || updated.Owner.ID != item.Owner.ID {
		t.Fatalf("identity fields changed: %+v", updated)
	}
}

func TestUpdateItemRejectsInvalidResult(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "owner", "Owner")
	item := env.seedItem(t, "owner", "Drill")

	empty := ""
	_, err := env.items.Update(ctx, item.ID, "owner", models.UpdateItemRequest{Title: &empty})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestListByOwnerDropsDanglingIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "owner", "Owner")
	item := env.seedItem(t, "owner", "Drill")

	// Simulate a crash between the index append and a lost record by
	// planting an id with no backing item.
	if err := kv.SetList(ctx, env.store, kv.ListingsKey("owner"), []string{item.ID, "gone"}); err != nil {
		t.Fatalf("plant index: %v", err)
	}

	listings, err := env.items.ListByOwner(ctx, "owner")
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if len(listings) != 1 || listings[0].ID != item.ID {
		t.Fatalf("dangling id not dropped: %+v", listings)
	}
}
