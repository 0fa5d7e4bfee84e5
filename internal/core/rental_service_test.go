package core

import (
	"context"
	"errors"
	"sync"
	"testing"

	"rentify-backend-go/internal/models"
)

func TestCreateRentalFlipsAvailability(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "owner", "Owner")
	env.seedUser(t, "renter", "Renter")
	item := env.seedItem(t, "owner", "Drill")

	rental, err := env.rentals.Create(ctx, "renter", models.CreateRentalRequest{
		ItemID:    item.ID,
		StartDate: "2026-09-01",
		EndDate:   "2026-09-05",
	})
	if err != nil {
		t.Fatalf("create rental: %v", err)
	}
	if rental.Status != models.RentalStatusActive {
		t.Fatalf("expected active status, got %q", rental.Status)
	}
	if rental.OwnerID != "owner" || rental.RenterID != "renter" {
		t.Fatalf("wrong parties: %+v", rental)
	}
	if rental.Item.ID != item.ID {
		t.Fatal("rental must embed an item snapshot")
	}

	got, err := env.items.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if got.Available {
		t.Fatal("item must be unavailable while rented")
	}

	mine, err := env.rentals.ListForRenter(ctx, "renter")
	if err != nil {
		t.Fatalf("list for renter: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != rental.ID {
		t.Fatalf("renter index wrong: %+v", mine)
	}
	owned, err := env.rentals.ListForOwner(ctx, "owner")
	if err != nil {
		t.Fatalf("list for owner: %v", err)
	}
	if len(owned) != 1 || owned[0].ID != rental.ID {
		t.Fatalf("owner index wrong: %+v", owned)
	}
}

func TestCreateRentalValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "owner", "Owner")
	env.seedUser(t, "renter", "Renter")
	item := env.seedItem(t, "owner", "Drill")

	cases := []struct {
		name string
		req  models.CreateRentalRequest
	}{
		{"missing item", models.CreateRentalRequest{StartDate: "2026-09-01", EndDate: "2026-09-05"}},
		{"garbage start", models.CreateRentalRequest{ItemID: item.ID, StartDate: "soon", EndDate: "2026-09-05"}},
		{"garbage end", models.CreateRentalRequest{ItemID: item.ID, StartDate: "2026-09-01", EndDate: "later"}},
		{"inverted range", models.CreateRentalRequest{ItemID: item.ID, StartDate: "2026-09-05", EndDate: "2026-09-01"}},
		{"zero-length range", models.CreateRentalRequest{ItemID: item.ID, StartDate: "2026-09-01", EndDate: "2026-09-01"}},
	}
	for _, tc := range cases {
		if _, err := env.rentals.Create(ctx, "renter", tc.req); !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}

	_, err := env.rentals.Create(ctx, "renter", models.CreateRentalRequest{
		ItemID: "ghost", StartDate: "2026-09-01", EndDate: "2026-09-05",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown item: expected ErrNotFound, got %v", err)
	}
}

func TestCreateRentalAcceptsRFC3339Dates(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "owner", "Owner")
	env.seedUser(t, "renter", "Renter")
	item := env.seedItem(t, "owner", "Drill")

	_, err := env.rentals.Create(context.Background(), "renter", models.CreateRentalRequest{
		ItemID:    item.ID,
		StartDate: "2026-09-01T10:00:00Z",
		EndDate:   "2026-09-05T10:00:00Z",
	})
	if err != nil {
		t.Fatalf("create rental with RFC 3339 dates: %v", err)
	}
}

func TestRentUnavailableItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "owner", "Owner")
	env.seedUser(t, "r1", "First")
	env.seedUser(t, "r2", "Second")
	item := env.seedItem(t, "owner", "Drill")

	req := models.CreateRentalRequest{ItemID: item.ID, StartDate: "2026-09-01", EndDate: "2026-09-05"}
	if _, err := env.rentals.Create(ctx, "r1", req); err != nil {
		t.Fatalf("first rental: %v", err)
	}
	if _, err := env.rentals.Create(ctx, "r2", req); !errors.Is(err, ErrNotAvailable) {
		t.Fatalf("expected ErrNotAvailable, got %v", err)
	}
}

func TestConcurrentRentalsSingleWinner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "owner", "Owner")
	item := env.seedItem(t, "owner", "Drill")

	const renters = 20
	for i := 0; i < renters; i++ {
		env.seedUser(t, renterID(i), "Renter")
	}

	var wg sync.WaitGroup
	results := make(chan error, renters)
	for i := 0; i < renters; i++ {
		wg.Add(1)
		go func(uid string) {
			defer wg.Done()
			_, err := env.rentals.Create(ctx, uid, models.CreateRentalRequest{
				ItemID:    item.ID,
				StartDate: "2026-09-01",
				EndDate:   "2026-09-05",
			})
			results <- err
		}(renterID(i))
	}
	wg.Wait()
	close(results)

	wins, losses := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrNotAvailable):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one successful rental, got %d", wins)
	}
	if losses != renters-1 {
		t.Fatalf("expected %d ErrNotAvailable, got %d", renters-1, losses)
	}
}

func renterID(i int) string {
	return "renter-" + string(rune('a'+i))
}

func TestCompleteRentalRestoresAvailability(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "owner", "Owner")
	env.seedUser(t, "renter", "Renter")
	item := env.seedItem(t, "owner", "Drill")

	rental, err := env.rentals.Create(ctx, "renter", models.CreateRentalRequest{
		ItemID: item.ID, StartDate: "2026-09-01", EndDate: "2026-09-05",
	})
	if err != nil {
		t.Fatalf("create rental: %v", err)
	}

	done, err := env.rentals.Complete(ctx, rental.ID, "renter")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != models.RentalStatusCompleted {
		t.Fatalf("expected completed status, got %q", done.Status)
	}

	got, err := env.items.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if !got.Available {
		t.Fatal("item must be available again after completion")
	}

	// Completing twice is rejected.
	if _, err := env.rentals.Complete(ctx, rental.ID, "renter"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation on second complete, got %v", err)
	}
}

func TestCompleteRentalForbiddenForThirdParty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "owner", "Owner")
	env.seedUser(t, "renter", "Renter")
	env.seedUser(t, "stranger", "Stranger")
	item := env.seedItem(t, "owner", "Drill")

	rental, err := env.rentals.Create(ctx, "renter", models.CreateRentalRequest{
		ItemID: item.ID, StartDate: "2026-09-01", EndDate: "2026-09-05",
	})
	if err != nil {
		t.Fatalf("create rental: %v", err)
	}

	if _, err := env.rentals.Complete(ctx, rental.ID, "stranger"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// The owner may also complete, not just the renter.
	if _, err := env.rentals.Complete(ctx, rental.ID, "owner"); err != nil {
		t.Fatalf("owner complete: %v", err)
	}
}

func TestBookedDatesDerivedFromActiveRentals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "owner", "Owner")
	env.seedUser(t, "renter", "Renter")
	item := env.seedItem(t, "owner", "Drill")
	other := env.seedItem(t, "owner", "Ladder")

	ranges, err := env.rentals.BookedDates(ctx, item.ID)
	if err != nil {
		t.Fatalf("booked dates: %v", err)
	}
	if len(ranges) != 0 {
		t.Fatalf("expected no booked dates, got %+v", ranges)
	}

	rental, err := env.rentals.Create(ctx, "renter", models.CreateRentalRequest{
		ItemID: item.ID, StartDate: "2026-09-01", EndDate: "2026-09-05",
	})
	if err != nil {
		t.Fatalf("create rental: %v", err)
	}
	if _, err := env.rentals.Create(ctx, "renter", models.CreateRentalRequest{
		ItemID: other.ID, StartDate: "2026-10-01", EndDate: "2026-10-02",
	}); err != nil {
		t.Fatalf("create other rental: %v", err)
	}

	ranges, err = env.rentals.BookedDates(ctx, item.ID)
	if err != nil {
		t.Fatalf("booked dates: %v", err)
	}
	if len(ranges) != 1 {
		t.Fatalf("expected one range, got %+v", ranges)
	}
	if ranges[0].Start != "2026-09-01" || ranges[0].End != "2026-09-05" {
		t.Fatalf("unexpected range: %+v", ranges[0])
	}

	// Completed rentals no longer block the calendar.
	if _, err := env.rentals.Complete(ctx, rental.ID, "renter"); err != nil {
		t.Fatalf("complete: %v", err)
	}
	ranges, err = env.rentals.BookedDates(ctx, item.ID)
	if err != nil {
		t.Fatalf("booked dates after complete: %v", err)
	}
	if len(ranges) != 0 {
		t.Fatalf("completed rental still booked: %+v", ranges)
	}

	if _, err := env.rentals.BookedDates(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
