package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentify-backend-go/internal/kv"
	"rentify-backend-go/internal/models"
)

type rentalService struct {
	store   kv.Store
	indexes *indexStore
	locks   *KeyLock
	logger  *zap.Logger
}

// NewRentalService creates a RentalService. The KeyLock must be shared
// with the item service; the per-item lock is what guarantees at most
// one active rental per item under concurrent requests.
func NewRentalService(store kv.Store, locks *KeyLock, logger *zap.Logger) RentalService {
	return &rentalService{
		store:   store,
		indexes: &indexStore{store: store, locks: locks},
		locks:   locks,
		logger:  logger,
	}
}

// parseDate accepts the date-only form clients send and full RFC 3339
// timestamps.
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
}

func (s *rentalService) Create(ctx context.Context, renterID string, req models.CreateRentalRequest) (*models.Rental, error) {
	if strings.TrimSpace(req.ItemID) == "" {
		return nil, fmt.Errorf("%w: itemId is required", ErrValidation)
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start date must be before end date", ErrValidation)
	}

	// The whole check-then-book sequence runs under the item's lock.
	// Two renters racing for the same item serialize here; the loser
	// re-reads the flipped flag and gets ErrNotAvailable.
	release, err := s.locks.Acquire(ctx, kv.ItemKey(req.ItemID))
	if err != nil {
		return nil, err
	}
	defer release()

	item, err := getRecord[models.Item](ctx, s.store, kv.ItemKey(req.ItemID))
	if errors.Is(err, kv.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: item %q", ErrNotFound, req.ItemID)
	}
	if err != nil {
		return nil, fmt.Errorf("get item %q: %w", req.ItemID, err)
	}
	if !item.Available {
		return nil, ErrNotAvailable
	}

	rental := &models.Rental{
		ID:        uuid.NewString(),
		Item:      *item,
		RenterID:  renterID,
		OwnerID:   item.Owner.ID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    models.RentalStatusActive,
		CreatedAt: time.Now().UTC(),
	}

	if err := putRecord(ctx, s.store, kv.RentalKey(rental.ID), rental); err != nil {
		return nil, fmt.Errorf("create rental: %w", err)
	}
	if err := s.indexes.append(ctx, kv.RenterRentalsKey(renterID), rental.ID); err != nil {
		return nil, fmt.Errorf("index renter rental: %w", err)
	}
	if err := s.indexes.append(ctx, kv.OwnerRentalsKey(item.Owner.ID), rental.ID); err != nil {
		return nil, fmt.Errorf("index owner rental: %w", err)
	}

	// The availability flip is the last, gating write: nothing follows
	// it, so a failure anywhere in the sequence can strand index
	// entries (dropped on read) but never double-book.
	item.Available = false
	if err := putRecord(ctx, s.store, kv.ItemKey(item.ID), item); err != nil {
		return nil, fmt.Errorf("flip item availability: %w", err)
	}

	s.logger.Info("rental created",
		zap.String("rentalId", rental.ID),
		zap.String("itemId", item.ID),
		zap.String("renterId", renterID))
	return rental, nil
}

func (s *rentalService) Complete(ctx context.Context, rentalID, callerID string) (*models.Rental, error) {
	rental, err := getRecord[models.Rental](ctx, s.store, kv.RentalKey(rentalID))
	if errors.Is(err, kv.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: rental %q", ErrNotFound, rentalID)
	}
	if err != nil {
		return nil, fmt.Errorf("get rental %q: %w", rentalID, err)
	}
	if callerID != rental.RenterID && callerID != rental.OwnerID {
		return nil, fmt.Errorf("%w: only the renter or the owner can complete a rental", ErrForbidden)
	}

	release, err := s.locks.Acquire(ctx, kv.ItemKey(rental.Item.ID))
	if err != nil {
		return nil, err
	}
	defer release()

	// Re-read under the lock; a concurrent Complete must not run twice.
	rental, err = getRecord[models.Rental](ctx, s.store, kv.RentalKey(rentalID))
	if err != nil {
		return nil, fmt.Errorf("get rental %q: %w", rentalID, err)
	}
	if rental.Status != models.RentalStatusActive {
		return nil, fmt.Errorf("%w: rental is not active", ErrValidation)
	}

	rental.Status = models.RentalStatusCompleted
	if err := putRecord(ctx, s.store, kv.RentalKey(rentalID), rental); err != nil {
		return nil, fmt.Errorf("complete rental %q: %w", rentalID, err)
	}

	item, err := getRecord[models.Item](ctx, s.store, kv.ItemKey(rental.Item.ID))
	if errors.Is(err, kv.ErrKeyNotFound) {
		// Item record lost; the rental is still completed.
		s.logger.Warn("completed rental references missing item",
			zap.String("rentalId", rentalID),
			zap.String("itemId", rental.Item.ID))
		return rental, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item %q: %w", rental.Item.ID, err)
	}
	item.Available = true
	if err := putRecord(ctx, s.store, kv.ItemKey(item.ID), item); err != nil {
		return nil, fmt.Errorf("restore item availability: %w", err)
	}

	s.logger.Info("rental completed",
		zap.String("rentalId", rentalID),
		zap.String("itemId", item.ID))
	return rental, nil
}

func (s *rentalService) ListForRenter(ctx context.Context, uid string) ([]*models.Rental, error) {
	return s.resolve(ctx, kv.RenterRentalsKey(uid))
}

func (s *rentalService) ListForOwner(ctx context.Context, uid string) ([]*models.Rental, error) {
	return s.resolve(ctx, kv.OwnerRentalsKey(uid))
}

func (s *rentalService) resolve(ctx context.Context, indexKey string) ([]*models.Rental, error) {
	ids, err := s.indexes.ids(ctx, indexKey)
	if err != nil {
		return nil, fmt.Errorf("read rental index: %w", err)
	}
	rentals := make([]*models.Rental, 0, len(ids))
	for _, id := range ids {
		rental, err := getRecord[models.Rental](ctx, s.store, kv.RentalKey(id))
		if errors.Is(err, kv.ErrKeyNotFound) || errors.Is(err, kv.ErrCorruptRecord) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve rental %q: %w", id, err)
		}
		rentals = append(rentals, rental)
	}
	return rentals, nil
}

// BookedDates computes an item's reserved periods from its active
// rentals. Deriving this on read keeps a single source of truth
// instead of a stored calendar that can drift.
func (s *rentalService) BookedDates(ctx context.Context, itemID string) ([]models.DateRange, error) {
	item, err := getRecord[models.Item](ctx, s.store, kv.ItemKey(itemID))
	if errors.Is(err, kv.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: item %q", ErrNotFound, itemID)
	}
	if err != nil {
		return nil, fmt.Errorf("get item %q: %w", itemID, err)
	}

	rentals, err := s.ListForOwner(ctx, item.Owner.ID)
	if err != nil {
		return nil, err
	}
	ranges := make([]models.DateRange, 0)
	for _, rental := range rentals {
		if rental.Item.ID != itemID || rental.Status != models.RentalStatusActive {
			continue
		}
		ranges = append(ranges, models.DateRange{Start: rental.StartDate, End: rental.EndDate})
	}
	return ranges, nil
}
