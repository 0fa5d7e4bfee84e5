package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentify-backend-go/internal/kv"
	"rentify-backend-go/internal/models"
)

// defaultItemImageURL backs listings created without a photo.
const defaultItemImageURL = "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=800&h=600&fit=crop"

type itemService struct {
	store   kv.Store
	indexes *indexStore
	locks   *KeyLock
	logger  *zap.Logger
}

// NewItemService creates an ItemService. The KeyLock must be the same
// instance the rental service uses, so that item-record writes here
// serialize with availability flips there.
func NewItemService(store kv.Store, locks *KeyLock, logger *zap.Logger) ItemService {
	return &itemService{
		store:   store,
		indexes: &indexStore{store: store, locks: locks},
		locks:   locks,
		logger:  logger,
	}
}

func validateItemFields(title, description string, price float64, priceUnit, category, location string) error {
	switch {
	case strings.TrimSpace(title) == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case strings.TrimSpace(description) == "":
		return fmt.Errorf("%w: description is required", ErrValidation)
	case price <= 0:
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	case !models.PriceUnits[priceUnit]:
		return fmt.Errorf("%w: price unit must be one of hour, day, week, month", ErrValidation)
	case strings.TrimSpace(category) == "":
		return fmt.Errorf("%w: category is required", ErrValidation)
	case strings.TrimSpace(location) == "":
		return fmt.Errorf("%w: location is required", ErrValidation)
	}
	return nil
}

func (s *itemService) Create(ctx context.Context, ownerID string, req models.CreateItemRequest) (*models.Item, error) {
	if err := validateItemFields(req.Title, req.Description, req.Price, req.PriceUnit, req.Category, req.Location); err != nil {
		return nil, err
	}

	owner, err := getRecord[models.User](ctx, s.store, kv.UserKey(ownerID))
	if errors.Is(err, kv.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: owner profile %q", ErrNotFound, ownerID)
	}
	if err != nil {
		return nil, fmt.Errorf("get owner %q: %w", ownerID, err)
	}

	imageURL := req.ImageURL
	if imageURL == "" {
		imageURL = defaultItemImageURL
	}

	item := &models.Item{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		PriceUnit:   req.PriceUnit,
		Category:    req.Category,
		Location:    req.Location,
		ImageURL:    imageURL,
		Owner: models.ItemOwner{
			ID:     owner.ID,
			Name:   owner.Name,
			Avatar: owner.Avatar,
		},
		Available: true,
		CreatedAt: time.Now().UTC(),
	}

	// Two independent writes. A crash in between leaves a listing id
	// with no item record, which readers drop silently.
	if err := putRecord(ctx, s.store, kv.ItemKey(item.ID), item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	if err := s.indexes.append(ctx, kv.ListingsKey(ownerID), item.ID); err != nil {
		return nil, fmt.Errorf("index listing: %w", err)
	}

	s.logger.Info("item created",
		zap.String("itemId", item.ID),
		zap.String("ownerId", ownerID),
		zap.String("category", item.Category))
	return item, nil
}

func (s *itemService) GetByID(ctx context.Context, id string) (*models.Item, error) {
	item, err := getRecord[models.Item](ctx, s.store, kv.ItemKey(id))
	if errors.Is(err, kv.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: item %q", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get item %q: %w", id, err)
	}
	return item, nil
}

// List performs a full scan of the item prefix. There is no secondary
// index for categories or text search at this scale.
func (s *itemService) List(ctx context.Context, category, search string) ([]*models.Item, error) {
	values, err := s.store.GetByPrefix(ctx, kv.ItemPrefix)
	if err != nil {
		return nil, fmt.Errorf("scan items: %w", err)
	}

	searchLower := strings.ToLower(search)
	filterCategory := category != "" && category != "All"

	items := make([]*models.Item, 0, len(values))
	for _, data := range values {
		var item models.Item
		if err := kv.Decode(data, &item); err != nil {
			s.logger.Warn("dropping undecodable item record", zap.Error(err))
			continue
		}
		if filterCategory && item.Category != category {
			continue
		}
		if searchLower != "" &&
			!strings.Contains(strings.ToLower(item.Title), searchLower) &&
			!strings.Contains(strings.ToLower(item.Description), searchLower) {
			continue
		}
		items = append(items, &item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *itemService) Update(ctx context.Context, id, callerID string, req models.UpdateItemRequest) (*models.Item, error) {
	release, err := s.locks.Acquire(ctx, kv.ItemKey(id))
	if err != nil {
		return nil, err
	}
	defer release()

	item, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Owner.ID != callerID {
		return nil, fmt.Errorf("%w: only the owner can update an item", ErrForbidden)
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.PriceUnit != nil {
		item.PriceUnit = *req.PriceUnit
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}

	if err := validateItemFields(item.Title, item.Description, item.Price, item.PriceUnit, item.Category, item.Location); err != nil {
		return nil, err
	}
	if err := putRecord(ctx, s.store, kv.ItemKey(id), item); err != nil {
		return nil, fmt.Errorf("update item %q: %w", id, err)
	}
	return item, nil
}

func (s *itemService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Item, error) {
	ids, err := s.indexes.ids(ctx, kv.ListingsKey(ownerID))
	if err != nil {
		return nil, fmt.Errorf("read listings index: %w", err)
	}

	items := make([]*models.Item, 0, len(ids))
	for _, id := range ids {
		item, err := getRecord[models.Item](ctx, s.store, kv.ItemKey(id))
		if errors.Is(err, kv.ErrKeyNotFound) || errors.Is(err, kv.ErrCorruptRecord) {
			// Orphaned index entry, tolerated.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve listing %q: %w", id, err)
		}
		items = append(items, item)
	}
	return items, nil
}
