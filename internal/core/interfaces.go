package core

import (
	"context"

	"rentify-backend-go/internal/models"
)

// UserService manages application profiles for authenticated accounts.
type UserService interface {
	// GetOrCreate retrieves the profile for uid, creating it with
	// defaults when absent. The bool reports whether it was created.
	GetOrCreate(ctx context.Context, uid, email, name string) (*models.User, bool, error)
	GetByID(ctx context.Context, uid string) (*models.User, error)
}

// ItemService manages catalog listings and the owner→listings index.
type ItemService interface {
	Create(ctx context.Context, ownerID string, req models.CreateItemRequest) (*models.Item, error)
	GetByID(ctx context.Context, id string) (*models.Item, error)
	// List returns the catalog newest-first, optionally filtered by
	// exact category ("All" disables the filter) and a
	// case-insensitive substring search over title and description.
	List(ctx context.Context, category, search string) ([]*models.Item, error)
	Update(ctx context.Context, id, callerID string, req models.UpdateItemRequest) (*models.Item, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Item, error)
}

// RentalService manages rental agreements, the per-user rental
// indexes, and item availability.
type RentalService interface {
	Create(ctx context.Context, renterID string, req models.CreateRentalRequest) (*models.Rental, error)
	// Complete transitions an active rental to completed and restores
	// the item's availability. Only the renter or the owner may call it.
	Complete(ctx context.Context, rentalID, callerID string) (*models.Rental, error)
	ListForRenter(ctx context.Context, uid string) ([]*models.Rental, error)
	ListForOwner(ctx context.Context, uid string) ([]*models.Rental, error)
	// BookedDates derives an item's reserved periods from its active
	// rentals; nothing is stored for this.
	BookedDates(ctx context.Context, itemID string) ([]models.DateRange, error)
}

// MessageService manages chat messages, canonical conversation
// threads, and the per-user partner lists.
type MessageService interface {
	Send(ctx context.Context, senderID string, req models.SendMessageRequest) (*models.Message, error)
	ListBetween(ctx context.Context, userA, userB string) ([]*models.Message, error)
	ListConversations(ctx context.Context, uid string) ([]*models.Conversation, error)
}
