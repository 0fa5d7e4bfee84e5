package models

import "time"

// Rental status values. A rental is created active and can only move
// to completed.
const (
	RentalStatusActive    = "active"
	RentalStatusCompleted = "completed"
)

// Rental records an agreement between a renter and an item's owner.
// The item is a full snapshot taken at creation time.
type Rental struct {
	ID        string    `json:"id"`
	Item      Item      `json:"item"`
	RenterID  string    `json:"renterId"`
	OwnerID   string    `json:"ownerId"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// DateRange is a reserved period of an item, derived from its active
// rentals for calendar display. It is never stored.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
