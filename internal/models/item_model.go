package models

import "time"

// Valid price units for a listing.
var PriceUnits = map[string]bool{
	"hour":  true,
	"day":   true,
	"week":  true,
	"month": true,
}

// ItemOwner is a denormalized snapshot of the owner's profile taken
// when the item is created. Later profile edits do not update it.
type ItemOwner struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Item is a listing in the catalog. Available is owned by the rental
// flow: false iff an active rental references the item.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	PriceUnit   string    `json:"priceUnit"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	ImageURL    string    `json:"imageUrl"`
	Owner       ItemOwner `json:"owner"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"createdAt"`
}
