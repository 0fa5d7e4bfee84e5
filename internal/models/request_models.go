package models

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// CreateItemRequest is the body of POST /items. Field-level rules
// (price > 0, known price unit) are enforced by the item service.
type CreateItemRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	PriceUnit   string  `json:"priceUnit"`
	Category    string  `json:"category"`
	Location    string  `json:"location"`
	ImageURL    string  `json:"imageUrl"`
}

// UpdateItemRequest is the body of PUT /items/:id. Pointers
// distinguish a field deliberately set to its zero value from one not
// provided at all. The id and owner snapshot are not patchable, and
// availability is owned by the rental flow.
type UpdateItemRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	PriceUnit   *string  `json:"priceUnit,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Location    *string  `json:"location,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
}

// CreateRentalRequest is the body of POST /rentals. Dates are
// "2006-01-02" or RFC 3339 strings.
type CreateRentalRequest struct {
	ItemID    string `json:"itemId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// SendMessageRequest is the body of POST /messages.
type SendMessageRequest struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}
