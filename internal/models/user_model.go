package models

import "time"

// User is the application profile of an authenticated account. The ID
// is the identity provider's uid; credentials never touch this system.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}
