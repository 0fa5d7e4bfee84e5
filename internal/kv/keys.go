package kv

import (
	"sort"
	"strings"
)

// Entity records live under the singular prefixes; the derived index
// lists maintained by the services live under the composite ones.
const (
	UserPrefix    = "user:"
	ItemPrefix    = "item:"
	RentalPrefix  = "rental:"
	MessagePrefix = "message:"
)

func UserKey(uid string) string   { return UserPrefix + uid }
func ItemKey(id string) string    { return ItemPrefix + id }
func RentalKey(id string) string  { return RentalPrefix + id }
func MessageKey(id string) string { return MessagePrefix + id }

// ListingsKey holds the ids of the items a user has listed.
func ListingsKey(uid string) string { return "listings:user:" + uid }

// RenterRentalsKey and OwnerRentalsKey hold the rental ids a user is
// party to, one list per side of the agreement.
func RenterRentalsKey(uid string) string { return "rentals:renter:" + uid }
func OwnerRentalsKey(uid string) string  { return "rentals:owner:" + uid }

// ConversationsKey holds the ids of the users someone has exchanged at
// least one message with.
func ConversationsKey(uid string) string { return "conversations:" + uid }

// ConversationKey is the canonical key of the message-id list shared
// by two users: their ids sorted and joined, so both send directions
// resolve to the same thread.
func ConversationKey(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return "messages:" + strings.Join(pair, ":")
}
