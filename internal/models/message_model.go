package models

import "time"

// Message is a single chat message. Immutable once written.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}

// Conversation is the summary of one chat thread as seen by a user:
// the partner's profile and the most recent message.
type Conversation struct {
	UserID          string    `json:"userId"`
	UserName        string    `json:"userName"`
	UserAvatar      string    `json:"userAvatar"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageTime time.Time `json:"lastMessageTime"`
	Unread          int       `json:"unread"`
}
