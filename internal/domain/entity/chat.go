package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Chat is a direct conversation between two distinct users.
// The pair is unordered: (A, B) and (B, A) identify the same chat.
type Chat struct {
	ID        uuid.UUID `json:"id"`
	UserA     uuid.UUID `json:"user_a"`
	UserB     uuid.UUID `json:"user_b"`
	Messages  []Message `json:"messages"` // Most recent first.
	CreatedAt time.Time `json:"created_at"`
}

// Message is a single immutable chat entry.
type Message struct {
	SenderID  uuid.UUID `json:"sender_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// IsBetween reports whether the chat joins a and b, in either order.
func (c *Chat) IsBetween(a, b uuid.UUID) bool {
	return (c.UserA == a && c.UserB == b) || (c.UserA == b && c.UserB == a)
}

// Involves reports whether userID is one of the participants.
func (c *Chat) Involves(userID uuid.UUID) bool {
	return c.UserA == userID || c.UserB == userID
}

// Counterpart returns the participant that is not userID.
func (c *Chat) Counterpart(userID uuid.UUID) uuid.UUID {
	if c.UserA == userID {
		return c.UserB
	}

	return c.UserA
}

// Clone returns a deep copy of the chat.
func (c *Chat) Clone() *Chat {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Messages = slices.Clone(c.Messages)

	return &cp
}
