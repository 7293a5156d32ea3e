package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the single active acting identity of the process.
// It carries only the user's ID; user data is always read from the user collection.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	StartedAt time.Time `json:"started_at"`
}
