// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind classifies the system event that produced a notification.
type NotificationKind string

const (
	// NotificationWelcome is sent to a user when they sign in.
	NotificationWelcome NotificationKind = "welcome"
	// NotificationNewPost is fanned out to followers when someone they follow posts.
	NotificationNewPost NotificationKind = "new_post"
	// NotificationComment is sent to a post's author when it receives a comment.
	NotificationComment NotificationKind = "comment"
)

// IsValid reports whether k is a known kind.
func (k NotificationKind) IsValid() bool {
	switch k {
	case NotificationWelcome, NotificationNewPost, NotificationComment:
		return true
	default:
		return false
	}
}

// Notification is an in-app message addressed to one user. Users never
// create notifications directly; they are produced by system events.
type Notification struct {
	ID        uuid.UUID        `json:"id"`         // The Global Unique Identifier (GUID) for the notification.
	UserID    uuid.UUID        `json:"user_id"`    // The recipient.
	Kind      NotificationKind `json:"kind"`       // The event that produced it.
	Title     string           `json:"title"`      // Short headline.
	Body      string           `json:"body"`       // Human readable detail.
	Read      bool             `json:"read"`       // Whether the recipient has seen it.
	CreatedAt time.Time        `json:"created_at"` // Timestamp of when the notification was created.
}
