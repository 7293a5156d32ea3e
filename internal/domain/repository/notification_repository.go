// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"minex/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrNoActiveSession is returned when no session has been established.
var ErrNoActiveSession = errors.New("no active session")

// NotificationRepository defines the interface for notification persistence.
type NotificationRepository interface {
	// Create persists a new notification at the head of the recipient's list.
	Create(ctx context.Context, notification *entity.Notification) error

	// ListForUser returns the notifications addressed to userID, most recent first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error)

	// MarkAllRead flags every notification of userID as read and returns how many changed.
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error)
}

// SessionRepository holds the single process-wide session.
type SessionRepository interface {
	// Current returns the active session or ErrNoActiveSession.
	Current(ctx context.Context) (*entity.Session, error)

	// Start replaces any active session with session.
	Start(ctx context.Context, session *entity.Session) error

	// End clears the active session. Ending when none is active is not an error.
	End(ctx context.Context) error
}
