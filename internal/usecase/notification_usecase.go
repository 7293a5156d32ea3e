package usecase

import (
	"context"

	"minex/internal/domain/entity"

	"github.com/google/uuid"
)

// NotifyInput addresses one notification to one user.
type NotifyInput struct {
	UserID uuid.UUID
	Kind   entity.NotificationKind
	Title  string
	Body   string
}

// NotificationUsecase defines the interface for in-app notifications
type NotificationUsecase interface {
	// Notify stores an unread notification. A nil user ID is a no-op.
	Notify(ctx context.Context, input *NotifyInput) error

	// MarkAllRead returns how many notifications changed state.
	MarkAllRead(ctx context.Context, forUser uuid.UUID) (int, error)

	ListNotifications(ctx context.Context, forUser uuid.UUID) ([]*entity.Notification, error)
}
