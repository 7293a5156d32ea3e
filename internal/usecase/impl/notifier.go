package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "minex/internal/delivery/context"
	"minex/internal/domain/entity"
	"minex/internal/domain/repository"
	"minex/internal/domain/service"
	"minex/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// notifier stages notifications inside a unit of work and mirrors them onto the
// event bus once the unit of work has committed.
type notifier struct {
	publisher service.EventPublisher
	logger    *slog.Logger
}

func newNotifier(publisher service.EventPublisher, logger *slog.Logger) *notifier {
	return &notifier{publisher: publisher, logger: logger}
}

// stage stores an unread notification. A nil recipient yields (nil, nil).
func (n *notifier) stage(ctx context.Context, repo repository.NotificationRepository, input *usecase.NotifyInput) (*entity.Notification, error) {
	if input == nil || input.UserID == uuid.Nil {
		return nil, nil
	}

	notification := &entity.Notification{
		ID:        uuid.New(),
		UserID:    input.UserID,
		Kind:      input.Kind,
		Title:     input.Title,
		Body:      input.Body,
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, notification); err != nil {
		return nil, errors.Wrap(err, "failed to store notification")
	}

	return notification, nil
}

// publish is best effort: failures are logged and never returned.
func (n *notifier) publish(ctx context.Context, notifications ...*entity.Notification) {
	if n.publisher == nil {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, n.logger)
	requestID := deliverycontext.GetRequestIDFromContext(ctx)

	for _, notification := range notifications {
		if notification == nil {
			continue
		}

		event := &service.NotificationEvent{
			RequestID:      requestID,
			NotificationID: notification.ID.String(),
			UserID:         notification.UserID.String(),
			Kind:           string(notification.Kind),
			Title:          notification.Title,
			Body:           notification.Body,
			CreatedAt:      notification.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := n.publisher.PublishNotificationEvent(ctx, event); err != nil {
			logger.Warn("Failed to publish notification event",
				slog.String("notification_id", event.NotificationID),
				slog.Any("error", err),
			)
		}
	}
}
