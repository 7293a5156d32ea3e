package impl

import (
	"context"
	"log/slog"

	"minex/internal/domain/constants"
	"minex/internal/domain/entity"
	"minex/internal/domain/repository"
	"minex/internal/domain/service"
	"minex/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type notificationService struct {
	txManager        repository.TransactionManager
	notificationRepo repository.NotificationRepository
	notifier         *notifier
	metrics          service.MetricsRecorder
	logger           *slog.Logger
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(
	txManager repository.TransactionManager,
	notificationRepo repository.NotificationRepository,
	publisher service.EventPublisher,
	metrics service.MetricsRecorder,
	logger *slog.Logger,
) usecase.NotificationUsecase {
	return &notificationService{
		txManager:        txManager,
		notificationRepo: notificationRepo,
		notifier:         newNotifier(publisher, logger),
		metrics:          metrics,
		logger:           logger,
	}
}

// Notify stores one unread notification and mirrors it onto the event bus.
func (s *notificationService) Notify(ctx context.Context, input *usecase.NotifyInput) (err error) {
	defer recordOf(s.metrics, constants.OpNotify, &err)()

	if input == nil || input.UserID == uuid.Nil {
		return nil
	}

	var notification *entity.Notification
	err = s.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		if _, err := f.UserRepo().FindByID(ctx, input.UserID); err != nil {
			// Notifications for unknown recipients are dropped like missing ones.
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil
			}

			return errors.Wrap(err, "failed to find recipient")
		}

		var err error
		notification, err = s.notifier.stage(ctx, f.NotificationRepo(), input)

		return err
	})
	if err != nil {
		return errors.Wrap(err, "failed to notify")
	}

	s.notifier.publish(ctx, notification)

	return nil
}

// MarkAllRead is idempotent; a second call reports zero changes.
func (s *notificationService) MarkAllRead(ctx context.Context, forUser uuid.UUID) (changed int, err error) {
	defer recordOf(s.metrics, constants.OpMarkAllRead, &err)()

	changed, err = s.notificationRepo.MarkAllRead(ctx, forUser)
	if err != nil {
		return 0, errors.Wrap(err, "failed to mark notifications read")
	}

	return changed, nil
}

func (s *notificationService) ListNotifications(ctx context.Context, forUser uuid.UUID) ([]*entity.Notification, error) {
	notifications, err := s.notificationRepo.ListForUser(ctx, forUser)

	return notifications, errors.Wrap(err, "failed to list notifications")
}
