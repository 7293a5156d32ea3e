package memory

import (
	"context"

	"minex/internal/domain/entity"
	"minex/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// notificationRepository implements repository.NotificationRepository over the Store.
type notificationRepository struct {
	acc access
}

func NewNotificationRepository(store *Store) repository.NotificationRepository {
	return &notificationRepository{acc: access{store: store}}
}

func (repo *notificationRepository) Create(_ context.Context, notification *entity.Notification) error {
	if notification == nil || notification.ID == uuid.Nil {
		return errors.New("notification with an id is required")
	}

	return repo.acc.write(func(s *state) error {
		cp := *notification
		s.notifications = append([]*entity.Notification{&cp}, s.notifications...)

		return nil
	})
}

func (repo *notificationRepository) ListForUser(_ context.Context, userID uuid.UUID) ([]*entity.Notification, error) {
	out := []*entity.Notification{}
	err := repo.acc.read(func(s *state) error {
		for _, n := range s.notifications {
			if n.UserID == userID {
				cp := *n
				out = append(out, &cp)
			}
		}

		return nil
	})

	return out, err
}

func (repo *notificationRepository) MarkAllRead(_ context.Context, userID uuid.UUID) (int, error) {
	changed := 0
	err := repo.acc.write(func(s *state) error {
		for _, n := range s.notifications {
			if n.UserID == userID && !n.Read {
				n.Read = true
				changed++
			}
		}

		return nil
	})

	return changed, err
}

// sessionRepository implements repository.SessionRepository over the Store.
type sessionRepository struct {
	acc access
}

func NewSessionRepository(store *Store) repository.SessionRepository {
	return &sessionRepository{acc: access{store: store}}
}

func (repo *sessionRepository) Current(_ context.Context) (*entity.Session, error) {
	var out *entity.Session
	err := repo.acc.read(func(s *state) error {
		if s.session == nil {
			return repository.ErrNoActiveSession
		}
		cp := *s.session
		out = &cp

		return nil
	})

	return out, err
}

func (repo *sessionRepository) Start(_ context.Context, session *entity.Session) error {
	if session == nil || session.UserID == uuid.Nil {
		return errors.New("session with a user id is required")
	}

	return repo.acc.write(func(s *state) error {
		cp := *session
		s.session = &cp

		return nil
	})
}

func (repo *sessionRepository) End(_ context.Context) error {
	return repo.acc.write(func(s *state) error {
		s.session = nil

		return nil
	})
}
