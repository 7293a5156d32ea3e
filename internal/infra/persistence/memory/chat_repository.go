package memory

import (
	"context"

	"minex/internal/domain/entity"
	"minex/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// chatRepository implements repository.ChatRepository over the Store.
type chatRepository struct {
	acc access
}

func NewChatRepository(store *Store) repository.ChatRepository {
	return &chatRepository{acc: access{store: store}}
}

func (repo *chatRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Chat, error) {
	var out *entity.Chat
	err := repo.acc.read(func(s *state) error {
		c, ok := s.chats[id]
		if !ok {
			return repository.ErrChatNotFound
		}
		out = c.Clone()

		return nil
	})

	return out, err
}

func (repo *chatRepository) FindByPair(_ context.Context, a, b uuid.UUID) (*entity.Chat, error) {
	var out *entity.Chat
	err := repo.acc.read(func(s *state) error {
		c := findPair(s, a, b)
		if c == nil {
			return repository.ErrChatNotFound
		}
		out = c.Clone()

		return nil
	})

	return out, err
}

func (repo *chatRepository) ListForUser(_ context.Context, userID uuid.UUID) ([]*entity.Chat, error) {
	out := []*entity.Chat{}
	err := repo.acc.read(func(s *state) error {
		for _, id := range s.chatOrder {
			if c := s.chats[id]; c.Involves(userID) {
				out = append(out, c.Clone())
			}
		}

		return nil
	})

	return out, err
}

func (repo *chatRepository) Create(_ context.Context, chat *entity.Chat) error {
	if chat == nil || chat.ID == uuid.Nil {
		return errors.New("chat with an id is required")
	}
	if chat.UserA == chat.UserB {
		return errors.New("chat participants must differ")
	}

	return repo.acc.write(func(s *state) error {
		if findPair(s, chat.UserA, chat.UserB) != nil {
			return repository.ErrChatExists
		}
		s.chats[chat.ID] = chat.Clone()
		s.chatOrder = prepend(s.chatOrder, chat.ID)

		return nil
	})
}

func (repo *chatRepository) Update(_ context.Context, chat *entity.Chat) error {
	if chat == nil {
		return errors.New("chat is required")
	}

	return repo.acc.write(func(s *state) error {
		if _, ok := s.chats[chat.ID]; !ok {
			return repository.ErrChatNotFound
		}
		s.chats[chat.ID] = chat.Clone()

		return nil
	})
}

func findPair(s *state, a, b uuid.UUID) *entity.Chat {
	for _, c := range s.chats {
		if c.IsBetween(a, b) {
			return c
		}
	}

	return nil
}
