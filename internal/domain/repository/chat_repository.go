package repository

import (
	"context"
	"errors"

	"minex/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrChatNotFound is returned when a chat is not found.
	ErrChatNotFound = errors.New("chat not found")
	// ErrChatExists is returned when creating a second chat for the same pair.
	ErrChatExists = errors.New("chat already exists for pair")
)

// ChatRepository defines persistence operations for direct chats.
type ChatRepository interface {
	// FindByID retrieves a chat by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Chat, error)

	// FindByPair retrieves the chat between a and b regardless of argument order.
	FindByPair(ctx context.Context, a, b uuid.UUID) (*entity.Chat, error)

	// ListForUser returns the chats userID participates in, most recent first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Chat, error)

	// Create stores a new chat. It fails with ErrChatExists if the pair already has one.
	Create(ctx context.Context, chat *entity.Chat) error

	// Update replaces an existing chat.
	Update(ctx context.Context, chat *entity.Chat) error
}
