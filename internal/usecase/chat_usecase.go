package usecase

import (
	"context"

	"minex/internal/domain/entity"

	"github.com/google/uuid"
)

// ChatUsecase covers direct messaging between two members.
type ChatUsecase interface {
	// OpenOrCreateChat returns the chat between the actor and other, creating it on first use.
	OpenOrCreateChat(ctx context.Context, otherUserID uuid.UUID) (*entity.Chat, error)

	SendMessage(ctx context.Context, chatID uuid.UUID, body string) (*entity.Chat, error)
	ListChats(ctx context.Context) ([]*entity.Chat, error)
	GetChat(ctx context.Context, chatID uuid.UUID) (*entity.Chat, error)
}
