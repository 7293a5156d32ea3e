package usecase

import (
	"context"

	"minex/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateGroupInput defines the data required to start a group.
type CreateGroupInput struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=1000"`
}

// GroupUsecase covers community groups.
type GroupUsecase interface {
	CreateGroup(ctx context.Context, input *CreateGroupInput) (*entity.Group, error)

	// JoinGroup is idempotent.
	JoinGroup(ctx context.Context, groupID uuid.UUID) (*entity.Group, error)

	ListGroups(ctx context.Context) ([]*entity.Group, error)
	GroupFeed(ctx context.Context, groupID uuid.UUID) ([]*entity.Post, error)
}
