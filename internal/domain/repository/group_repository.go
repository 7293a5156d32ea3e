package repository

import (
	"context"
	"errors"

	"minex/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrGroupNotFound is returned when a group is not found.
var ErrGroupNotFound = errors.New("group not found")

// GroupRepository defines persistence operations for groups.
type GroupRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Group, error)
	List(ctx context.Context) ([]*entity.Group, error)
	Create(ctx context.Context, group *entity.Group) error
	Update(ctx context.Context, group *entity.Group) error
}

// MineralRepository defines persistence operations for marketplace listings.
type MineralRepository interface {
	List(ctx context.Context) ([]*entity.MineralListing, error)
	Create(ctx context.Context, listing *entity.MineralListing) error
}
