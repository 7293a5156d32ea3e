package repository

import (
	"context"
	"errors"

	"minex/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPostNotFound is returned when a post is not found.
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	// FindByID retrieves a post by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)

	// List returns every post, most recent first.
	List(ctx context.Context) ([]*entity.Post, error)

	// ListByAuthor returns the posts written by authorID, most recent first.
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entity.Post, error)

	// ListByGroup returns the posts shared to groupID, most recent first.
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*entity.Post, error)

	// Create stores a new post at the head of the feed.
	Create(ctx context.Context, post *entity.Post) error

	// Update replaces an existing post.
	Update(ctx context.Context, post *entity.Post) error

	// Delete removes a post.
	Delete(ctx context.Context, id uuid.UUID) error
}
