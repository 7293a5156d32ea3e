package usecase

import (
	"context"

	"minex/internal/domain/entity"

	"github.com/google/uuid"
)

// MineralItemInput is one mineral line item attached to a new post.
type MineralItemInput struct {
	Name    string  `json:"name" validate:"max=120"`
	Grade   string  `json:"grade" validate:"max=120"`
	Tonnage float64 `json:"tonnage" validate:"gte=0"`
}

// CreatePostInput defines the data required to publish a post.
type CreatePostInput struct {
	Title    string             `json:"title" validate:"required,max=200"`
	Body     string             `json:"body" validate:"required,max=5000"`
	Image    string             `json:"image" validate:"max=2048"`
	GroupID  *uuid.UUID         `json:"group_id"`
	Minerals []MineralItemInput `json:"minerals" validate:"dive"`
}

// PostUsecase covers the feed, engagement and search.
type PostUsecase interface {
	CreatePost(ctx context.Context, input *CreatePostInput) (*entity.Post, error)

	// ParseMineralItems parses "name|grade|tonnage;..." into line items.
	ParseMineralItems(spec string) ([]MineralItemInput, error)

	// LikePost increments the like count. Unknown posts are ignored.
	LikePost(ctx context.Context, postID uuid.UUID) error

	AddComment(ctx context.Context, postID uuid.UUID, body string) (*entity.Post, error)
	DeletePost(ctx context.Context, postID uuid.UUID) error

	// ToggleBookmark reports whether the post is bookmarked after the call.
	ToggleBookmark(ctx context.Context, postID uuid.UUID) (bool, error)

	GetPost(ctx context.Context, postID uuid.UUID) (*entity.Post, error)
	ListPosts(ctx context.Context) ([]*entity.Post, error)
	ListBookmarks(ctx context.Context) ([]*entity.Post, error)

	// Search matches title, body or mineral names case-insensitively. A blank query returns every post.
	Search(ctx context.Context, query string) ([]*entity.Post, error)
}
