package usecase

import (
	"context"

	"minex/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileOutput is a member's public page as seen by the current viewer.
type ProfileOutput struct {
	User          *entity.User   `json:"user"`
	Posts         []*entity.Post `json:"posts"`
	FollowerCount int            `json:"follower_count"`
	// FollowedByViewer is false when nobody is signed in.
	FollowedByViewer bool `json:"followed_by_viewer"`
}

// SocialUsecase covers the follow graph and member directory.
type SocialUsecase interface {
	// ToggleFollow reports whether the actor follows the target after the call.
	ToggleFollow(ctx context.Context, targetUserID uuid.UUID) (bool, error)

	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileOutput, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
	ListStories(ctx context.Context, userID uuid.UUID) ([]entity.Story, error)

	// FollowQRCode returns a PNG encoding a follow link for the user.
	FollowQRCode(ctx context.Context, userID uuid.UUID) ([]byte, error)

	// FollowByLink follows the user named by a scanned follow link. Already following is not an error.
	FollowByLink(ctx context.Context, link string) (*entity.User, error)
}
