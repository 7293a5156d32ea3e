package usecase

import (
	"context"

	"minex/internal/domain/entity"

	"github.com/google/uuid"
)

// AdminUsecase covers moderation. Every operation requires an admin session.
type AdminUsecase interface {
	VerifyUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// SuspendUser ends the active session when it belongs to the suspended user.
	SuspendUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
