// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"minex/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to create an account.
type RegisterInput struct {
	Name     string `json:"name" validate:"max=120"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=miner dealer buyer"`
}

// AuthenticateInput defines the data required to sign in.
type AuthenticateInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password"`
}

// --- Output DTOs ---

// AuthenticateOutput returns the signed-in user and the token bound to the new session.
type AuthenticateOutput struct {
	User    *entity.User    `json:"user"`
	Session *entity.Session `json:"session"`
	Token   string          `json:"token"`
}

// IdentityUsecase covers registration and the process-wide session.
type IdentityUsecase interface {
	// Register creates an unverified account. It does not sign the user in.
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)

	// Authenticate replaces any active session and emits a welcome notification.
	Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthenticateOutput, error)

	// EndSession clears the active session unconditionally.
	EndSession(ctx context.Context) error

	// CurrentUser returns the user behind the active session.
	CurrentUser(ctx context.Context) (*entity.User, error)

	// ResolveSession checks that token was issued for the session that is still active.
	ResolveSession(ctx context.Context, token string) (*entity.User, error)
}
