package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims for session tokens.
type Claims struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
	Role      string
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating session JWTs.
type TokenService interface {
	// GenerateSessionToken signs a token bound to one session of one user.
	GenerateSessionToken(userID, sessionID uuid.UUID, role string) (string, error)

	// ValidateToken checks the validity of a token string.
	ValidateToken(tokenString string) (*Claims, error)

	// GetSessionDuration returns the configured token lifetime.
	GetSessionDuration() time.Duration
}
