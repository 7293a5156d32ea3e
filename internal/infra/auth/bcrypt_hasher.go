// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"minex/config"
	domainerrors "minex/internal/domain/errors"
	"minex/internal/domain/service"
)

// maxPasswordBytes is the input limit of bcrypt; longer passwords are rejected rather than truncated.
const maxPasswordBytes = 72

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost      int
	minLength int
}

// NewBcryptHasher builds a hasher from the auth config section.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	var cost, minLength int
	if cfg.Auth != nil {
		cost = cfg.Auth.BcryptCost
		minLength = cfg.Auth.MinPasswordLength
	}

	return NewBcryptHasherWithCost(cost, minLength)
}

// NewBcryptHasherWithCost falls back to bcrypt.DefaultCost when cost is out of range.
func NewBcryptHasherWithCost(cost, minLength int) service.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if minLength < 1 {
		minLength = 1
	}

	return &bcryptHasher{cost: cost, minLength: minLength}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if err := h.ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < h.minLength {
		return domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("password must be at least %d characters long", h.minLength))
	}
	if len(password) > maxPasswordBytes {
		return domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("password must be at most %d bytes long", maxPasswordBytes))
	}

	return nil
}
