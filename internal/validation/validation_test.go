package validation

import (
	"testing"

	domainerrors "minex/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Tonnage float64 `json:"tonnage" validate:"gte=0"`
}

type sample struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=miner dealer"`
	Items []item `json:"items" validate:"dive"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(&sample{Email: "mina@example.com", Role: "miner"}))
}

func TestStruct_ReportsFieldsByJSONName(t *testing.T) {
	err := Struct(&sample{Email: "not-an-email", Role: "pirate", Items: []item{{Tonnage: -1}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details(), "email must be a valid email")
	assert.Contains(t, appErr.Details(), "role must be one of: miner dealer")
	assert.Contains(t, appErr.Details(), "items[0].tonnage must be at least 0")
}

func TestStruct_Required(t *testing.T) {
	err := Struct(&sample{})

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "email is required", appErr.Details())
}
