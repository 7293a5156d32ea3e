// Package validator adapts the shared struct validator to echo.
package validator

import (
	"minex/internal/validation"

	"github.com/labstack/echo/v4"
)

// Validator implements echo.Validator. Failures are domain validation errors.
type Validator struct{}

// New returns a validator for echo.Echo.Validator.
func New() echo.Validator {
	return &Validator{}
}

// Validate checks i against its validate tags.
func (v *Validator) Validate(i any) error {
	return validation.Struct(i)
}
