package web

import (
	"github.com/go-playground/validator/v10"
)

// StructValidator plugs go-playground/validator into fiber's binder.
type StructValidator struct {
	validate *validator.Validate
}

// NewStructValidator creates a StructValidator.
func NewStructValidator() *StructValidator {
	return &StructValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements fiber.StructValidator.
func (v *StructValidator) Validate(out any) error {
	return v.validate.Struct(out) //nolint:wrapcheck
}
