// Package validator wires go-playground/validator into echo.
package validator

import (
	domainerrors "resback/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
)

// EchoValidator adapts a playground validator to echo's Validator interface.
type EchoValidator struct {
	validate *playground.Validate
}

// New builds the validator used for request binding.
func New() *EchoValidator {
	return &EchoValidator{validate: playground.New(playground.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator. Failures surface as the domain's
// validation error so the error middleware renders them uniformly.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
