package repository

import (
	"context"
	"errors"

	"resback/internal/domain/entity"
)

// ErrVerificationNotFound is returned when a senior has no pending code.
var ErrVerificationNotFound = errors.New("email verification not found")

// VerificationRepository defines persistence for pending email-verification codes.
type VerificationRepository interface {
	// Replace removes any pending code for the senior and stores the new one.
	Replace(ctx context.Context, verification *entity.EmailVerification) error

	// FindBySeniorID retrieves the senior's pending code.
	FindBySeniorID(ctx context.Context, seniorID uint64) (*entity.EmailVerification, error)

	// DeleteBySeniorID removes the senior's pending code, if any.
	DeleteBySeniorID(ctx context.Context, seniorID uint64) error
}
