// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import (
	"time"

	"resback/internal/domain/entity"
)

// TokenService defines the interface for issuing and verifying session tokens.
// This abstracts the signing algorithm and key handling from the use cases.
type TokenService interface {
	// Issue creates a signed token for the given account with the given lifetime.
	Issue(userType entity.UserType, userID uint64, lifetime time.Duration) (*entity.SessionToken, error)

	// Verify checks an encoded token and returns its resolved claims.
	// An empty encoded string yields domain errors.ErrTokenNotExists; any
	// signature, structure or expiry failure yields errors.ErrInvalidToken.
	Verify(encoded string) (*entity.SessionToken, error)

	// AccessTokenDuration returns the configured access token lifetime.
	AccessTokenDuration() time.Duration

	// RefreshTokenDuration returns the configured refresh token lifetime.
	RefreshTokenDuration() time.Duration
}
