// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"resback/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateUser is returned when a unique constraint on a user row is violated.
var ErrDuplicateUser = errors.New("user already exists")

// NormalUserRepository defines the standard operations for normal (mentee) user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type NormalUserRepository interface {
	// FindByID retrieves a single normal user by their numeric ID.
	FindByID(ctx context.Context, id uint64) (*entity.NormalUser, error)

	// FindByOAuthIdentity retrieves a normal user by their provider identity pair.
	FindByOAuthIdentity(ctx context.Context, provider entity.OAuthProvider, oauthID string) (*entity.NormalUser, error)

	// Create persists a new normal user and fills in the generated ID.
	Create(ctx context.Context, user *entity.NormalUser) error

	// Update modifies an existing normal user.
	Update(ctx context.Context, user *entity.NormalUser) error

	// UpdateRefreshToken overwrites the stored refresh token for a user.
	// An empty token clears the session.
	UpdateRefreshToken(ctx context.Context, id uint64, refreshToken string) error

	// Delete removes a normal user.
	Delete(ctx context.Context, id uint64) error
}
