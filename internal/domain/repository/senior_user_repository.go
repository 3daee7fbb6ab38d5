package repository

import (
	"context"

	"resback/internal/domain/entity"
)

// SeniorSearchFilter narrows a senior search. Zero-value fields are ignored.
type SeniorSearchFilter struct {
	Major   string // Exact match on major.
	Keyword string // Substring match over nickname, careers and description.
}

// SeniorUserRepository defines the standard operations for senior (mentor) user persistence.
type SeniorUserRepository interface {
	// FindByID retrieves a single senior user by their numeric ID.
	FindByID(ctx context.Context, id uint64) (*entity.SeniorUser, error)

	// FindByEmail retrieves a senior user by their login email.
	FindByEmail(ctx context.Context, email string) (*entity.SeniorUser, error)

	// Search lists senior users matching the filter.
	Search(ctx context.Context, filter SeniorSearchFilter) ([]*entity.SeniorUser, error)

	// Create persists a new senior user and fills in the generated ID.
	Create(ctx context.Context, user *entity.SeniorUser) error

	// Update modifies an existing senior user.
	Update(ctx context.Context, user *entity.SeniorUser) error

	// UpdateRefreshToken overwrites the stored refresh token for a user.
	// An empty token clears the session.
	UpdateRefreshToken(ctx context.Context, id uint64, refreshToken string) error

	// SetEmailVerified marks the senior's email address as verified.
	SetEmailVerified(ctx context.Context, id uint64) error

	// Delete removes a senior user.
	Delete(ctx context.Context, id uint64) error
}
