// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"resback/internal/domain/entity"
)

// --- Input DTOs ---

// SeniorLoginInput defines the credentials for a senior password login.
type SeniorLoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// LoginOutput returns the issued session tokens after a successful login.
type LoginOutput struct {
	AccessToken  *entity.SessionToken
	RefreshToken *entity.SessionToken
	UserType     entity.UserType
	UserID       uint64
}

// RefreshOutput returns the replacement access token. The refresh token is
// not rotated.
type RefreshOutput struct {
	AccessToken *entity.SessionToken
	UserType    entity.UserType
	UserID      uint64
}

// SessionUsecase defines the session lifecycle: OAuth and password logins,
// access-token renewal and logout.
type SessionUsecase interface {
	// AuthorizationURL returns the provider's authorize redirect for a login attempt.
	AuthorizationURL(provider entity.OAuthProvider, state string) (string, error)

	// LoginOAuth completes an OAuth sign-in from an authorization code,
	// creating the normal user account on first contact.
	LoginOAuth(ctx context.Context, provider entity.OAuthProvider, code string) (*LoginOutput, error)

	// LoginSenior performs an email/password login for a senior user.
	LoginSenior(ctx context.Context, input SeniorLoginInput) (*LoginOutput, error)

	// Refresh issues a new access token for a valid, stored refresh token.
	Refresh(ctx context.Context, encodedRefreshToken string) (*RefreshOutput, error)

	// Logout invalidates the server-side session behind an access token.
	Logout(ctx context.Context, encodedAccessToken string) error
}
