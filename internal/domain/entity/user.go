package entity

import "time"

// NormalUser is a mentee account. It is created lazily on the first OAuth
// sign-in and identified by the (Provider, OAuthID) pair; there is no
// password credential.
type NormalUser struct {
	ID           uint64        // Numeric primary key, also the token subject.
	Provider     OAuthProvider // The OAuth provider this account came from.
	OAuthID      string        // The provider-scoped account ID.
	Nickname     string        // Display name, generated at first sign-in.
	Picture      string        // Profile picture URL.
	RefreshToken string        // The single active refresh token, overwritten on every login.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SeniorUser is a mentor account registered with email and password.
// The password is stored as an argon2id hash, never in clear.
type SeniorUser struct {
	ID                    uint64
	Email                 string // Login identifier, unique.
	PasswordHash          string
	Name                  string
	Phone                 string
	Nickname              string
	Picture               string
	Major                 string
	ExperienceYears       int
	MentoringPrice        int
	RepresentativeCareers []string // Career highlights, stored as a JSON array column.
	Description           string
	MentoringMethod       MentoringMethod
	MentoringStatus       bool // Whether the mentor currently accepts orders.
	MentoringAlwaysOn     bool
	EmailVerified         bool
	RefreshToken          string // The single active refresh token, overwritten on every login.
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
