package usecase

import (
	"context"

	"resback/internal/domain/entity"
	"resback/internal/domain/repository"
)

// RegisterSeniorInput defines the data required to register a senior user.
type RegisterSeniorInput struct {
	Email                 string
	Password              string
	Name                  string
	Phone                 string
	Major                 string
	ExperienceYears       int
	MentoringPrice        int
	RepresentativeCareers []string
	Description           string
}

// UpdateNormalUserInput defines the editable fields of a normal user profile.
type UpdateNormalUserInput struct {
	Nickname string
	Picture  string
}

// UpdateSeniorUserInput defines the editable fields of a senior user profile.
type UpdateSeniorUserInput struct {
	Nickname              string
	Picture               string
	Major                 string
	ExperienceYears       int
	MentoringPrice        int
	RepresentativeCareers []string
	Description           string
}

// UserUsecase defines account registration, profile access and email
// verification for both account kinds.
type UserUsecase interface {
	// RegisterSenior creates a senior account with a hashed password.
	RegisterSenior(ctx context.Context, input RegisterSeniorInput) (*entity.SeniorUser, error)

	// GetNormalUser retrieves a normal user's profile.
	GetNormalUser(ctx context.Context, id uint64) (*entity.NormalUser, error)

	// GetSeniorUser retrieves a senior user's profile.
	GetSeniorUser(ctx context.Context, id uint64) (*entity.SeniorUser, error)

	// SearchSeniors lists senior users matching the filter.
	SearchSeniors(ctx context.Context, filter repository.SeniorSearchFilter) ([]*entity.SeniorUser, error)

	// UpdateNormalUser edits a normal user's profile.
	UpdateNormalUser(ctx context.Context, id uint64, input UpdateNormalUserInput) (*entity.NormalUser, error)

	// UpdateSeniorUser edits a senior user's profile.
	UpdateSeniorUser(ctx context.Context, id uint64, input UpdateSeniorUserInput) (*entity.SeniorUser, error)

	// DeleteNormalUser removes a normal user account.
	DeleteNormalUser(ctx context.Context, id uint64) error

	// DeleteSeniorUser removes a senior user account.
	DeleteSeniorUser(ctx context.Context, id uint64) error

	// IssueVerificationCode creates a fresh email-verification code for a
	// senior, replacing any pending one.
	IssueVerificationCode(ctx context.Context, seniorID uint64) (*entity.EmailVerification, error)

	// VerifyEmail checks a submitted code and marks the email verified.
	VerifyEmail(ctx context.Context, seniorID uint64, code string) error
}
