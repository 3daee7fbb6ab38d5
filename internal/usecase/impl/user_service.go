package impl

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"resback/internal/domain/entity"
	domainerrors "resback/internal/domain/errors"
	"resback/internal/domain/repository"
	"resback/internal/domain/service"
	"resback/internal/usecase"

	"github.com/pkg/errors"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.UserUsecase {
	return &userService{
		txManager: txManager,
		hasher:    hasher,
		logger:    logger,
	}
}

// RegisterSenior creates a senior account with a hashed password.
func (srv *userService) RegisterSenior(ctx context.Context, input usecase.RegisterSeniorInput) (*entity.SeniorUser, error) {
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	user := &entity.SeniorUser{
		Email:                 input.Email,
		PasswordHash:          passwordHash,
		Name:                  input.Name,
		Phone:                 input.Phone,
		Nickname:              fmt.Sprintf("mentor_%s", input.Name),
		Picture:               defaultProfilePicture,
		Major:                 input.Major,
		ExperienceYears:       input.ExperienceYears,
		MentoringPrice:        input.MentoringPrice,
		RepresentativeCareers: input.RepresentativeCareers,
		Description:           input.Description,
		MentoringMethod:       entity.MentoringMethodVideoCall,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewSeniorUserRepository().Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateUser) {
				return domainerrors.ErrUserAlreadyExists
			}

			return errors.Wrap(err, "create senior user")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("Senior user registered", slog.Uint64("user_id", user.ID))

	return user, nil
}

// GetNormalUser retrieves a normal user's profile.
func (srv *userService) GetNormalUser(ctx context.Context, id uint64) (*entity.NormalUser, error) {
	var user *entity.NormalUser
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		user, err = repoFactory.NewNormalUserRepository().FindByID(ctx, id)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetSeniorUser retrieves a senior user's profile.
func (srv *userService) GetSeniorUser(ctx context.Context, id uint64) (*entity.SeniorUser, error) {
	var user *entity.SeniorUser
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		user, err = repoFactory.NewSeniorUserRepository().FindByID(ctx, id)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// SearchSeniors lists senior users matching the filter.
func (srv *userService) SearchSeniors(ctx context.Context, filter repository.SeniorSearchFilter) ([]*entity.SeniorUser, error) {
	var users []*entity.SeniorUser
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		users, err = repoFactory.NewSeniorUserRepository().Search(ctx, filter)

		return err
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// UpdateNormalUser edits a normal user's profile.
func (srv *userService) UpdateNormalUser(ctx context.Context, id uint64, input usecase.UpdateNormalUserInput) (*entity.NormalUser, error) {
	var user *entity.NormalUser
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		normalRepo := repoFactory.NewNormalUserRepository()

		var err error
		user, err = normalRepo.FindByID(ctx, id)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		} else if err != nil {
			return errors.Wrap(err, "find normal user")
		}

		user.Nickname = input.Nickname
		if input.Picture != "" {
			user.Picture = input.Picture
		}

		return normalRepo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateSeniorUser edits a senior user's profile.
func (srv *userService) UpdateSeniorUser(ctx context.Context, id uint64, input usecase.UpdateSeniorUserInput) (*entity.SeniorUser, error) {
	var user *entity.SeniorUser
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		seniorRepo := repoFactory.NewSeniorUserRepository()

		var err error
		user, err = seniorRepo.FindByID(ctx, id)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		} else if err != nil {
			return errors.Wrap(err, "find senior user")
		}

		user.Nickname = input.Nickname
		if input.Picture != "" {
			user.Picture = input.Picture
		}
		user.Major = input.Major
		user.ExperienceYears = input.ExperienceYears
		user.MentoringPrice = input.MentoringPrice
		user.RepresentativeCareers = input.RepresentativeCareers
		user.Description = input.Description

		return seniorRepo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteNormalUser removes a normal user account.
func (srv *userService) DeleteNormalUser(ctx context.Context, id uint64) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		err := repoFactory.NewNormalUserRepository().Delete(ctx, id)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return err
	})
}

// DeleteSeniorUser removes a senior user account.
func (srv *userService) DeleteSeniorUser(ctx context.Context, id uint64) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		err := repoFactory.NewSeniorUserRepository().Delete(ctx, id)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return err
	})
}

// IssueVerificationCode creates a fresh email-verification code for a senior,
// replacing any pending one. Mail delivery happens out of band; the code is
// logged for operators.
func (srv *userService) IssueVerificationCode(ctx context.Context, seniorID uint64) (*entity.EmailVerification, error) {
	code, err := randomVerificationCode()
	if err != nil {
		return nil, errors.Wrap(err, "generate verification code")
	}

	verification := &entity.EmailVerification{
		SeniorID: seniorID,
		Code:     code,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.NewSeniorUserRepository().FindByID(ctx, seniorID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "find senior user")
		}

		return repoFactory.NewVerificationRepository().Replace(ctx, verification)
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("Email verification code issued",
		slog.Uint64("senior_id", seniorID), slog.String("code", verification.Code))

	return verification, nil
}

// VerifyEmail checks a submitted code and marks the email verified. A used
// or expired code is removed either way.
func (srv *userService) VerifyEmail(ctx context.Context, seniorID uint64, code string) error {
	var expired bool
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		verificationRepo := repoFactory.NewVerificationRepository()

		pending, err := verificationRepo.FindBySeniorID(ctx, seniorID)
		if errors.Is(err, repository.ErrVerificationNotFound) {
			return domainerrors.ErrVerificationCode
		} else if err != nil {
			return errors.Wrap(err, "find verification code")
		}

		if pending.ExpiredAt(time.Now()) {
			// Delete inside the committing transaction; reporting the
			// expiry from here would roll the delete back.
			expired = true

			return verificationRepo.DeleteBySeniorID(ctx, seniorID)
		}
		if pending.Code != code {
			return domainerrors.ErrVerificationCode
		}

		if err := verificationRepo.DeleteBySeniorID(ctx, seniorID); err != nil {
			return errors.Wrap(err, "consume verification code")
		}

		return repoFactory.NewSeniorUserRepository().SetEmailVerified(ctx, seniorID)
	})
	if err != nil {
		return err
	}
	if expired {
		return domainerrors.ErrVerificationExpired
	}

	return nil
}

// randomVerificationCode returns a zero-padded six-digit code.
func randomVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}
