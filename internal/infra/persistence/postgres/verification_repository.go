package postgres

import (
	"context"

	"resback/internal/domain/entity"
	domainerrors "resback/internal/domain/errors"
	"resback/internal/domain/repository"
	"resback/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// verificationRepository implements the domain's VerificationRepository interface using GORM.
type verificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository is the constructor for verificationRepository.
func NewVerificationRepository(db *gorm.DB) repository.VerificationRepository {
	return &verificationRepository{db: db}
}

// Replace removes any pending code for the senior and stores the new one.
// Callers run this inside TransactionManager.Execute.
func (repo *verificationRepository) Replace(ctx context.Context, verification *entity.EmailVerification) error {
	if err := repo.DeleteBySeniorID(ctx, verification.SeniorID); err != nil {
		return err
	}

	verificationM := &model.EmailVerificationModel{
		SeniorID: verification.SeniorID,
		Code:     verification.Code,
	}
	if err := repo.db.WithContext(ctx).Create(verificationM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to store verification code")
	}

	verification.ID = verificationM.ID
	verification.CreatedAt = verificationM.CreatedAt

	return nil
}

// FindBySeniorID retrieves the senior's pending code.
func (repo *verificationRepository) FindBySeniorID(ctx context.Context, seniorID uint64) (*entity.EmailVerification, error) {
	var verificationM model.EmailVerificationModel
	if err := repo.db.WithContext(ctx).Where("senior_id = ?", seniorID).First(&verificationM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVerificationNotFound
		}

		return nil, errors.Wrap(err, "failed to find verification code")
	}

	return toVerificationDomain(&verificationM), nil
}

// DeleteBySeniorID removes the senior's pending code, if any.
func (repo *verificationRepository) DeleteBySeniorID(ctx context.Context, seniorID uint64) error {
	if err := repo.db.WithContext(ctx).
		Where("senior_id = ?", seniorID).
		Delete(&model.EmailVerificationModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete verification code")
	}

	return nil
}
