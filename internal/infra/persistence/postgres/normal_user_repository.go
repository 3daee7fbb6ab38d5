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

// normalUserRepository implements the domain's NormalUserRepository interface using GORM.
type normalUserRepository struct {
	db *gorm.DB
}

// NewNormalUserRepository is the constructor for normalUserRepository.
func NewNormalUserRepository(db *gorm.DB) repository.NormalUserRepository {
	return &normalUserRepository{db: db}
}

// FindByID retrieves a single normal user by their numeric ID.
func (repo *normalUserRepository) FindByID(ctx context.Context, id uint64) (*entity.NormalUser, error) {
	var userM model.NormalUserModel
	if err := repo.db.WithContext(ctx).First(&userM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find normal user by id")
	}

	return toNormalUserDomain(&userM), nil
}

// FindByOAuthIdentity retrieves a normal user by their provider identity pair.
func (repo *normalUserRepository) FindByOAuthIdentity(ctx context.Context, provider entity.OAuthProvider, oauthID string) (*entity.NormalUser, error) {
	var userM model.NormalUserModel
	err := repo.db.WithContext(ctx).
		Where("oauth_provider = ? AND oauth_id = ?", provider.String(), oauthID).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find normal user by oauth identity")
	}

	return toNormalUserDomain(&userM), nil
}

// Create persists a new normal user and fills in the generated ID.
func (repo *normalUserRepository) Create(ctx context.Context, user *entity.NormalUser) error {
	userM := fromNormalUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateUser
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create normal user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing normal user.
func (repo *normalUserRepository) Update(ctx context.Context, user *entity.NormalUser) error {
	userM := fromNormalUserDomain(user)

	result := repo.db.WithContext(ctx).Model(&model.NormalUserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"nickname": userM.Nickname,
			"picture":  userM.Picture,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update normal user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// UpdateRefreshToken overwrites the stored refresh token for a user.
func (repo *normalUserRepository) UpdateRefreshToken(ctx context.Context, id uint64, refreshToken string) error {
	result := repo.db.WithContext(ctx).Model(&model.NormalUserModel{}).
		Where("id = ?", id).
		Update("refresh_token", refreshToken)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update normal user refresh token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// Delete removes a normal user.
func (repo *normalUserRepository) Delete(ctx context.Context, id uint64) error {
	result := repo.db.WithContext(ctx).Delete(&model.NormalUserModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete normal user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}
