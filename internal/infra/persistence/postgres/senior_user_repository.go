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

// seniorUserRepository implements the domain's SeniorUserRepository interface using GORM.
type seniorUserRepository struct {
	db *gorm.DB
}

// NewSeniorUserRepository is the constructor for seniorUserRepository.
func NewSeniorUserRepository(db *gorm.DB) repository.SeniorUserRepository {
	return &seniorUserRepository{db: db}
}

// FindByID retrieves a single senior user by their numeric ID.
func (repo *seniorUserRepository) FindByID(ctx context.Context, id uint64) (*entity.SeniorUser, error) {
	var userM model.SeniorUserModel
	if err := repo.db.WithContext(ctx).First(&userM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find senior user by id")
	}

	return toSeniorUserDomain(&userM), nil
}

// FindByEmail retrieves a senior user by their login email.
func (repo *seniorUserRepository) FindByEmail(ctx context.Context, email string) (*entity.SeniorUser, error) {
	var userM model.SeniorUserModel
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find senior user by email")
	}

	return toSeniorUserDomain(&userM), nil
}

// Search lists senior users matching the filter.
func (repo *seniorUserRepository) Search(ctx context.Context, filter repository.SeniorSearchFilter) ([]*entity.SeniorUser, error) {
	query := repo.db.WithContext(ctx).Model(&model.SeniorUserModel{})
	if filter.Major != "" {
		query = query.Where("major = ?", filter.Major)
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where(
			"nickname LIKE ? OR representative_careers LIKE ? OR description LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var models []model.SeniorUserModel
	if err := query.Order("id").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search senior users")
	}

	users := make([]*entity.SeniorUser, len(models))
	for i := range models {
		users[i] = toSeniorUserDomain(&models[i])
	}

	return users, nil
}

// Create persists a new senior user and fills in the generated ID.
func (repo *seniorUserRepository) Create(ctx context.Context, user *entity.SeniorUser) error {
	userM := fromSeniorUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateUser
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create senior user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing senior user's profile fields.
func (repo *seniorUserRepository) Update(ctx context.Context, user *entity.SeniorUser) error {
	userM := fromSeniorUserDomain(user)

	result := repo.db.WithContext(ctx).Model(&model.SeniorUserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"nickname":               userM.Nickname,
			"picture":                userM.Picture,
			"major":                  userM.Major,
			"experience_years":       userM.ExperienceYears,
			"mentoring_price":        userM.MentoringPrice,
			"representative_careers": userM.RepresentativeCareers,
			"description":            userM.Description,
			"mentoring_method_id":    userM.MentoringMethodID,
			"mentoring_status":       userM.MentoringStatus,
			"mentoring_always_on":    userM.MentoringAlwaysOn,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update senior user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// UpdateRefreshToken overwrites the stored refresh token for a user.
func (repo *seniorUserRepository) UpdateRefreshToken(ctx context.Context, id uint64, refreshToken string) error {
	result := repo.db.WithContext(ctx).Model(&model.SeniorUserModel{}).
		Where("id = ?", id).
		Update("refresh_token", refreshToken)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update senior user refresh token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// SetEmailVerified marks the senior's email address as verified.
func (repo *seniorUserRepository) SetEmailVerified(ctx context.Context, id uint64) error {
	result := repo.db.WithContext(ctx).Model(&model.SeniorUserModel{}).
		Where("id = ?", id).
		Update("email_verified", true)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to set email verified")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// Delete removes a senior user.
func (repo *seniorUserRepository) Delete(ctx context.Context, id uint64) error {
	result := repo.db.WithContext(ctx).Delete(&model.SeniorUserModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete senior user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}
