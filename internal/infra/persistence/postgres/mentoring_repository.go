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

// mentoringRepository implements the domain's MentoringRepository interface using GORM.
type mentoringRepository struct {
	db *gorm.DB
}

// NewMentoringRepository is the constructor for mentoringRepository.
func NewMentoringRepository(db *gorm.DB) repository.MentoringRepository {
	return &mentoringRepository{db: db}
}

// ListTimes returns the full fixed table of bookable hour slots.
func (repo *mentoringRepository) ListTimes(ctx context.Context) ([]entity.MentoringTime, error) {
	var models []model.MentoringTimeModel
	if err := repo.db.WithContext(ctx).Order("hour").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list mentoring times")
	}

	times := make([]entity.MentoringTime, len(models))
	for i := range models {
		times[i] = toMentoringTimeDomain(&models[i])
	}

	return times, nil
}

// FindTimeByID retrieves one slot from the time table.
func (repo *mentoringRepository) FindTimeByID(ctx context.Context, id uint64) (*entity.MentoringTime, error) {
	var timeM model.MentoringTimeModel
	if err := repo.db.WithContext(ctx).First(&timeM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTimeNotFound
		}

		return nil, errors.Wrap(err, "failed to find mentoring time by id")
	}

	t := toMentoringTimeDomain(&timeM)

	return &t, nil
}

// FindTimeByHour retrieves the slot for a given hour of day.
func (repo *mentoringRepository) FindTimeByHour(ctx context.Context, hour int) (*entity.MentoringTime, error) {
	var timeM model.MentoringTimeModel
	if err := repo.db.WithContext(ctx).Where("hour = ?", hour).First(&timeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTimeNotFound
		}

		return nil, errors.Wrap(err, "failed to find mentoring time by hour")
	}

	t := toMentoringTimeDomain(&timeM)

	return &t, nil
}

// ListScheduleTimes returns the senior's currently bookable slots.
func (repo *mentoringRepository) ListScheduleTimes(ctx context.Context, seniorID uint64) ([]entity.MentoringTime, error) {
	var models []model.MentoringTimeModel
	err := repo.db.WithContext(ctx).
		Model(&model.MentoringTimeModel{}).
		Joins("INNER JOIN mentoring_schedule ON mentoring_schedule.time_id = mentoring_time.id").
		Where("mentoring_schedule.senior_id = ?", seniorID).
		Order("mentoring_time.hour").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list schedule times")
	}

	times := make([]entity.MentoringTime, len(models))
	for i := range models {
		times[i] = toMentoringTimeDomain(&models[i])
	}

	return times, nil
}

// ReplaceSchedule swaps the senior's slot set for the given time IDs.
// Callers run this inside TransactionManager.Execute so the delete and the
// inserts land atomically.
func (repo *mentoringRepository) ReplaceSchedule(ctx context.Context, seniorID uint64, timeIDs []uint64) error {
	if err := repo.db.WithContext(ctx).
		Where("senior_id = ?", seniorID).
		Delete(&model.MentoringScheduleModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear mentoring schedule")
	}

	if len(timeIDs) == 0 {
		return nil
	}

	rows := make([]model.MentoringScheduleModel, len(timeIDs))
	for i, timeID := range timeIDs {
		rows[i] = model.MentoringScheduleModel{SeniorID: seniorID, TimeID: timeID}
	}

	if err := repo.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to insert mentoring schedule")
	}

	return nil
}

// CreateOrder persists a new order and fills in the generated ID.
func (repo *mentoringRepository) CreateOrder(ctx context.Context, order *entity.MentoringOrder) error {
	orderM := &model.MentoringOrderModel{
		BuyerID:  order.BuyerID,
		SellerID: order.SellerID,
		TimeID:   order.Time.ID,
		MethodID: uint32(order.Method),
		Price:    order.Price,
		Content:  order.Content,
	}

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create mentoring order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt

	return nil
}

// FindOrderByID retrieves a single order with its time slot resolved.
func (repo *mentoringRepository) FindOrderByID(ctx context.Context, id uint64) (*entity.MentoringOrder, error) {
	var orderM model.MentoringOrderModel
	if err := repo.db.WithContext(ctx).Preload("Time").First(&orderM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find mentoring order by id")
	}

	return toMentoringOrderDomain(&orderM), nil
}
