package impl

import (
	"context"
	"log/slog"

	"resback/internal/domain/entity"
	domainerrors "resback/internal/domain/errors"
	"resback/internal/domain/repository"
	"resback/internal/usecase"

	"github.com/pkg/errors"
)

// mentoringService implements the MentoringUsecase interface.
type mentoringService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewMentoringService is the constructor for mentoringService.
func NewMentoringService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.MentoringUsecase {
	return &mentoringService{
		txManager: txManager,
		logger:    logger,
	}
}

// ListTimes returns the fixed table of bookable hour slots.
func (srv *mentoringService) ListTimes(ctx context.Context) ([]entity.MentoringTime, error) {
	var times []entity.MentoringTime
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		times, err = repoFactory.NewMentoringRepository().ListTimes(ctx)

		return err
	})
	if err != nil {
		return nil, err
	}

	return times, nil
}

// GetSchedule returns a senior's slot set and mentoring settings.
func (srv *mentoringService) GetSchedule(ctx context.Context, seniorID uint64) (*entity.MentoringSchedule, error) {
	var schedule *entity.MentoringSchedule
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		senior, err := repoFactory.NewSeniorUserRepository().FindByID(ctx, seniorID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		} else if err != nil {
			return errors.Wrap(err, "find senior user")
		}

		times, err := repoFactory.NewMentoringRepository().ListScheduleTimes(ctx, seniorID)
		if err != nil {
			return errors.Wrap(err, "list schedule times")
		}

		schedule = &entity.MentoringSchedule{
			SeniorID: seniorID,
			Times:    times,
			Method:   senior.MentoringMethod,
			Status:   senior.MentoringStatus,
			AlwaysOn: senior.MentoringAlwaysOn,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return schedule, nil
}

// UpdateSchedule replaces a senior's slot set and settings. Unknown hours
// are rejected before anything is written.
func (srv *mentoringService) UpdateSchedule(ctx context.Context, seniorID uint64, input usecase.UpdateScheduleInput) (*entity.MentoringSchedule, error) {
	if !input.Method.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown mentoring method")
	}

	var schedule *entity.MentoringSchedule
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		seniorRepo := repoFactory.NewSeniorUserRepository()
		mentoringRepo := repoFactory.NewMentoringRepository()

		senior, err := seniorRepo.FindByID(ctx, seniorID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		} else if err != nil {
			return errors.Wrap(err, "find senior user")
		}

		times := make([]entity.MentoringTime, 0, len(input.Hours))
		timeIDs := make([]uint64, 0, len(input.Hours))
		for _, hour := range input.Hours {
			slot, err := mentoringRepo.FindTimeByHour(ctx, hour)
			if errors.Is(err, repository.ErrTimeNotFound) {
				return domainerrors.ErrValidationFailed.WithDetails("unknown mentoring hour")
			} else if err != nil {
				return errors.Wrap(err, "resolve mentoring hour")
			}

			times = append(times, *slot)
			timeIDs = append(timeIDs, slot.ID)
		}

		if err := mentoringRepo.ReplaceSchedule(ctx, seniorID, timeIDs); err != nil {
			return errors.Wrap(err, "replace schedule")
		}

		senior.MentoringMethod = input.Method
		senior.MentoringStatus = input.Status
		senior.MentoringAlwaysOn = input.AlwaysOn
		if err := seniorRepo.Update(ctx, senior); err != nil {
			return errors.Wrap(err, "update mentoring settings")
		}

		schedule = &entity.MentoringSchedule{
			SeniorID: seniorID,
			Times:    times,
			Method:   input.Method,
			Status:   input.Status,
			AlwaysOn: input.AlwaysOn,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return schedule, nil
}

// CreateOrder books a slot with a senior who is accepting orders. Price and
// method are copied from the seller row at creation time.
func (srv *mentoringService) CreateOrder(ctx context.Context, input usecase.CreateOrderInput) (*entity.MentoringOrder, error) {
	var order *entity.MentoringOrder
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		mentoringRepo := repoFactory.NewMentoringRepository()

		seller, err := repoFactory.NewSeniorUserRepository().FindByID(ctx, input.SellerID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		} else if err != nil {
			return errors.Wrap(err, "find seller")
		}

		if !seller.MentoringStatus {
			return domainerrors.ErrMentoringClosed
		}

		slot, err := mentoringRepo.FindTimeByHour(ctx, input.Hour)
		if errors.Is(err, repository.ErrTimeNotFound) {
			return domainerrors.ErrValidationFailed.WithDetails("unknown mentoring hour")
		} else if err != nil {
			return errors.Wrap(err, "resolve mentoring hour")
		}

		order = &entity.MentoringOrder{
			BuyerID:  input.BuyerID,
			SellerID: input.SellerID,
			Time:     *slot,
			Method:   seller.MentoringMethod,
			Price:    seller.MentoringPrice,
			Content:  input.Content,
		}

		return mentoringRepo.CreateOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("Mentoring order created",
		slog.Uint64("order_id", order.ID),
		slog.Uint64("buyer_id", order.BuyerID),
		slog.Uint64("seller_id", order.SellerID))

	return order, nil
}

// GetOrder retrieves an order for one of its two parties. A missing order is
// ErrOrderNotFound; an existing order requested by anyone else is ErrForbidden.
func (srv *mentoringService) GetOrder(ctx context.Context, id uint64, requesterType entity.UserType, requesterID uint64) (*entity.MentoringOrder, error) {
	var order *entity.MentoringOrder
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		order, err = repoFactory.NewMentoringRepository().FindOrderByID(ctx, id)
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domainerrors.ErrOrderNotFound
		}

		return err
	})
	if err != nil {
		return nil, err
	}

	switch requesterType {
	case entity.UserTypeNormal:
		if order.BuyerID != requesterID {
			return nil, domainerrors.ErrForbidden
		}
	case entity.UserTypeSenior:
		if order.SellerID != requesterID {
			return nil, domainerrors.ErrForbidden
		}
	default:
		return nil, domainerrors.ErrForbidden
	}

	return order, nil
}
