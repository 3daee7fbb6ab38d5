package usecase

import (
	"context"

	"resback/internal/domain/entity"
)

// UpdateScheduleInput replaces a senior's bookable slot set and mentoring
// settings in one call.
type UpdateScheduleInput struct {
	Hours    []int
	Method   entity.MentoringMethod
	Status   bool
	AlwaysOn bool
}

// CreateOrderInput defines a normal user's booking request. Hour selects a
// row from the fixed time table; price and method come from the seller.
type CreateOrderInput struct {
	BuyerID  uint64
	SellerID uint64
	Hour     int
	Content  string
}

// MentoringUsecase defines the time table, per-senior schedules and orders.
type MentoringUsecase interface {
	// ListTimes returns the fixed table of bookable hour slots.
	ListTimes(ctx context.Context) ([]entity.MentoringTime, error)

	// GetSchedule returns a senior's slot set and mentoring settings.
	GetSchedule(ctx context.Context, seniorID uint64) (*entity.MentoringSchedule, error)

	// UpdateSchedule replaces a senior's slot set and settings.
	UpdateSchedule(ctx context.Context, seniorID uint64, input UpdateScheduleInput) (*entity.MentoringSchedule, error)

	// CreateOrder books a slot with a senior who is accepting orders.
	CreateOrder(ctx context.Context, input CreateOrderInput) (*entity.MentoringOrder, error)

	// GetOrder retrieves an order for one of its two parties.
	GetOrder(ctx context.Context, id uint64, requesterType entity.UserType, requesterID uint64) (*entity.MentoringOrder, error)
}
