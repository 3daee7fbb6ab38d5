package repository

import (
	"context"
	"errors"

	"resback/internal/domain/entity"
)

// ErrOrderNotFound is returned when a mentoring order does not exist.
var ErrOrderNotFound = errors.New("mentoring order not found")

// ErrTimeNotFound is returned when an hour slot is not in the time table.
var ErrTimeNotFound = errors.New("mentoring time not found")

// MentoringRepository defines persistence for the mentoring time table,
// per-senior schedules and orders.
type MentoringRepository interface {
	// ListTimes returns the full fixed table of bookable hour slots.
	ListTimes(ctx context.Context) ([]entity.MentoringTime, error)

	// FindTimeByID retrieves one slot from the time table.
	FindTimeByID(ctx context.Context, id uint64) (*entity.MentoringTime, error)

	// FindTimeByHour retrieves the slot for a given hour of day.
	FindTimeByHour(ctx context.Context, hour int) (*entity.MentoringTime, error)

	// ListScheduleTimes returns the senior's currently bookable slots.
	ListScheduleTimes(ctx context.Context, seniorID uint64) ([]entity.MentoringTime, error)

	// ReplaceSchedule swaps the senior's slot set for the given time IDs.
	ReplaceSchedule(ctx context.Context, seniorID uint64, timeIDs []uint64) error

	// CreateOrder persists a new order and fills in the generated ID.
	CreateOrder(ctx context.Context, order *entity.MentoringOrder) error

	// FindOrderByID retrieves a single order.
	FindOrderByID(ctx context.Context, id uint64) (*entity.MentoringOrder, error)
}
