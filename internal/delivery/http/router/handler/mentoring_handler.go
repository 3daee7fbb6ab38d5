package handler

import (
	"log/slog"
	"net/http"

	"resback/internal/delivery/http/middleware"
	"resback/internal/delivery/http/response"
	"resback/internal/domain/entity"
	domainerrors "resback/internal/domain/errors"
	"resback/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MentoringHandler holds dependencies for schedule and order handlers.
type MentoringHandler struct {
	mentoringUC usecase.MentoringUsecase
	logger      *slog.Logger
}

// NewMentoringHandler is the constructor for MentoringHandler, injected by Fx.
func NewMentoringHandler(mentoringUC usecase.MentoringUsecase, logger *slog.Logger) *MentoringHandler {
	return &MentoringHandler{mentoringUC: mentoringUC, logger: logger}
}

type updateScheduleRequest struct {
	Times    []int  `json:"times" validate:"dive,gte=0,lte=23"`
	Method   string `json:"method" validate:"required,oneof=video_call voice_call"`
	Status   bool   `json:"status"`
	AlwaysOn bool   `json:"always_on"`
}

type createOrderRequest struct {
	SellerID uint64 `json:"seller_id" validate:"required"`
	Time     int    `json:"time" validate:"gte=0,lte=23"`
	Content  string `json:"content"`
}

type timeResponse struct {
	ID   uint64 `json:"id"`
	Time int    `json:"time"`
}

type scheduleResponse struct {
	SeniorID uint64         `json:"senior_id"`
	Times    []timeResponse `json:"times"`
	Method   string         `json:"method"`
	Status   bool           `json:"status"`
	AlwaysOn bool           `json:"always_on"`
}

type orderResponse struct {
	ID       uint64 `json:"id"`
	BuyerID  uint64 `json:"buyer_id"`
	SellerID uint64 `json:"seller_id"`
	Time     int    `json:"time"`
	Method   string `json:"method"`
	Price    int    `json:"price"`
	Content  string `json:"content"`
}

func newTimeResponses(times []entity.MentoringTime) []timeResponse {
	result := make([]timeResponse, 0, len(times))
	for _, slot := range times {
		result = append(result, timeResponse{ID: slot.ID, Time: slot.Hour})
	}

	return result
}

func newScheduleResponse(schedule *entity.MentoringSchedule) scheduleResponse {
	return scheduleResponse{
		SeniorID: schedule.SeniorID,
		Times:    newTimeResponses(schedule.Times),
		Method:   schedule.Method.String(),
		Status:   schedule.Status,
		AlwaysOn: schedule.AlwaysOn,
	}
}

func newOrderResponse(order *entity.MentoringOrder) orderResponse {
	return orderResponse{
		ID:       order.ID,
		BuyerID:  order.BuyerID,
		SellerID: order.SellerID,
		Time:     order.Time.Hour,
		Method:   order.Method.String(),
		Price:    order.Price,
		Content:  order.Content,
	}
}

func parseMentoringMethod(s string) (entity.MentoringMethod, error) {
	switch s {
	case entity.MentoringMethodVideoCall.String():
		return entity.MentoringMethodVideoCall, nil
	case entity.MentoringMethodVoiceCall.String():
		return entity.MentoringMethodVoiceCall, nil
	default:
		return 0, domainerrors.ErrValidationFailed.WithDetails("unknown mentoring method")
	}
}

// ListTimes returns the fixed table of bookable hour slots.
func (h *MentoringHandler) ListTimes(c echo.Context) error {
	times, err := h.mentoringUC.ListTimes(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newTimeResponses(times), "")
}

// GetSchedule returns a senior's bookable slots and mentoring settings.
func (h *MentoringHandler) GetSchedule(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	schedule, err := h.mentoringUC.GetSchedule(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newScheduleResponse(schedule), "")
}

// UpdateSchedule replaces the authenticated senior's own slot set and settings.
func (h *MentoringHandler) UpdateSchedule(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := requireSelf(c, entity.UserTypeSenior, id); err != nil {
		return err
	}

	var input updateScheduleRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid schedule input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	method, err := parseMentoringMethod(input.Method)
	if err != nil {
		return err
	}

	schedule, err := h.mentoringUC.UpdateSchedule(c.Request().Context(), id, usecase.UpdateScheduleInput{
		Hours:    input.Times,
		Method:   method,
		Status:   input.Status,
		AlwaysOn: input.AlwaysOn,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newScheduleResponse(schedule), "Schedule updated successfully")
}

// CreateOrder books a slot for the authenticated normal user.
func (h *MentoringHandler) CreateOrder(c echo.Context) error {
	buyerID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	var input createOrderRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	order, err := h.mentoringUC.CreateOrder(c.Request().Context(), usecase.CreateOrderInput{
		BuyerID:  buyerID,
		SellerID: input.SellerID,
		Hour:     input.Time,
		Content:  input.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newOrderResponse(order), "Order created successfully")
}

// GetOrder returns an order to its buyer or seller.
func (h *MentoringHandler) GetOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	userType, ok := middleware.AuthenticatedUserType(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}
	userID, ok := middleware.AuthenticatedUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	order, err := h.mentoringUC.GetOrder(c.Request().Context(), id, userType, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newOrderResponse(order), "")
}
