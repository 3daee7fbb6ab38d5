package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resback/internal/domain/entity"
	domainerrors "resback/internal/domain/errors"
	"resback/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMentoringUsecase struct {
	listTimes      func(ctx context.Context) ([]entity.MentoringTime, error)
	getSchedule    func(ctx context.Context, seniorID uint64) (*entity.MentoringSchedule, error)
	updateSchedule func(ctx context.Context, seniorID uint64, input usecase.UpdateScheduleInput) (*entity.MentoringSchedule, error)
	createOrder    func(ctx context.Context, input usecase.CreateOrderInput) (*entity.MentoringOrder, error)
	getOrder       func(ctx context.Context, id uint64, requesterType entity.UserType, requesterID uint64) (*entity.MentoringOrder, error)
}

func (f *fakeMentoringUsecase) ListTimes(ctx context.Context) ([]entity.MentoringTime, error) {
	return f.listTimes(ctx)
}

func (f *fakeMentoringUsecase) GetSchedule(ctx context.Context, seniorID uint64) (*entity.MentoringSchedule, error) {
	return f.getSchedule(ctx, seniorID)
}

func (f *fakeMentoringUsecase) UpdateSchedule(ctx context.Context, seniorID uint64, input usecase.UpdateScheduleInput) (*entity.MentoringSchedule, error) {
	return f.updateSchedule(ctx, seniorID, input)
}

func (f *fakeMentoringUsecase) CreateOrder(ctx context.Context, input usecase.CreateOrderInput) (*entity.MentoringOrder, error) {
	return f.createOrder(ctx, input)
}

func (f *fakeMentoringUsecase) GetOrder(ctx context.Context, id uint64, requesterType entity.UserType, requesterID uint64) (*entity.MentoringOrder, error) {
	return f.getOrder(ctx, id, requesterType, requesterID)
}

func TestMentoringHandler_ListTimes(t *testing.T) {
	e := newTestEcho(t)
	h := NewMentoringHandler(&fakeMentoringUsecase{
		listTimes: func(_ context.Context) ([]entity.MentoringTime, error) {
			return []entity.MentoringTime{{ID: 1, Hour: 9}, {ID: 2, Hour: 14}}, nil
		},
	}, slog.Default())
	e.GET("/mentoring/time", h.ListTimes)

	req := httptest.NewRequest(http.MethodGet, "/mentoring/time", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"time":9`)
	assert.Contains(t, rec.Body.String(), `"time":14`)
}

func TestMentoringHandler_UpdateSchedule(t *testing.T) {
	e := newTestEcho(t)
	h := NewMentoringHandler(&fakeMentoringUsecase{
		updateSchedule: func(_ context.Context, seniorID uint64, input usecase.UpdateScheduleInput) (*entity.MentoringSchedule, error) {
			assert.Equal(t, uint64(3), seniorID)
			assert.Equal(t, []int{9, 14}, input.Hours)
			assert.Equal(t, entity.MentoringMethodVoiceCall, input.Method)
			assert.True(t, input.Status)

			return &entity.MentoringSchedule{
				SeniorID: seniorID,
				Times:    []entity.MentoringTime{{ID: 1, Hour: 9}, {ID: 2, Hour: 14}},
				Method:   input.Method,
				Status:   input.Status,
			}, nil
		},
	}, slog.Default())
	e.PUT("/users/senior/:id/mentoring", h.UpdateSchedule, asUser(entity.UserTypeSenior, 3))

	body := `{"times":[9,14],"method":"voice_call","status":true}`
	req := httptest.NewRequest(http.MethodPut, "/users/senior/3/mentoring", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "voice_call")
}

func TestMentoringHandler_UpdateSchedule_ForeignSchedule(t *testing.T) {
	e := newTestEcho(t)
	h := NewMentoringHandler(&fakeMentoringUsecase{}, slog.Default())
	e.PUT("/users/senior/:id/mentoring", h.UpdateSchedule, asUser(entity.UserTypeSenior, 4))

	body := `{"times":[9],"method":"video_call"}`
	req := httptest.NewRequest(http.MethodPut, "/users/senior/3/mentoring", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMentoringHandler_CreateOrder(t *testing.T) {
	e := newTestEcho(t)
	h := NewMentoringHandler(&fakeMentoringUsecase{
		createOrder: func(_ context.Context, input usecase.CreateOrderInput) (*entity.MentoringOrder, error) {
			// The buyer comes from the session, never from the body.
			assert.Equal(t, uint64(7), input.BuyerID)
			assert.Equal(t, uint64(3), input.SellerID)
			assert.Equal(t, 14, input.Hour)

			return &entity.MentoringOrder{
				ID:       10,
				BuyerID:  input.BuyerID,
				SellerID: input.SellerID,
				Time:     entity.MentoringTime{ID: 2, Hour: 14},
				Method:   entity.MentoringMethodVideoCall,
				Price:    30000,
				Content:  input.Content,
			}, nil
		},
	}, slog.Default())
	e.POST("/mentoring/order", h.CreateOrder, asUser(entity.UserTypeNormal, 7))

	body := `{"seller_id":3,"time":14,"content":"resume review","buyer_id":999}`
	req := httptest.NewRequest(http.MethodPost, "/mentoring/order", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price":30000`)
}

func TestMentoringHandler_CreateOrder_MentoringClosed(t *testing.T) {
	e := newTestEcho(t)
	h := NewMentoringHandler(&fakeMentoringUsecase{
		createOrder: func(_ context.Context, _ usecase.CreateOrderInput) (*entity.MentoringOrder, error) {
			return nil, domainerrors.ErrMentoringClosed
		},
	}, slog.Default())
	e.POST("/mentoring/order", h.CreateOrder, asUser(entity.UserTypeNormal, 7))

	body := `{"seller_id":3,"time":14}`
	req := httptest.NewRequest(http.MethodPost, "/mentoring/order", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "MENTORING_CLOSED", envelope.Error.Code)
}

func TestMentoringHandler_GetOrder_PassesRequester(t *testing.T) {
	e := newTestEcho(t)
	h := NewMentoringHandler(&fakeMentoringUsecase{
		getOrder: func(_ context.Context, id uint64, requesterType entity.UserType, requesterID uint64) (*entity.MentoringOrder, error) {
			assert.Equal(t, uint64(10), id)
			assert.Equal(t, entity.UserTypeSenior, requesterType)
			assert.Equal(t, uint64(3), requesterID)

			return &entity.MentoringOrder{ID: id, SellerID: requesterID, Method: entity.MentoringMethodVideoCall}, nil
		},
	}, slog.Default())
	e.GET("/mentoring/order/:id", h.GetOrder, asUser(entity.UserTypeSenior, 3))

	req := httptest.NewRequest(http.MethodGet, "/mentoring/order/10", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
