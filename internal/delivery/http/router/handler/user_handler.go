package handler

import (
	"log/slog"
	"net/http"

	"resback/internal/delivery/http/response"
	"resback/internal/domain/entity"
	"resback/internal/domain/repository"
	"resback/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for account and profile handlers.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(userUC usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{userUC: userUC, logger: logger}
}

type registerSeniorRequest struct {
	Email                 string   `json:"email" validate:"required,email"`
	Password              string   `json:"password" validate:"required,min=8"`
	Name                  string   `json:"name" validate:"required"`
	Phone                 string   `json:"phone"`
	Major                 string   `json:"major" validate:"required"`
	ExperienceYears       int      `json:"experience_years" validate:"gte=0"`
	MentoringPrice        int      `json:"mentoring_price" validate:"gte=0"`
	RepresentativeCareers []string `json:"representative_careers"`
	Description           string   `json:"description"`
}

type updateNormalUserRequest struct {
	Nickname string `json:"nickname" validate:"required"`
	Picture  string `json:"picture"`
}

type updateSeniorUserRequest struct {
	Nickname              string   `json:"nickname" validate:"required"`
	Picture               string   `json:"picture"`
	Major                 string   `json:"major" validate:"required"`
	ExperienceYears       int      `json:"experience_years" validate:"gte=0"`
	MentoringPrice        int      `json:"mentoring_price" validate:"gte=0"`
	RepresentativeCareers []string `json:"representative_careers"`
	Description           string   `json:"description"`
}

type verifyEmailRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

type normalUserResponse struct {
	ID       uint64 `json:"id"`
	Provider string `json:"provider"`
	Nickname string `json:"nickname"`
	Picture  string `json:"picture"`
}

type seniorUserResponse struct {
	ID                    uint64   `json:"id"`
	Email                 string   `json:"email"`
	Name                  string   `json:"name"`
	Phone                 string   `json:"phone"`
	Nickname              string   `json:"nickname"`
	Picture               string   `json:"picture"`
	Major                 string   `json:"major"`
	ExperienceYears       int      `json:"experience_years"`
	MentoringPrice        int      `json:"mentoring_price"`
	RepresentativeCareers []string `json:"representative_careers"`
	Description           string   `json:"description"`
	MentoringMethod       string   `json:"mentoring_method"`
	MentoringStatus       bool     `json:"mentoring_status"`
	EmailVerified         bool     `json:"email_verified"`
}

func newNormalUserResponse(user *entity.NormalUser) normalUserResponse {
	return normalUserResponse{
		ID:       user.ID,
		Provider: user.Provider.String(),
		Nickname: user.Nickname,
		Picture:  user.Picture,
	}
}

func newSeniorUserResponse(user *entity.SeniorUser) seniorUserResponse {
	return seniorUserResponse{
		ID:                    user.ID,
		Email:                 user.Email,
		Name:                  user.Name,
		Phone:                 user.Phone,
		Nickname:              user.Nickname,
		Picture:               user.Picture,
		Major:                 user.Major,
		ExperienceYears:       user.ExperienceYears,
		MentoringPrice:        user.MentoringPrice,
		RepresentativeCareers: user.RepresentativeCareers,
		Description:           user.Description,
		MentoringMethod:       user.MentoringMethod.String(),
		MentoringStatus:       user.MentoringStatus,
		EmailVerified:         user.EmailVerified,
	}
}

// RegisterSenior handles the senior registration request.
func (h *UserHandler) RegisterSenior(c echo.Context) error {
	var input registerSeniorRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	user, err := h.userUC.RegisterSenior(c.Request().Context(), usecase.RegisterSeniorInput{
		Email:                 input.Email,
		Password:              input.Password,
		Name:                  input.Name,
		Phone:                 input.Phone,
		Major:                 input.Major,
		ExperienceYears:       input.ExperienceYears,
		MentoringPrice:        input.MentoringPrice,
		RepresentativeCareers: input.RepresentativeCareers,
		Description:           input.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newSeniorUserResponse(user), "Senior registered successfully")
}

// SearchSeniors lists seniors matching the query parameters.
func (h *UserHandler) SearchSeniors(c echo.Context) error {
	users, err := h.userUC.SearchSeniors(c.Request().Context(), repository.SeniorSearchFilter{
		Major:   c.QueryParam("major"),
		Keyword: c.QueryParam("keyword"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	result := make([]seniorUserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, newSeniorUserResponse(user))
	}

	return response.Success(c, http.StatusOK, result, "")
}

// GetSenior returns a senior's profile.
func (h *UserHandler) GetSenior(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.userUC.GetSeniorUser(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newSeniorUserResponse(user), "")
}

// UpdateSenior edits the authenticated senior's own profile.
func (h *UserHandler) UpdateSenior(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := requireSelf(c, entity.UserTypeSenior, id); err != nil {
		return err
	}

	var input updateSeniorUserRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	user, err := h.userUC.UpdateSeniorUser(c.Request().Context(), id, usecase.UpdateSeniorUserInput{
		Nickname:              input.Nickname,
		Picture:               input.Picture,
		Major:                 input.Major,
		ExperienceYears:       input.ExperienceYears,
		MentoringPrice:        input.MentoringPrice,
		RepresentativeCareers: input.RepresentativeCareers,
		Description:           input.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newSeniorUserResponse(user), "Profile updated successfully")
}

// DeleteSenior removes the authenticated senior's own account.
func (h *UserHandler) DeleteSenior(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := requireSelf(c, entity.UserTypeSenior, id); err != nil {
		return err
	}

	if err := h.userUC.DeleteSeniorUser(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	clearSessionCookies(c)

	return response.Success(c, http.StatusOK, nil, "Account deleted successfully")
}

// GetNormal returns a normal user's profile.
func (h *UserHandler) GetNormal(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.userUC.GetNormalUser(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newNormalUserResponse(user), "")
}

// UpdateNormal edits the authenticated normal user's own profile.
func (h *UserHandler) UpdateNormal(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := requireSelf(c, entity.UserTypeNormal, id); err != nil {
		return err
	}

	var input updateNormalUserRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	user, err := h.userUC.UpdateNormalUser(c.Request().Context(), id, usecase.UpdateNormalUserInput{
		Nickname: input.Nickname,
		Picture:  input.Picture,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newNormalUserResponse(user), "Profile updated successfully")
}

// DeleteNormal removes the authenticated normal user's own account.
func (h *UserHandler) DeleteNormal(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := requireSelf(c, entity.UserTypeNormal, id); err != nil {
		return err
	}

	if err := h.userUC.DeleteNormalUser(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	clearSessionCookies(c)

	return response.Success(c, http.StatusOK, nil, "Account deleted successfully")
}

// IssueVerification sends a fresh email-verification code to the senior.
func (h *UserHandler) IssueVerification(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := requireSelf(c, entity.UserTypeSenior, id); err != nil {
		return err
	}

	if _, err := h.userUC.IssueVerificationCode(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, nil, "Verification code issued")
}

// VerifyEmail checks the submitted code and marks the email verified.
func (h *UserHandler) VerifyEmail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := requireSelf(c, entity.UserTypeSenior, id); err != nil {
		return err
	}

	var input verifyEmailRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	if err := h.userUC.VerifyEmail(c.Request().Context(), id, input.Code); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Email verified successfully")
}
