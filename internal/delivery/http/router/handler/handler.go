// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"strconv"

	"resback/internal/delivery/http/middleware"
	"resback/internal/delivery/http/response"
	"resback/internal/domain/entity"
	domainerrors "resback/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports liveness for load balancers and uptime probes.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "")
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domainerrors.ErrValidationFailed.WithDetails("invalid id in path")
	}

	return id, nil
}

// requireSelf checks that the authenticated account is of the given kind and
// owns the addressed resource.
func requireSelf(c echo.Context, userType entity.UserType, id uint64) error {
	gotType, ok := middleware.AuthenticatedUserType(c)
	if !ok || gotType != userType {
		return domainerrors.ErrForbidden
	}
	gotID, ok := middleware.AuthenticatedUserID(c)
	if !ok || gotID != id {
		return domainerrors.ErrForbidden
	}

	return nil
}
