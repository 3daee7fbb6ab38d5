// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"resback/internal/delivery/http/middleware"
	"resback/internal/delivery/http/router/handler"
	"resback/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	UserHandler      *handler.UserHandler
	MentoringHandler *handler.MentoringHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler      *handler.AuthHandler
	userHandler      *handler.UserHandler
	mentoringHandler *handler.MentoringHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		userHandler:      params.UserHandler,
		mentoringHandler: params.MentoringHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.HealthCheck)
	e.GET("/health", handler.HealthCheck)

	// Session routes. The provider callback and password login set cookies;
	// refresh and logout work off them.
	authGroup := e.Group("/auth")
	{
		authGroup.GET("/:provider", r.authHandler.OAuthLogin)
		authGroup.GET("/:provider/authorized", r.authHandler.OAuthAuthorized)
		authGroup.POST("/senior", r.authHandler.SeniorLogin)
		authGroup.PATCH("/token", r.authHandler.RefreshToken)
		authGroup.DELETE("/token", r.authHandler.Logout)
	}

	// Registration and search stay open; everything touching a concrete
	// account requires a session.
	seniorGroup := e.Group("/users/senior")
	{
		seniorGroup.POST("", r.userHandler.RegisterSenior)
		seniorGroup.GET("", r.userHandler.SearchSeniors)

		seniorGroup.GET("/:id", r.userHandler.GetSenior, r.authMiddleware.Authenticate)
		seniorGroup.PUT("/:id", r.userHandler.UpdateSenior, r.authMiddleware.Authenticate)
		seniorGroup.DELETE("/:id", r.userHandler.DeleteSenior, r.authMiddleware.Authenticate)

		seniorGroup.GET("/:id/mentoring", r.mentoringHandler.GetSchedule, r.authMiddleware.Authenticate)
		seniorGroup.PUT("/:id/mentoring", r.mentoringHandler.UpdateSchedule, r.authMiddleware.Authenticate)

		seniorGroup.POST("/:id/verification", r.userHandler.IssueVerification, r.authMiddleware.Authenticate)
		seniorGroup.PUT("/:id/verification", r.userHandler.VerifyEmail, r.authMiddleware.Authenticate)
	}

	normalGroup := e.Group("/users/normal", r.authMiddleware.Authenticate)
	{
		normalGroup.GET("/:id", r.userHandler.GetNormal)
		normalGroup.PUT("/:id", r.userHandler.UpdateNormal)
		normalGroup.DELETE("/:id", r.userHandler.DeleteNormal)
	}

	mentoringGroup := e.Group("/mentoring")
	{
		mentoringGroup.GET("/time", r.mentoringHandler.ListTimes)
		mentoringGroup.POST("/order", r.mentoringHandler.CreateOrder,
			r.authMiddleware.Authenticate, r.authMiddleware.RequireUserType(entity.UserTypeNormal))
		mentoringGroup.GET("/order/:id", r.mentoringHandler.GetOrder, r.authMiddleware.Authenticate)
	}
}
