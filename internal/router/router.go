package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"evently/internal/access"
	"evently/internal/auth"
	"evently/internal/config"
	apperrors "evently/internal/errors"
	"evently/internal/handler"
	"evently/internal/model"
)

// Register wires routes and middleware. All resource routes live under the
// version-prefixed /{version}/api group; everything past login sits behind
// the bearer-token middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logger *zap.Logger,
	policy access.Policy,
	userHandler *handler.UserHandler,
	eventHandler *handler.EventHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/" + cfg.APIVersion + "/api")

	api.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"version": cfg.APIVersion})
	})

	// Public routes
	api.POST("/user/create", userHandler.Create)
	api.POST("/user/login", userHandler.Login)

	// Secured routes (require a valid bearer token)
	secured := api.Group("", auth.Middleware(cfg.JWTSecret))

	secured.GET("/user/list", userHandler.List, requireRole(policy, model.RoleSuperAdmin))
	secured.GET("/user/:id", userHandler.Get)
	secured.PUT("/user/:id", userHandler.Update, requireRole(policy, model.RoleAdmin))
	secured.DELETE("/user/:id", userHandler.Delete, requireRole(policy, model.RoleAdmin))

	secured.POST("/event/create", eventHandler.Create)
	secured.GET("/event/list", eventHandler.List, requireRole(policy, model.RoleUser))
	secured.GET("/event/:id", eventHandler.Get)
	secured.PUT("/event/:id", eventHandler.Update, requireRole(policy, model.RoleUser))
	secured.DELETE("/event/:id", eventHandler.Delete, requireRole(policy, model.RoleUser))
	secured.POST("/event/share/:id", eventHandler.Share)
}

// requireRole gates a route on the caller's role. The check is exact-match
// unless the policy enables the hierarchy.
func requireRole(policy access.Policy, required string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := auth.CallerIdentity(c)
			if !ok {
				return apperrors.ErrUnauthorized
			}
			if err := policy.RequireRole(id.Role, required); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// NewHTTPErrorHandler maps domain errors to HTTP responses at the outer
// boundary. Storage and other unexpected failures are logged here with
// request context and surfaced as a generic 500.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			_ = c.JSON(echoErr.Code, apperrors.ErrorResponse{
				Error: fmt.Sprintf("%v", echoErr.Message),
				Code:  statusCode(echoErr.Code),
			})
			return
		}

		mapped := apperrors.MapErrorToHTTP(err)
		if mapped.StatusCode >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err))
		}
		_ = c.JSON(mapped.StatusCode, mapped.ToErrorResponse())
	}
}

func statusCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	default:
		return "INTERNAL_ERROR"
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
