package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"evently/internal/repository"
	"evently/internal/service"
)

// UserHandler bundles the HTTP handlers for user endpoints.
type UserHandler struct {
	authSvc service.AuthService
	userSvc service.UserService
}

// NewUserHandler creates the user handler layer.
func NewUserHandler(authSvc service.AuthService, userSvc service.UserService) *UserHandler {
	return &UserHandler{authSvc: authSvc, userSvc: userSvc}
}

// CreateUserRequest represents a signup request.
type CreateUserRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	UserType  string `json:"userType" validate:"omitempty,oneof=user admin superAdmin"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
	Mobile    string `json:"mobile"`
	Gender    string `json:"gender"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest represents a partial user update. Absent fields are left
// untouched.
type UpdateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"omitempty,email"`
	UserType  string `json:"userType" validate:"omitempty,oneof=user admin superAdmin"`
	Username  string `json:"username"`
	Password  string `json:"password" validate:"omitempty,min=6"`
	Mobile    string `json:"mobile"`
	Gender    string `json:"gender"`
}

// Create godoc
// @Summary Create a user account
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "Signup data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /user/create [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authSvc.Signup(c.Request().Context(), service.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		UserType:  req.UserType,
		Username:  req.Username,
		Password:  req.Password,
		Mobile:    req.Mobile,
		Gender:    req.Gender,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Log in with username and password
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /user/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authSvc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// Get godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userSvc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update godoc
// @Summary Update user fields
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	changed, err := h.userSvc.UpdatePartial(c.Request().Context(), c.Param("id"), service.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		UserType:  req.UserType,
		Username:  req.Username,
		Password:  req.Password,
		Mobile:    req.Mobile,
		Gender:    req.Gender,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User updated", "changed": changed})
}

// Delete godoc
// @Summary Delete user by id
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userSvc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted"})
}

// List godoc
// @Summary List users, paged
// @Tags users
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} service.UserPage
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user/list [get]
func (h *UserHandler) List(c echo.Context) error {
	page, err := h.userSvc.List(c.Request().Context(), pageQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// pageQuery reads page/size query params, defaulting to the first page of 10.
func pageQuery(c echo.Context) repository.PageQuery {
	q := repository.PageQuery{Page: 1, Size: 10}
	echo.QueryParamsBinder(c).Int64("page", &q.Page).Int64("size", &q.Size)
	return q.Normalize()
}
