package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"evently/internal/auth"
	apperrors "evently/internal/errors"
	"evently/internal/service"
)

// EventHandler bundles the HTTP handlers for event endpoints.
type EventHandler struct {
	svc service.EventService
}

// NewEventHandler creates the event handler layer.
func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// CreateEventRequest represents an event creation request. The owner is the
// authenticated caller.
type CreateEventRequest struct {
	Type        string   `json:"type" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Date        string   `json:"date" validate:"required"`
	From        string   `json:"from" validate:"required"`
	To          string   `json:"to" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Group       []string `json:"group"`
	Organizer   string   `json:"organizer" validate:"required"`
	IsPublic    bool     `json:"is_public"`
}

// UpdateEventRequest represents a partial event update. Absent fields are
// left untouched.
type UpdateEventRequest struct {
	OwnerID     string   `json:"ownerId"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	From        string   `json:"from"`
	To          string   `json:"to"`
	Location    string   `json:"location"`
	Group       []string `json:"group"`
	Organizer   string   `json:"organizer"`
	IsPublic    *bool    `json:"is_public"`
}

// ShareEventRequest selects delivery channels and recipients.
type ShareEventRequest struct {
	Methods    []string `json:"methods"`
	Recipients []string `json:"recipients"`
}

func caller(c echo.Context) (auth.Identity, error) {
	id, ok := auth.CallerIdentity(c)
	if !ok {
		return auth.Identity{}, apperrors.ErrUnauthorized
	}
	return id, nil
}

// Create godoc
// @Summary Create an event owned by the caller
// @Tags events
// @Accept json
// @Produce json
// @Param request body CreateEventRequest true "Event data"
// @Success 201 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /event/create [post]
func (h *EventHandler) Create(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.svc.Create(c.Request().Context(), id, service.CreateEventInput{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		From:        req.From,
		To:          req.To,
		Location:    req.Location,
		Group:       req.Group,
		Organizer:   req.Organizer,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, event)
}

// Get godoc
// @Summary Get event by id, filtered by visibility
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} model.Event
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /event/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	event, err := h.svc.GetVisible(c.Request().Context(), id, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Update godoc
// @Summary Update event fields
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body UpdateEventRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /event/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	var req UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	changed, err := h.svc.UpdatePartial(c.Request().Context(), id, c.Param("id"), service.UpdateEventInput{
		OwnerID:     req.OwnerID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		From:        req.From,
		To:          req.To,
		Location:    req.Location,
		Group:       req.Group,
		Organizer:   req.Organizer,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Event updated", "changed": changed})
}

// Delete godoc
// @Summary Delete event by id
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /event/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Event deleted"})
}

// List godoc
// @Summary List events, paged; superAdmin sees all, others their own
// @Tags events
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} service.EventPage
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /event/list [get]
func (h *EventHandler) List(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}

	page, err := h.svc.ListFor(c.Request().Context(), id, pageQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Share godoc
// @Summary Share an event over sms, email or notification channels
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body ShareEventRequest true "Channels and recipients"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /event/share/{id} [post]
func (h *EventHandler) Share(c echo.Context) error {
	if _, err := caller(c); err != nil {
		return err
	}

	var req ShareEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.Share(c.Request().Context(), c.Param("id"), req.Methods, req.Recipients); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Event shared successfully"})
}
