package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rsvp/internal/auth"
	apperrors "rsvp/internal/errors"
	"rsvp/internal/model"
	"rsvp/internal/service"
)

// SessionContextKey is where the auth middleware stores validated *auth.Claims.
const SessionContextKey = "session"

const guestFailureMessage = "Incorrect guest"

// GuestHandler serves the authenticated guest-info endpoints.
type GuestHandler struct {
	lifecycle service.LifecycleService
	guests    service.GuestService
}

// NewGuestHandler creates a new guest handler.
func NewGuestHandler(lifecycle service.LifecycleService, guests service.GuestService) *GuestHandler {
	return &GuestHandler{lifecycle: lifecycle, guests: guests}
}

// GuestListResponse lists the guests of the current user.
type GuestListResponse struct {
	Guests []service.GuestView `json:"guests"`
}

// GuestInfoItem is one entry of a guest update request.
type GuestInfoItem struct {
	ID                         uint   `json:"id" validate:"required"`
	Joins                      bool   `json:"joins"`
	FoodOption                 int    `json:"food_option"`
	DessertOption              int    `json:"dessert_option"`
	Allergies                  string `json:"allergies" validate:"max=1000"`
	FavoriteFairyTaleCharacter string `json:"favorite_fairy_tale_character" validate:"max=255"`
	FavoriteTool               string `json:"favorite_tool" validate:"max=255"`
}

// GuestUpdateResponse reports how many guests were updated.
type GuestUpdateResponse struct {
	Count int `json:"count"`
}

// GetGuests godoc
// @Summary List the guests of the current user
// @Tags guests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} GuestListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /guest-info [get]
func (h *GuestHandler) GetGuests(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	views, err := h.guests.GetGuests(c.Request().Context(), user)
	if err != nil {
		return httpError(c, err, guestFailureMessage, true)
	}
	return c.JSON(http.StatusOK, GuestListResponse{Guests: views})
}

// UpdateGuests godoc
// @Summary Update attendance and preferences of the current user's guests
// @Description Names and roles cannot be changed. The request is applied atomically.
// @Tags guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body []GuestInfoItem true "Guest updates"
// @Success 200 {object} GuestUpdateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /guest-info [post]
func (h *GuestHandler) UpdateGuests(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var items []GuestInfoItem
	if err := c.Bind(&items); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	updates := make([]service.GuestUpdate, 0, len(items))
	for i := range items {
		if err := c.Validate(&items[i]); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: err.Error(),
				Code:  "VALIDATION_FAILED",
			})
		}
		updates = append(updates, service.GuestUpdate{
			ID:                         items[i].ID,
			Joins:                      items[i].Joins,
			FoodOption:                 items[i].FoodOption,
			DessertOption:              items[i].DessertOption,
			Allergies:                  items[i].Allergies,
			FavoriteFairyTaleCharacter: items[i].FavoriteFairyTaleCharacter,
			FavoriteTool:               items[i].FavoriteTool,
		})
	}

	count, err := h.guests.UpdateGuests(c.Request().Context(), user, updates)
	if err != nil {
		return httpError(c, err, guestFailureMessage, true)
	}
	return c.JSON(http.StatusOK, GuestUpdateResponse{Count: count})
}

// currentUser resolves the session subject to a verified user.
func (h *GuestHandler) currentUser(c echo.Context) (*model.User, error) {
	claims, ok := c.Get(SessionContextKey).(*auth.Claims)
	if !ok || claims == nil {
		return nil, httpError(c, apperrors.ErrNotFound, "Could not validate credentials", true)
	}
	user, err := h.lifecycle.CurrentUser(c.Request().Context(), claims.Email())
	if err != nil {
		return nil, httpError(c, err, "Could not validate credentials", true)
	}
	return user, nil
}
