package controllers

import (
	"log/slog"
	"net/http"

	"eventsexpress/internal/delivery/http/helpers"
	"eventsexpress/internal/delivery/http/middleware"
	"eventsexpress/internal/domain"
)

// SetUserCategoriesRequest is the request body for PUT /users/me/categories.
type SetUserCategoriesRequest struct {
	CategoryIDs []string `json:"category_ids"`
}

// Validate implements Validator.
func (s SetUserCategoriesRequest) Validate() []string {
	if s.CategoryIDs == nil {
		return []string{"category_ids is required"}
	}
	return nil
}

type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// Me godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me [get]
func (c *UserController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// SetCategories godoc
// @Summary Set the authenticated user's category subscriptions
// @Description Replaces the user's category subscriptions. Subscribed users are notified when a new event is created in one of their categories.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SetUserCategoriesRequest true "Category IDs"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/me/categories [put]
func (c *UserController) SetCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SetUserCategoriesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.SetCategories(r.Context(), userID, req.CategoryIDs); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "updated"})
}
