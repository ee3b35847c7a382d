package controllers

import (
	"log/slog"
	"net/http"

	"eventsexpress/internal/delivery/http/helpers"
	"eventsexpress/internal/delivery/http/middleware"
	"eventsexpress/internal/domain"
)

// DecideVisitorRequest is the request body for PATCH /events/{eventID}/visitors/{userID}.
type DecideVisitorRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (d DecideVisitorRequest) Validate() []string {
	if d.Status == "" {
		return []string{"status is required"}
	}
	return nil
}

// VisitorSuccessResponse is the success response envelope for endpoints returning one admission record.
type VisitorSuccessResponse struct {
	Data  *domain.Visitor   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// VisitorListSuccessResponse is the success response envelope for GET /events/{eventID}/visitors.
type VisitorListSuccessResponse struct {
	Data  []*domain.Visitor `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type VisitorController struct {
	Logger  *slog.Logger
	Service domain.VisitorService
}

func NewVisitorController(logger *slog.Logger, svc domain.VisitorService) *VisitorController {
	return &VisitorController{
		Logger:  logger,
		Service: svc,
	}
}

// Join godoc
// @Summary Request to join an event
// @Description Creates an admission record in the requested state for the authenticated user. Joining again while a record exists returns the existing record unchanged.
// @Tags visitors
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 201 {object} controllers.VisitorSuccessResponse "data contains the admission record"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (event is blocked)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/visitors [post]
func (c *VisitorController) Join(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	visitor, err := c.Service.AddUserToEvent(r.Context(), eventID, userID)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, visitor)
}

// Withdraw godoc
// @Summary Withdraw from an event
// @Description Removes the authenticated user's admission record regardless of its state.
// @Tags visitors
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/visitors [delete]
func (c *VisitorController) Withdraw(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteUserFromEvent(r.Context(), eventID, userID); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "withdrawn"})
}

// List godoc
// @Summary List admission records for an event
// @Tags visitors
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.VisitorListSuccessResponse "data is an array of admission records"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/visitors [get]
func (c *VisitorController) List(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	visitors, err := c.Service.ListVisitors(r.Context(), eventID)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	if visitors == nil {
		visitors = []*domain.Visitor{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, visitors)
}

// Decide godoc
// @Summary Approve or deny a join request
// @Description Decides a pending admission record. Status must be "approved" or "denied". Re-applying the current decision is a no-op; flipping a decided record fails with 409. Approval fails with 409 once the approved count reaches the event's cap.
// @Tags visitors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param userID path string true "User ID of the join request"
// @Param body body DecideVisitorRequest true "Target status"
// @Success 200 {object} controllers.VisitorSuccessResponse "data contains the decided admission record"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already decided or event full)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/visitors/{userID} [patch]
func (c *VisitorController) Decide(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	userID := r.PathValue("userID")
	if eventID == "" || userID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or userID")
		return
	}
	var req DecideVisitorRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	visitor, err := c.Service.ChangeVisitorStatus(r.Context(), eventID, userID, domain.AdmissionStatus(req.Status))
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, visitor)
}
