package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"eventsexpress/internal/delivery/http/helpers"
	"eventsexpress/internal/domain"
)

// fakeVisitorService implements domain.VisitorService for handler tests.
type fakeVisitorService struct {
	joinResult *domain.Visitor
	joinErr    error

	decideResult *domain.Visitor
	decideErr    error
	lastStatus   domain.AdmissionStatus

	deleteErr error

	listResult []*domain.Visitor
	listErr    error
}

func (f *fakeVisitorService) AddUserToEvent(context.Context, string, string) (*domain.Visitor, error) {
	return f.joinResult, f.joinErr
}

func (f *fakeVisitorService) ChangeVisitorStatus(_ context.Context, _, _ string, status domain.AdmissionStatus) (*domain.Visitor, error) {
	f.lastStatus = status
	return f.decideResult, f.decideErr
}

func (f *fakeVisitorService) DeleteUserFromEvent(context.Context, string, string) error {
	return f.deleteErr
}

func (f *fakeVisitorService) ListVisitors(context.Context, string) ([]*domain.Visitor, error) {
	return f.listResult, f.listErr
}

func TestVisitorController_Join(t *testing.T) {
	svc := &fakeVisitorService{joinResult: &domain.Visitor{EventID: "ev-1", UserID: "user-1", Status: domain.AdmissionRequested}}
	c := NewVisitorController(testLogger, svc)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /events/{eventID}/visitors", c.Join)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/events/ev-1/visitors", nil, "user-1"))

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeEnvelope(t, rec)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, string(domain.AdmissionRequested), data["status"])
}

func TestVisitorController_Join_BlockedEvent(t *testing.T) {
	svc := &fakeVisitorService{joinErr: domain.NewError(domain.ErrInvalidState, "event_id", "event is blocked")}
	c := NewVisitorController(testLogger, svc)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /events/{eventID}/visitors", c.Join)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/events/ev-1/visitors", nil, "user-1"))

	require.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.Equal(t, helpers.ErrCodeConflict, resp.Error.Code)
}

func TestVisitorController_Decide_Approve(t *testing.T) {
	svc := &fakeVisitorService{decideResult: &domain.Visitor{EventID: "ev-1", UserID: "user-2", Status: domain.AdmissionApproved}}
	c := NewVisitorController(testLogger, svc)

	body, _ := json.Marshal(map[string]any{"status": "approved"})
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /events/{eventID}/visitors/{userID}", c.Decide)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPatch, "/events/ev-1/visitors/user-2", body, "user-1"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.AdmissionApproved, svc.lastStatus)
}

func TestVisitorController_Decide_CapacityExceeded(t *testing.T) {
	svc := &fakeVisitorService{decideErr: domain.NewError(domain.ErrCapacityExceeded, "event_id", "event is full")}
	c := NewVisitorController(testLogger, svc)

	body, _ := json.Marshal(map[string]any{"status": "approved"})
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /events/{eventID}/visitors/{userID}", c.Decide)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPatch, "/events/ev-1/visitors/user-2", body, "user-1"))

	require.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.Equal(t, helpers.ErrCodeConflict, resp.Error.Code)
}

func TestVisitorController_Decide_MissingStatus(t *testing.T) {
	c := NewVisitorController(testLogger, &fakeVisitorService{})

	body, _ := json.Marshal(map[string]any{})
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /events/{eventID}/visitors/{userID}", c.Decide)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPatch, "/events/ev-1/visitors/user-2", body, "user-1"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVisitorController_Withdraw_NotFound(t *testing.T) {
	svc := &fakeVisitorService{deleteErr: domain.NewError(domain.ErrNotFound, "visitor_id", "admission record not found")}
	c := NewVisitorController(testLogger, svc)

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /events/{eventID}/visitors", c.Withdraw)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodDelete, "/events/ev-1/visitors", nil, "user-1"))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVisitorController_List_EmptyIsArray(t *testing.T) {
	c := NewVisitorController(testLogger, &fakeVisitorService{})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /events/{eventID}/visitors", c.List)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodGet, "/events/ev-1/visitors", nil, "user-1"))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	data, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Empty(t, data)
}
