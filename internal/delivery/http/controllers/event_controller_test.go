package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventsexpress/internal/delivery/http/helpers"
	"eventsexpress/internal/delivery/http/middleware"
	"eventsexpress/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createResult *domain.Event
	createErr    error
	lastTemplate *domain.EventTemplate

	getResult *domain.Event
	getErr    error

	listResult []*domain.Event
	listErr    error
	lastLimit  int

	ownedResult []*domain.Event
	ownedErr    error
	lastOwnerID string

	editResult *domain.Event
	editErr    error

	deleteErr   error
	lastCascade bool

	nextResult *domain.Event
	nextErr    error
	lastEdits  *domain.EventTemplate

	blockErr     error
	unblockErr   error
	lastCallerID string

	setRateErr    error
	lastRateScore int
	rateResult    float64
	rateErr       error
}

func (f *fakeEventService) Create(_ context.Context, tmpl *domain.EventTemplate) (*domain.Event, error) {
	f.lastTemplate = tmpl
	return f.createResult, f.createErr
}

func (f *fakeEventService) Edit(_ context.Context, _, _ string, tmpl *domain.EventTemplate) (*domain.Event, error) {
	f.lastTemplate = tmpl
	return f.editResult, f.editErr
}

func (f *fakeEventService) GetByID(context.Context, string) (*domain.Event, error) {
	return f.getResult, f.getErr
}

func (f *fakeEventService) ListUpcoming(_ context.Context, limit int) ([]*domain.Event, error) {
	f.lastLimit = limit
	return f.listResult, f.listErr
}

func (f *fakeEventService) ListByOwner(_ context.Context, ownerID string) ([]*domain.Event, error) {
	f.lastOwnerID = ownerID
	return f.ownedResult, f.ownedErr
}

func (f *fakeEventService) Delete(_ context.Context, _, _ string, cascade bool) error {
	f.lastCascade = cascade
	return f.deleteErr
}

func (f *fakeEventService) CreateNextEvent(context.Context, string, string) (*domain.Event, error) {
	return f.nextResult, f.nextErr
}

func (f *fakeEventService) EditNextEvent(_ context.Context, _, _ string, tmpl *domain.EventTemplate) (*domain.Event, error) {
	f.lastEdits = tmpl
	return f.nextResult, f.nextErr
}

func (f *fakeEventService) BlockEvent(_ context.Context, _, callerID string) error {
	f.lastCallerID = callerID
	return f.blockErr
}

func (f *fakeEventService) UnblockEvent(_ context.Context, _, callerID string) error {
	f.lastCallerID = callerID
	return f.unblockErr
}

func (f *fakeEventService) SetRate(_ context.Context, _, _ string, score int) error {
	f.lastRateScore = score
	return f.setRateErr
}

func (f *fakeEventService) GetRate(context.Context, string) (float64, error) {
	return f.rateResult, f.rateErr
}

func authedRequest(method, target string, body []byte, userID string) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	if userID != "" {
		r = r.WithContext(middleware.SetUserID(r.Context(), userID))
	}
	return r
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var resp helpers.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestEventController_Create(t *testing.T) {
	svc := &fakeEventService{createResult: &domain.Event{ID: "ev-1", Title: "Board Games Night"}}
	c := NewEventController(testLogger, svc)

	body, _ := json.Marshal(map[string]any{
		"title":            "Board Games Night",
		"max_participants": 10,
		"category_ids":     []string{"cat-1"},
	})
	rec := httptest.NewRecorder()
	r := authedRequest(http.MethodPost, "/events", body, "user-1")
	mux := http.NewServeMux()
	mux.HandleFunc("POST /events", c.Create)
	mux.ServeHTTP(rec, r)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "user-1", svc.lastTemplate.OwnerID)
	require.Equal(t, 10, svc.lastTemplate.MaxParticipants)
	resp := decodeEnvelope(t, rec)
	require.Nil(t, resp.Error)
}

func TestEventController_Create_MissingTitle(t *testing.T) {
	c := NewEventController(testLogger, &fakeEventService{})

	body, _ := json.Marshal(map[string]any{"description": "no title"})
	rec := httptest.NewRecorder()
	c.Create(rec, authedRequest(http.MethodPost, "/events", body, "user-1"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.Equal(t, helpers.ErrCodeBadRequest, resp.Error.Code)
}

func TestEventController_Create_Unauthenticated(t *testing.T) {
	c := NewEventController(testLogger, &fakeEventService{})

	body, _ := json.Marshal(map[string]any{"title": "x"})
	rec := httptest.NewRecorder()
	c.Create(rec, authedRequest(http.MethodPost, "/events", body, ""))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEventController_GetByID_NotFound(t *testing.T) {
	svc := &fakeEventService{getErr: domain.NewError(domain.ErrNotFound, "event_id", "event not found")}
	c := NewEventController(testLogger, svc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /events/{eventID}", c.GetByID)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events/ev-missing", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.Equal(t, helpers.ErrCodeNotFound, resp.Error.Code)
	require.Equal(t, "event_id", resp.Error.Field)
}

func TestEventController_Edit_Forbidden(t *testing.T) {
	svc := &fakeEventService{editErr: domain.ErrForbidden}
	c := NewEventController(testLogger, svc)

	body, _ := json.Marshal(map[string]any{"title": "Renamed"})
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /events/{eventID}", c.Edit)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPut, "/events/ev-1", body, "user-2"))

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEventController_Delete_Conflict(t *testing.T) {
	svc := &fakeEventService{deleteErr: domain.NewError(domain.ErrInvalidState, "event_id", "event still has visitors")}
	c := NewEventController(testLogger, svc)

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /events/{eventID}", c.Delete)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodDelete, "/events/ev-1", nil, "user-1"))

	require.Equal(t, http.StatusConflict, rec.Code)
	require.False(t, svc.lastCascade)
}

func TestEventController_Delete_Cascade(t *testing.T) {
	svc := &fakeEventService{}
	c := NewEventController(testLogger, svc)

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /events/{eventID}", c.Delete)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodDelete, "/events/ev-1?cascade=true", nil, "user-1"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, svc.lastCascade)
}

func TestEventController_EditNext_PassesOverrides(t *testing.T) {
	svc := &fakeEventService{nextResult: &domain.Event{ID: "ev-2"}}
	c := NewEventController(testLogger, svc)

	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	body, _ := json.Marshal(map[string]any{"title": "Special edition", "date_from": from})
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /events/{eventID}/next", c.EditNext)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPut, "/events/ev-1/next", body, "user-1"))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "Special edition", svc.lastEdits.Title)
	require.True(t, svc.lastEdits.DateFrom.Equal(from))
}

func TestEventController_SetRate_RejectsNonPositive(t *testing.T) {
	c := NewEventController(testLogger, &fakeEventService{})

	body, _ := json.Marshal(map[string]any{"score": 0})
	mux := http.NewServeMux()
	mux.HandleFunc("POST /events/{eventID}/rates", c.SetRate)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/events/ev-1/rates", body, "user-1"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventController_GetRate(t *testing.T) {
	svc := &fakeEventService{rateResult: 4}
	c := NewEventController(testLogger, svc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /events/{eventID}/rates", c.GetRate)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events/ev-1/rates", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(4), data["average"])
}

func TestEventController_Block_PassesCaller(t *testing.T) {
	svc := &fakeEventService{}
	c := NewEventController(testLogger, svc)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /events/{eventID}/block", c.Block)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/events/ev-1/block", nil, "user-1"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user-1", svc.lastCallerID)
}

func TestEventController_Block_Forbidden(t *testing.T) {
	svc := &fakeEventService{blockErr: domain.ErrForbidden}
	c := NewEventController(testLogger, svc)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /events/{eventID}/block", c.Block)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/events/ev-1/block", nil, "user-2"))

	require.Equal(t, http.StatusForbidden, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.Equal(t, helpers.ErrCodeForbidden, resp.Error.Code)
}

func TestEventController_Unblock_Forbidden(t *testing.T) {
	svc := &fakeEventService{unblockErr: domain.ErrForbidden}
	c := NewEventController(testLogger, svc)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /events/{eventID}/unblock", c.Unblock)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, authedRequest(http.MethodPost, "/events/ev-1/unblock", nil, "user-2"))

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEventController_ListOwned(t *testing.T) {
	svc := &fakeEventService{ownedResult: []*domain.Event{{ID: "ev-1"}, {ID: "ev-2"}}}
	c := NewEventController(testLogger, svc)

	rec := httptest.NewRecorder()
	c.ListOwned(rec, authedRequest(http.MethodGet, "/users/me/events", nil, "user-1"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user-1", svc.lastOwnerID)
	resp := decodeEnvelope(t, rec)
	events, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, events, 2)
}

func TestEventController_ListOwned_Unauthenticated(t *testing.T) {
	c := NewEventController(testLogger, &fakeEventService{})

	rec := httptest.NewRecorder()
	c.ListOwned(rec, authedRequest(http.MethodGet, "/users/me/events", nil, ""))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEventController_ListUpcoming_ClampsLimit(t *testing.T) {
	svc := &fakeEventService{listResult: []*domain.Event{}}
	c := NewEventController(testLogger, svc)

	rec := httptest.NewRecorder()
	c.ListUpcoming(rec, httptest.NewRequest(http.MethodGet, "/events?limit=500", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, helpers.MaxListLimit, svc.lastLimit)
}
