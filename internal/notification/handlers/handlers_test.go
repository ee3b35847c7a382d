package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"eventsexpress/internal/domain"
)

type mockUserRepo struct {
	users         map[string]*domain.User
	byCategory    []*domain.User
	byCategoryErr error
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error { return nil }
func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}
func (m *mockUserRepo) SetEmailConfirmed(ctx context.Context, id string, confirmed bool) error {
	return nil
}
func (m *mockUserRepo) SetCategories(ctx context.Context, userID string, categoryIDs []string) error {
	return nil
}
func (m *mockUserRepo) ListByCategoryIDs(ctx context.Context, categoryIDs []string) ([]*domain.User, error) {
	if m.byCategoryErr != nil {
		return nil, m.byCategoryErr
	}
	return m.byCategory, nil
}

type mockEmailService struct {
	blocked      []*domain.EventBlockedEmailData
	verification []*domain.RegisterVerificationEmailData
	created      []*domain.EventCreatedEmailData
	failFor      string // recipient email that always fails
}

func (m *mockEmailService) SendEventBlocked(ctx context.Context, data *domain.EventBlockedEmailData) error {
	if data.Email == m.failFor {
		return errors.New("provider outage")
	}
	m.blocked = append(m.blocked, data)
	return nil
}
func (m *mockEmailService) SendRegisterVerification(ctx context.Context, data *domain.RegisterVerificationEmailData) error {
	if data.Email == m.failFor {
		return errors.New("provider outage")
	}
	m.verification = append(m.verification, data)
	return nil
}
func (m *mockEmailService) SendEventCreated(ctx context.Context, data *domain.EventCreatedEmailData) error {
	if data.Email == m.failFor {
		return errors.New("provider outage")
	}
	m.created = append(m.created, data)
	return nil
}

type mockVerificationCache struct {
	tokens map[string]string
	err    error
}

func (m *mockVerificationCache) SetToken(ctx context.Context, userID, token string) error {
	if m.err != nil {
		return m.err
	}
	if m.tokens == nil {
		m.tokens = make(map[string]string)
	}
	m.tokens[userID] = token
	return nil
}
func (m *mockVerificationCache) GetToken(ctx context.Context, userID string) (string, error) {
	t, ok := m.tokens[userID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return t, nil
}
func (m *mockVerificationCache) DeleteToken(ctx context.Context, userID string) error {
	delete(m.tokens, userID)
	return nil
}

func discard() *slog.Logger { return slog.New(slog.DiscardHandler) }

func TestBlockedEventHandler_NotifiesEveryVisitor(t *testing.T) {
	users := &mockUserRepo{users: map[string]*domain.User{
		"u-1": {ID: "u-1", Email: "a@example.com"},
		"u-2": {ID: "u-2", Email: "b@example.com"},
	}}
	emails := &mockEmailService{}
	h := NewBlockedEventHandler(users, emails, "https://app.test", discard())

	err := h.Handle(context.Background(), domain.BlockedEventMessage{
		EventID: "ev-1",
		Title:   "Board games night",
		UserIDs: []string{"u-1", "u-2"},
	})
	require.NoError(t, err)
	require.Len(t, emails.blocked, 2)
	require.Equal(t, "a@example.com", emails.blocked[0].Email)
	require.Contains(t, emails.blocked[0].EventLink, "/event/ev-1")
}

func TestBlockedEventHandler_ContinuesPastMissingUser(t *testing.T) {
	users := &mockUserRepo{users: map[string]*domain.User{
		"u-2": {ID: "u-2", Email: "b@example.com"},
	}}
	emails := &mockEmailService{}
	h := NewBlockedEventHandler(users, emails, "https://app.test", discard())

	err := h.Handle(context.Background(), domain.BlockedEventMessage{
		EventID: "ev-1",
		UserIDs: []string{"u-missing", "u-2"},
	})
	require.Error(t, err)
	require.Len(t, emails.blocked, 1)
	require.Equal(t, "b@example.com", emails.blocked[0].Email)
}

func TestRegisterVerificationHandler_CachesTokenBeforeSending(t *testing.T) {
	cache := &mockVerificationCache{}
	emails := &mockEmailService{}
	h := NewRegisterVerificationHandler(cache, emails, "https://app.test", discard())

	err := h.Handle(context.Background(), domain.RegisterVerificationMessage{
		UserID: "u-1",
		Email:  "a@example.com",
		Name:   "Ann",
	})
	require.NoError(t, err)
	require.Len(t, emails.verification, 1)

	token := cache.tokens["u-1"]
	require.NotEmpty(t, token)
	require.True(t, strings.HasSuffix(emails.verification[0].ConfirmURL, "/auth/confirm/u-1/"+token))
}

func TestRegisterVerificationHandler_CacheFailureSkipsSend(t *testing.T) {
	cache := &mockVerificationCache{err: errors.New("redis down")}
	emails := &mockEmailService{}
	h := NewRegisterVerificationHandler(cache, emails, "https://app.test", discard())

	err := h.Handle(context.Background(), domain.RegisterVerificationMessage{UserID: "u-1", Email: "a@example.com"})
	require.Error(t, err)
	require.Empty(t, emails.verification)
}

func TestEventCreatedHandler_SkipsOwner(t *testing.T) {
	users := &mockUserRepo{byCategory: []*domain.User{
		{ID: "owner", Email: "owner@example.com"},
		{ID: "u-2", Email: "b@example.com"},
	}}
	emails := &mockEmailService{}
	h := NewEventCreatedHandler(users, emails, "https://app.test", discard())

	err := h.Handle(context.Background(), domain.EventCreatedMessage{
		EventID:     "ev-1",
		Title:       "Picnic",
		OwnerID:     "owner",
		CategoryIDs: []string{"c-1"},
	})
	require.NoError(t, err)
	require.Len(t, emails.created, 1)
	require.Equal(t, "b@example.com", emails.created[0].Email)
}

func TestEventCreatedHandler_NoCategoriesIsANoOp(t *testing.T) {
	users := &mockUserRepo{byCategoryErr: errors.New("should not be called")}
	emails := &mockEmailService{}
	h := NewEventCreatedHandler(users, emails, "https://app.test", discard())

	err := h.Handle(context.Background(), domain.EventCreatedMessage{EventID: "ev-1"})
	require.NoError(t, err)
	require.Empty(t, emails.created)
}
