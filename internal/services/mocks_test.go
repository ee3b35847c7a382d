package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"eventsexpress/internal/domain"
)

type mockEventRepo struct {
	mu         sync.Mutex
	events     map[string]*domain.Event
	categories map[string][]string
	nextID     int
	err        error
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{
		events:     make(map[string]*domain.Event),
		categories: make(map[string][]string),
	}
}

func (m *mockEventRepo) Create(ctx context.Context, e *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.nextID++
	e.ID = fmt.Sprintf("ev-%d", m.nextID)
	cp := *e
	m.events[e.ID] = &cp
	return nil
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *mockEventRepo) Update(ctx context.Context, e *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[e.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *e
	m.events[e.ID] = &cp
	return nil
}

func (m *mockEventRepo) UpdateStatus(ctx context.Context, id string, status domain.EventStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Status = status
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *mockEventRepo) ListUpcoming(ctx context.Context, limit int) ([]*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Event
	for _, e := range m.events {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateFrom.Before(out[j].DateFrom) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockEventRepo) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Event
	for _, e := range m.events {
		if e.OwnerID == ownerID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockEventRepo) SetCategories(ctx context.Context, eventID string, categoryIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[eventID] = append([]string(nil), categoryIDs...)
	return nil
}

func (m *mockEventRepo) ListCategoryIDs(ctx context.Context, eventID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.categories[eventID]...), nil
}

type mockVisitorRepo struct {
	mu       sync.Mutex
	visitors map[string]*domain.Visitor
	order    []string
}

func newMockVisitorRepo() *mockVisitorRepo {
	return &mockVisitorRepo{visitors: make(map[string]*domain.Visitor)}
}

func visitorKey(eventID, userID string) string { return eventID + ":" + userID }

func (m *mockVisitorRepo) Create(ctx context.Context, v *domain.Visitor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := visitorKey(v.EventID, v.UserID)
	if _, ok := m.visitors[key]; ok {
		return fmt.Errorf("duplicate visitor %s", key)
	}
	cp := *v
	m.visitors[key] = &cp
	m.order = append(m.order, key)
	return nil
}

func (m *mockVisitorRepo) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Visitor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.visitors[visitorKey(eventID, userID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *mockVisitorRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Visitor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Visitor
	for _, key := range m.order {
		v, ok := m.visitors[key]
		if ok && v.EventID == eventID {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockVisitorRepo) CountByStatus(ctx context.Context, eventID string, status domain.AdmissionStatus) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, v := range m.visitors {
		if v.EventID == eventID && v.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *mockVisitorRepo) UpdateStatus(ctx context.Context, eventID, userID string, status domain.AdmissionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.visitors[visitorKey(eventID, userID)]
	if !ok {
		return domain.ErrNotFound
	}
	v.Status = status
	return nil
}

func (m *mockVisitorRepo) Delete(ctx context.Context, eventID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := visitorKey(eventID, userID)
	if _, ok := m.visitors[key]; !ok {
		return domain.ErrNotFound
	}
	delete(m.visitors, key)
	return nil
}

type mockRateRepo struct {
	mu    sync.Mutex
	rates map[string]*domain.Rate
}

func newMockRateRepo() *mockRateRepo {
	return &mockRateRepo{rates: make(map[string]*domain.Rate)}
}

func (m *mockRateRepo) Upsert(ctx context.Context, rate *domain.Rate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rate
	m.rates[rate.FromUserID+":"+rate.EventID] = &cp
	return nil
}

func (m *mockRateRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Rate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Rate
	for _, r := range m.rates {
		if r.EventID == eventID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

// mockPublisher records published messages synchronously.
type mockPublisher struct {
	mu       sync.Mutex
	messages []domain.Message
}

func (m *mockPublisher) Publish(ctx context.Context, msg domain.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

func (m *mockPublisher) published() []domain.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Message(nil), m.messages...)
}

// mockPhotoService records the order of add/delete calls.
type mockPhotoService struct {
	mu     sync.Mutex
	nextID int
	calls  []string
}

func (m *mockPhotoService) AddPhoto(ctx context.Context, upload *domain.PhotoUpload) (*domain.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := fmt.Sprintf("ph-%d", m.nextID)
	m.calls = append(m.calls, "add:"+id)
	return &domain.Photo{ID: id, Path: upload.Path, CreatedAt: time.Now()}, nil
}

func (m *mockPhotoService) Delete(ctx context.Context, photoID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "delete:"+photoID)
	return nil
}

type mockUserRepo struct {
	mu         sync.Mutex
	users      map[string]*domain.User
	byEmail    map[string]*domain.User
	categories map[string][]string
	nextID     int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:      make(map[string]*domain.User),
		byEmail:    make(map[string]*domain.User),
		categories: make(map[string][]string),
	}
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	u.ID = fmt.Sprintf("u-%d", m.nextID)
	cp := *u
	m.users[u.ID] = &cp
	m.byEmail[u.Email] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) SetEmailConfirmed(ctx context.Context, id string, confirmed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.EmailConfirmed = confirmed
	m.byEmail[u.Email] = u
	return nil
}

func (m *mockUserRepo) SetCategories(ctx context.Context, userID string, categoryIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[userID] = append([]string(nil), categoryIDs...)
	return nil
}

func (m *mockUserRepo) ListByCategoryIDs(ctx context.Context, categoryIDs []string) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := make(map[string]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		wanted[id] = struct{}{}
	}
	var out []*domain.User
	for userID, cats := range m.categories {
		for _, c := range cats {
			if _, ok := wanted[c]; ok {
				cp := *m.users[userID]
				out = append(out, &cp)
				break
			}
		}
	}
	return out, nil
}

type mockVerificationCache struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newMockVerificationCache() *mockVerificationCache {
	return &mockVerificationCache{tokens: make(map[string]string)}
}

func (m *mockVerificationCache) SetToken(ctx context.Context, userID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[userID] = token
	return nil
}

func (m *mockVerificationCache) GetToken(ctx context.Context, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[userID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return t, nil
}

func (m *mockVerificationCache) DeleteToken(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, userID)
	return nil
}

// plainHasher stores the password as "salt|password" so tests can assert
// comparisons without bcrypt cost.
type plainHasher struct{}

func (plainHasher) GenerateSalt() (string, error) { return "salt", nil }
func (plainHasher) Hash(salt, password string) (string, error) {
	return salt + "|" + password, nil
}
func (plainHasher) Compare(hash, salt, password string) error {
	if hash != salt+"|"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

type staticTokenIssuer struct{}

func (staticTokenIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	return "token-" + userID, nil
}
