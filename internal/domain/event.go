package domain

import (
	"context"
	"time"
)

// EventStatus is the lifecycle state of an event. Blocked events are hidden
// from non-admin users and do not accept new join requests.
type EventStatus string

const (
	EventStatusActive  EventStatus = "active"
	EventStatusBlocked EventStatus = "blocked"
)

// Event represents a published social event. Events form recurrence chains via
// ParentID: each child is a copy of its parent's template fields with the time
// window shifted forward, created strictly after its parent, so chains cannot
// cycle.
// swagger:model Event
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	DateFrom    time.Time   `json:"date_from"`
	DateTo      time.Time   `json:"date_to"`
	OwnerID     string      `json:"owner_id"`
	Status      EventStatus `json:"status"`
	// MaxParticipants caps the number of approved visitors. Zero means unbounded.
	MaxParticipants int       `json:"max_participants"`
	ParentID        *string   `json:"parent_id,omitempty"`
	PhotoID         *string   `json:"photo_id,omitempty"`
	CategoryIDs     []string  `json:"category_ids"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Duration returns the length of the event's time window.
func (e *Event) Duration() time.Duration {
	return e.DateTo.Sub(e.DateFrom)
}

// EventTemplate carries the caller-supplied fields for creating or editing an event.
type EventTemplate struct {
	Title           string
	Description     string
	DateFrom        time.Time
	DateTo          time.Time
	OwnerID         string
	MaxParticipants int
	CategoryIDs     []string
	PhotoUpload     *PhotoUpload
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, event *Event) error
	UpdateStatus(ctx context.Context, id string, status EventStatus) error
	Delete(ctx context.Context, id string) error
	ListUpcoming(ctx context.Context, limit int) ([]*Event, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Event, error)
	SetCategories(ctx context.Context, eventID string, categoryIDs []string) error
	ListCategoryIDs(ctx context.Context, eventID string) ([]string, error)
}

// EventService owns the event lifecycle: creation, editing, recurrence
// spawning, blocking and unblocking, and the rating facade. Domain
// notifications are published only after the state-changing write succeeds.
type EventService interface {
	Create(ctx context.Context, tmpl *EventTemplate) (*Event, error)
	Edit(ctx context.Context, eventID, callerID string, tmpl *EventTemplate) (*Event, error)
	GetByID(ctx context.Context, eventID string) (*Event, error)
	ListUpcoming(ctx context.Context, limit int) ([]*Event, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Event, error)
	Delete(ctx context.Context, eventID, callerID string, cascade bool) error

	// CreateNextEvent spawns the next occurrence of the event: template fields
	// copied from the parent, time window advanced by the parent's duration.
	CreateNextEvent(ctx context.Context, parentID, callerID string) (*Event, error)
	// EditNextEvent spawns the next occurrence with the given edits applied on
	// top of the parent's template. Already-materialized children are never touched.
	EditNextEvent(ctx context.Context, parentID, callerID string, tmpl *EventTemplate) (*Event, error)

	// BlockEvent and UnblockEvent toggle the event's lifecycle state. Only the
	// owner may block or unblock; both are idempotent.
	BlockEvent(ctx context.Context, eventID, callerID string) error
	UnblockEvent(ctx context.Context, eventID, callerID string) error

	SetRate(ctx context.Context, userID, eventID string, score int) error
	GetRate(ctx context.Context, eventID string) (float64, error)
}
