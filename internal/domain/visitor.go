package domain

import (
	"context"
	"time"
)

// AdmissionStatus is the participation state of one user's join request for one
// event. A record is created as Requested and decided exactly once.
type AdmissionStatus string

const (
	AdmissionRequested AdmissionStatus = "requested"
	AdmissionApproved  AdmissionStatus = "approved"
	AdmissionDenied    AdmissionStatus = "denied"
)

// Visitor is an admission record, keyed by (event, user).
// swagger:model Visitor
type Visitor struct {
	EventID   string          `json:"event_id"`
	UserID    string          `json:"user_id"`
	Status    AdmissionStatus `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewVisitor returns a new admission record in the Requested state.
func NewVisitor(eventID, userID string, createdAt time.Time) *Visitor {
	return &Visitor{
		EventID:   eventID,
		UserID:    userID,
		Status:    AdmissionRequested,
		CreatedAt: createdAt,
	}
}

// VisitorRepository defines storage operations for admission records.
type VisitorRepository interface {
	Create(ctx context.Context, v *Visitor) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Visitor, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Visitor, error)
	CountByStatus(ctx context.Context, eventID string, status AdmissionStatus) (int, error)
	UpdateStatus(ctx context.Context, eventID, userID string, status AdmissionStatus) error
	Delete(ctx context.Context, eventID, userID string) error
}

// VisitorService is the admission state machine for (event, user) pairs:
//
//	(none) --Join--> Requested --Approve--> Approved
//	                          \--Deny-----> Denied
type VisitorService interface {
	// AddUserToEvent creates a Requested record. Joining again while a record
	// exists is a no-op returning the existing record.
	AddUserToEvent(ctx context.Context, eventID, userID string) (*Visitor, error)
	// ChangeVisitorStatus decides a pending request. Only legal from Requested;
	// re-applying the current status is a no-op. Approval fails with
	// ErrCapacityExceeded once the approved count reaches the event's cap.
	ChangeVisitorStatus(ctx context.Context, eventID, userID string, status AdmissionStatus) (*Visitor, error)
	// DeleteUserFromEvent withdraws the admission record regardless of state.
	DeleteUserFromEvent(ctx context.Context, eventID, userID string) error
	ListVisitors(ctx context.Context, eventID string) ([]*Visitor, error)
}
