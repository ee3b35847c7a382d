package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventsexpress/internal/domain"
)

type visitorService struct {
	eventRepo   domain.EventRepository
	visitorRepo domain.VisitorRepository
}

// NewVisitorService creates the visitor admission machine.
func NewVisitorService(eventRepo domain.EventRepository, visitorRepo domain.VisitorRepository) domain.VisitorService {
	return &visitorService{eventRepo: eventRepo, visitorRepo: visitorRepo}
}

func (s *visitorService) AddUserToEvent(ctx context.Context, eventID, userID string) (*domain.Visitor, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, "event_id", "event not found")
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.Status == domain.EventStatusBlocked {
		return nil, domain.NewError(domain.ErrInvalidState, "event_id", "event is blocked")
	}

	// Idempotent join: an existing record in any state is returned as-is.
	if existing, err := s.visitorRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get visitor: %w", err)
	}

	v := domain.NewVisitor(eventID, userID, time.Now())
	if err := s.visitorRepo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("create visitor: %w", err)
	}
	return v, nil
}

func (s *visitorService) ChangeVisitorStatus(ctx context.Context, eventID, userID string, status domain.AdmissionStatus) (*domain.Visitor, error) {
	if status != domain.AdmissionApproved && status != domain.AdmissionDenied {
		return nil, domain.NewError(domain.ErrValidation, "status", "status must be approved or denied")
	}

	v, err := s.visitorRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, "visitor_id", "visitor not found")
		}
		return nil, fmt.Errorf("get visitor: %w", err)
	}

	// Re-applying the decision already on record is a no-op; any other
	// transition away from a decided state is illegal.
	if v.Status == status {
		return v, nil
	}
	if v.Status != domain.AdmissionRequested {
		return nil, domain.NewError(domain.ErrInvalidState, "status",
			fmt.Sprintf("visitor is already %s", v.Status))
	}

	if status == domain.AdmissionApproved {
		event, err := s.eventRepo.GetByID(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("get event: %w", err)
		}
		if event.MaxParticipants > 0 {
			approved, err := s.visitorRepo.CountByStatus(ctx, eventID, domain.AdmissionApproved)
			if err != nil {
				return nil, fmt.Errorf("count approved visitors: %w", err)
			}
			if approved >= event.MaxParticipants {
				return nil, domain.NewError(domain.ErrCapacityExceeded, "event_id", "event is full")
			}
		}
	}

	if err := s.visitorRepo.UpdateStatus(ctx, eventID, userID, status); err != nil {
		return nil, fmt.Errorf("update visitor status: %w", err)
	}
	v.Status = status
	return v, nil
}

func (s *visitorService) DeleteUserFromEvent(ctx context.Context, eventID, userID string) error {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewError(domain.ErrNotFound, "event_id", "event not found")
		}
		return fmt.Errorf("get event: %w", err)
	}
	if _, err := s.visitorRepo.GetByEventAndUser(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewError(domain.ErrNotFound, "visitor_id", "visitor not found")
		}
		return fmt.Errorf("get visitor: %w", err)
	}
	if err := s.visitorRepo.Delete(ctx, eventID, userID); err != nil {
		return fmt.Errorf("delete visitor: %w", err)
	}
	return nil
}

func (s *visitorService) ListVisitors(ctx context.Context, eventID string) ([]*domain.Visitor, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, "event_id", "event not found")
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	visitors, err := s.visitorRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}
	if visitors == nil {
		visitors = []*domain.Visitor{}
	}
	return visitors, nil
}
