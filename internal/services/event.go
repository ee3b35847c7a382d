package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventsexpress/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	visitorRepo    domain.VisitorRepository
	rates          domain.RateService
	photos         domain.PhotoService
	publisher      domain.Publisher
	contextTimeout time.Duration
}

// NewEventService creates the event lifecycle manager. Notifications go
// through publisher and are dispatched only after the corresponding write
// succeeded.
func NewEventService(
	eventRepo domain.EventRepository,
	visitorRepo domain.VisitorRepository,
	rates domain.RateService,
	photos domain.PhotoService,
	publisher domain.Publisher,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		visitorRepo:    visitorRepo,
		rates:          rates,
		photos:         photos,
		publisher:      publisher,
		contextTimeout: timeout,
	}
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func validateWindow(from, to time.Time) error {
	if to.Before(from) {
		return domain.NewError(domain.ErrValidation, "date_to", "event must not end before it starts")
	}
	return nil
}

func (s *eventService) Create(ctx context.Context, tmpl *domain.EventTemplate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if tmpl.Title == "" {
		return nil, domain.NewError(domain.ErrValidation, "title", "title is required")
	}
	if tmpl.OwnerID == "" {
		return nil, domain.NewError(domain.ErrValidation, "owner_id", "event owner is required")
	}
	if tmpl.MaxParticipants < 0 {
		return nil, domain.NewError(domain.ErrValidation, "max_participants", "max participants must not be negative")
	}

	dateFrom := tmpl.DateFrom
	dateTo := tmpl.DateTo
	if dateFrom.IsZero() {
		dateFrom = startOfDay(time.Now())
	}
	if dateTo.IsZero() {
		dateTo = startOfDay(time.Now())
	}
	if err := validateWindow(dateFrom, dateTo); err != nil {
		return nil, err
	}

	now := time.Now()
	event := &domain.Event{
		Title:           tmpl.Title,
		Description:     tmpl.Description,
		DateFrom:        dateFrom,
		DateTo:          dateTo,
		OwnerID:         tmpl.OwnerID,
		Status:          domain.EventStatusActive,
		MaxParticipants: tmpl.MaxParticipants,
		CategoryIDs:     tmpl.CategoryIDs,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if tmpl.PhotoUpload != nil {
		photo, err := s.photos.AddPhoto(ctx, tmpl.PhotoUpload)
		if err != nil {
			return nil, fmt.Errorf("add photo: %w", err)
		}
		event.PhotoID = &photo.ID
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	if len(event.CategoryIDs) > 0 {
		if err := s.eventRepo.SetCategories(ctx, event.ID, event.CategoryIDs); err != nil {
			return nil, fmt.Errorf("set event categories: %w", err)
		}
	}

	s.publisher.Publish(ctx, domain.EventCreatedMessage{
		EventID:     event.ID,
		Title:       event.Title,
		OwnerID:     event.OwnerID,
		CategoryIDs: event.CategoryIDs,
	})
	return event, nil
}

func (s *eventService) Edit(ctx context.Context, eventID, callerID string, tmpl *domain.EventTemplate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getWithCategories(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}

	if tmpl.Title == "" {
		return nil, domain.NewError(domain.ErrValidation, "title", "title is required")
	}

	// Omitted dates keep the stored window; a zero time must never overwrite it.
	dateFrom := tmpl.DateFrom
	dateTo := tmpl.DateTo
	if dateFrom.IsZero() {
		dateFrom = event.DateFrom
	}
	if dateTo.IsZero() {
		dateTo = event.DateTo
	}
	if err := validateWindow(dateFrom, dateTo); err != nil {
		return nil, err
	}

	// Delete the old photo before attaching the new one. The other order could
	// leave an orphaned blob if the delete fails afterwards.
	if tmpl.PhotoUpload != nil {
		if event.PhotoID != nil {
			if err := s.photos.Delete(ctx, *event.PhotoID); err != nil {
				return nil, fmt.Errorf("delete old photo: %w", err)
			}
			event.PhotoID = nil
		}
		photo, err := s.photos.AddPhoto(ctx, tmpl.PhotoUpload)
		if err != nil {
			return nil, fmt.Errorf("add photo: %w", err)
		}
		event.PhotoID = &photo.ID
	}

	event.Title = tmpl.Title
	event.Description = tmpl.Description
	event.DateFrom = dateFrom
	event.DateTo = dateTo
	event.MaxParticipants = tmpl.MaxParticipants
	event.UpdatedAt = time.Now()

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	if tmpl.CategoryIDs != nil {
		if err := s.eventRepo.SetCategories(ctx, event.ID, tmpl.CategoryIDs); err != nil {
			return nil, fmt.Errorf("set event categories: %w", err)
		}
		event.CategoryIDs = tmpl.CategoryIDs
	}
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.getWithCategories(ctx, eventID)
}

func (s *eventService) getWithCategories(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, "event_id", "event not found")
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	ids, err := s.eventRepo.ListCategoryIDs(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list event categories: %w", err)
	}
	event.CategoryIDs = ids
	return event, nil
}

func (s *eventService) ListUpcoming(ctx context.Context, limit int) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 20
	}
	events, err := s.eventRepo.ListUpcoming(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list events by owner: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) Delete(ctx context.Context, eventID, callerID string, cascade bool) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getWithCategories(ctx, eventID)
	if err != nil {
		return err
	}
	if event.OwnerID != callerID {
		return domain.ErrForbidden
	}

	visitors, err := s.visitorRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("list visitors: %w", err)
	}
	if len(visitors) > 0 {
		if !cascade {
			return domain.NewError(domain.ErrInvalidState, "event_id", "event still has visitors")
		}
		for _, v := range visitors {
			if err := s.visitorRepo.Delete(ctx, eventID, v.UserID); err != nil {
				return fmt.Errorf("delete visitor: %w", err)
			}
		}
	}

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) CreateNextEvent(ctx context.Context, parentID, callerID string) (*domain.Event, error) {
	return s.spawnNext(ctx, parentID, callerID, nil)
}

func (s *eventService) EditNextEvent(ctx context.Context, parentID, callerID string, tmpl *domain.EventTemplate) (*domain.Event, error) {
	return s.spawnNext(ctx, parentID, callerID, tmpl)
}

// spawnNext materializes the next occurrence of parentID. The child copies the
// parent's template fields, optionally overridden by edits, and its window is
// the parent's shifted forward by the parent's duration. The parent itself and
// any previously materialized children are never mutated.
func (s *eventService) spawnNext(ctx context.Context, parentID, callerID string, edits *domain.EventTemplate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	parent, err := s.getWithCategories(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}

	shift := parent.Duration()
	if shift == 0 {
		// A zero-length window would spawn a child on the same dates; advance
		// a day so the chain always moves forward.
		shift = 24 * time.Hour
	}

	now := time.Now()
	child := &domain.Event{
		Title:           parent.Title,
		Description:     parent.Description,
		DateFrom:        parent.DateFrom.Add(shift),
		DateTo:          parent.DateTo.Add(shift),
		OwnerID:         parent.OwnerID,
		Status:          domain.EventStatusActive,
		MaxParticipants: parent.MaxParticipants,
		ParentID:        &parent.ID,
		CategoryIDs:     parent.CategoryIDs,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if edits != nil {
		if edits.Title != "" {
			child.Title = edits.Title
		}
		if edits.Description != "" {
			child.Description = edits.Description
		}
		if !edits.DateFrom.IsZero() {
			child.DateFrom = edits.DateFrom
		}
		if !edits.DateTo.IsZero() {
			child.DateTo = edits.DateTo
		}
		if edits.MaxParticipants > 0 {
			child.MaxParticipants = edits.MaxParticipants
		}
		if edits.CategoryIDs != nil {
			child.CategoryIDs = edits.CategoryIDs
		}
	}
	if err := validateWindow(child.DateFrom, child.DateTo); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Create(ctx, child); err != nil {
		return nil, fmt.Errorf("create next event: %w", err)
	}
	if len(child.CategoryIDs) > 0 {
		if err := s.eventRepo.SetCategories(ctx, child.ID, child.CategoryIDs); err != nil {
			return nil, fmt.Errorf("set event categories: %w", err)
		}
	}

	s.publisher.Publish(ctx, domain.EventCreatedMessage{
		EventID:     child.ID,
		Title:       child.Title,
		OwnerID:     child.OwnerID,
		CategoryIDs: child.CategoryIDs,
	})
	return child, nil
}

func (s *eventService) BlockEvent(ctx context.Context, eventID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getWithCategories(ctx, eventID)
	if err != nil {
		return err
	}
	if event.OwnerID != callerID {
		return domain.ErrForbidden
	}
	if event.Status == domain.EventStatusBlocked {
		return nil
	}

	if err := s.eventRepo.UpdateStatus(ctx, eventID, domain.EventStatusBlocked); err != nil {
		return fmt.Errorf("block event: %w", err)
	}

	visitors, err := s.visitorRepo.ListByEventID(ctx, eventID)
	if err != nil {
		// The block itself is durable; affected users just cannot be notified.
		return fmt.Errorf("list visitors of blocked event: %w", err)
	}
	userIDs := make([]string, 0, len(visitors))
	for _, v := range visitors {
		userIDs = append(userIDs, v.UserID)
	}

	s.publisher.Publish(ctx, domain.BlockedEventMessage{
		EventID: eventID,
		Title:   event.Title,
		UserIDs: userIDs,
	})
	return nil
}

func (s *eventService) UnblockEvent(ctx context.Context, eventID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getWithCategories(ctx, eventID)
	if err != nil {
		return err
	}
	if event.OwnerID != callerID {
		return domain.ErrForbidden
	}
	if event.Status == domain.EventStatusActive {
		return nil
	}
	if err := s.eventRepo.UpdateStatus(ctx, eventID, domain.EventStatusActive); err != nil {
		return fmt.Errorf("unblock event: %w", err)
	}
	return nil
}

func (s *eventService) SetRate(ctx context.Context, userID, eventID string, score int) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.getWithCategories(ctx, eventID); err != nil {
		return err
	}
	return s.rates.SetRate(ctx, userID, eventID, score)
}

func (s *eventService) GetRate(ctx context.Context, eventID string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.getWithCategories(ctx, eventID); err != nil {
		return domain.NoRating, err
	}
	return s.rates.GetRate(ctx, eventID)
}
