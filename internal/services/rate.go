package services

import (
	"context"
	"fmt"

	"eventsexpress/internal/domain"
)

type rateService struct {
	rateRepo domain.RateRepository
}

// NewRateService creates the rating aggregator service.
func NewRateService(rateRepo domain.RateRepository) domain.RateService {
	return &rateService{rateRepo: rateRepo}
}

func (s *rateService) SetRate(ctx context.Context, fromUserID, eventID string, score int) error {
	if score <= 0 {
		return domain.NewError(domain.ErrValidation, "score", "score must be positive")
	}
	rate := &domain.Rate{FromUserID: fromUserID, EventID: eventID, Score: score}
	if err := s.rateRepo.Upsert(ctx, rate); err != nil {
		return fmt.Errorf("upsert rate: %w", err)
	}
	return nil
}

func (s *rateService) GetRate(ctx context.Context, eventID string) (float64, error) {
	rates, err := s.rateRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return domain.NoRating, fmt.Errorf("list rates: %w", err)
	}
	return domain.AverageScore(rates), nil
}
