package domain

import "context"

// NoRating is the average reported for an event with no ratings.
const NoRating float64 = 0

// Rate is one user's score for one event. At most one rate exists per
// (from_user, event) pair; a second rating overwrites the first.
// swagger:model Rate
type Rate struct {
	FromUserID string `json:"from_user_id"`
	EventID    string `json:"event_id"`
	Score      int    `json:"score"`
}

// AverageScore returns the arithmetic mean of the scores, or NoRating when the
// set is empty.
func AverageScore(rates []*Rate) float64 {
	if len(rates) == 0 {
		return NoRating
	}
	sum := 0
	for _, r := range rates {
		sum += r.Score
	}
	return float64(sum) / float64(len(rates))
}

// RateRepository defines storage operations for ratings.
type RateRepository interface {
	// Upsert inserts the rate or overwrites an existing one for the same
	// (from_user, event) pair.
	Upsert(ctx context.Context, rate *Rate) error
	ListByEventID(ctx context.Context, eventID string) ([]*Rate, error)
}

// RateService aggregates ratings per event.
type RateService interface {
	SetRate(ctx context.Context, fromUserID, eventID string, score int) error
	// GetRate returns the average score, or NoRating when the event has none.
	GetRate(ctx context.Context, eventID string) (float64, error)
}
