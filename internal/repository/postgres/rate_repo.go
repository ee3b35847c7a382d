package postgres

import (
	"context"
	"database/sql"

	"eventsexpress/internal/domain"
)

type rateRepository struct {
	DB *sql.DB
}

func NewRateRepository(db *sql.DB) domain.RateRepository {
	return &rateRepository{
		DB: db,
	}
}

// Upsert keeps at most one rate per (from_user, event) pair: a repeated rating
// by the same user overwrites the previous score.
func (r *rateRepository) Upsert(ctx context.Context, rate *domain.Rate) error {
	query := `
		INSERT INTO rates (from_user_id, event_id, score)
		VALUES ($1, $2, $3)
		ON CONFLICT (from_user_id, event_id) DO UPDATE SET score = EXCLUDED.score
	`
	_, err := r.DB.ExecContext(ctx, query, rate.FromUserID, rate.EventID, rate.Score)
	return err
}

func (r *rateRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Rate, error) {
	query := `
		SELECT from_user_id, event_id, score
		FROM rates
		WHERE event_id = $1
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rates := make([]*domain.Rate, 0)
	for rows.Next() {
		rate := &domain.Rate{}
		if err := rows.Scan(&rate.FromUserID, &rate.EventID, &rate.Score); err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, rows.Err()
}
