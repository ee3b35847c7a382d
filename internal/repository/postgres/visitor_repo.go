package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventsexpress/internal/domain"
)

type visitorRepository struct {
	DB *sql.DB
}

func NewVisitorRepository(db *sql.DB) domain.VisitorRepository {
	return &visitorRepository{
		DB: db,
	}
}

func (r *visitorRepository) Create(ctx context.Context, v *domain.Visitor) error {
	query := `
		INSERT INTO visitors (event_id, user_id, status, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.ExecContext(ctx, query, v.EventID, v.UserID, v.Status, v.CreatedAt)
	return err
}

func (r *visitorRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Visitor, error) {
	query := `
		SELECT event_id, user_id, status, created_at
		FROM visitors
		WHERE event_id = $1 AND user_id = $2
	`
	v := &domain.Visitor{}
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).Scan(
		&v.EventID, &v.UserID, &v.Status, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *visitorRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Visitor, error) {
	query := `
		SELECT event_id, user_id, status, created_at
		FROM visitors
		WHERE event_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	visitors := make([]*domain.Visitor, 0)
	for rows.Next() {
		v := &domain.Visitor{}
		if err := rows.Scan(&v.EventID, &v.UserID, &v.Status, &v.CreatedAt); err != nil {
			return nil, err
		}
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

func (r *visitorRepository) CountByStatus(ctx context.Context, eventID string, status domain.AdmissionStatus) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM visitors WHERE event_id = $1 AND status = $2`,
		eventID, status,
	).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *visitorRepository) UpdateStatus(ctx context.Context, eventID, userID string, status domain.AdmissionStatus) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE visitors SET status = $3 WHERE event_id = $1 AND user_id = $2`,
		eventID, userID, status,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *visitorRepository) Delete(ctx context.Context, eventID, userID string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM visitors WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
