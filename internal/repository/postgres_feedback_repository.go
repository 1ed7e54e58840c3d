package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/servibook/servibook/internal/domain"
)

// PostgresFeedbackRepository implements FeedbackRepository using PostgreSQL with pgxpool
type PostgresFeedbackRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresFeedbackRepository creates a new PostgresFeedbackRepository
func NewPostgresFeedbackRepository(pool *pgxpool.Pool) *PostgresFeedbackRepository {
	return &PostgresFeedbackRepository{pool: pool}
}

// Create creates a new feedback record
func (r *PostgresFeedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	query := `
		INSERT INTO feedback (id, user_id, service_id, rating, comment, del_flag, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		fb.ID, fb.UserID, fb.ServiceID, fb.Rating, fb.Comment, fb.DelFlag, fb.CreatedAt, fb.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	return nil
}

// GetByID retrieves feedback by its ID
func (r *PostgresFeedbackRepository) GetByID(ctx context.Context, id string) (*domain.Feedback, error) {
	query := `
		SELECT id, user_id, service_id, rating, comment, del_flag, created_at, updated_at
		FROM feedback
		WHERE id = $1 AND del_flag = FALSE
	`

	fb := &domain.Feedback{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&fb.ID, &fb.UserID, &fb.ServiceID, &fb.Rating, &fb.Comment,
		&fb.DelFlag, &fb.CreatedAt, &fb.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	return fb, nil
}

// GetByServiceID retrieves all feedback for a catalog entry
func (r *PostgresFeedbackRepository) GetByServiceID(ctx context.Context, serviceID string, limit, offset int) ([]*domain.Feedback, error) {
	query := `
		SELECT id, user_id, service_id, rating, comment, del_flag, created_at, updated_at
		FROM feedback
		WHERE service_id = $1 AND del_flag = FALSE
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, serviceID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback by service id: %w", err)
	}
	defer rows.Close()

	var feedback []*domain.Feedback
	for rows.Next() {
		fb := &domain.Feedback{}
		if err := rows.Scan(
			&fb.ID, &fb.UserID, &fb.ServiceID, &fb.Rating, &fb.Comment,
			&fb.DelFlag, &fb.CreatedAt, &fb.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		feedback = append(feedback, fb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback: %w", err)
	}

	return feedback, nil
}

// Delete soft-deletes feedback by its ID
func (r *PostgresFeedbackRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE feedback SET del_flag = TRUE, updated_at = $2
		WHERE id = $1 AND del_flag = FALSE
	`

	tag, err := r.pool.Exec(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrFeedbackNotFound
	}

	return nil
}

// Ensure PostgresFeedbackRepository implements FeedbackRepository
var _ FeedbackRepository = (*PostgresFeedbackRepository)(nil)
