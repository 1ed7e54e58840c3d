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

// PostgresServiceRepository implements ServiceRepository using PostgreSQL with pgxpool
type PostgresServiceRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresServiceRepository creates a new PostgresServiceRepository
func NewPostgresServiceRepository(pool *pgxpool.Pool) *PostgresServiceRepository {
	return &PostgresServiceRepository{pool: pool}
}

// Create creates a new catalog entry
func (r *PostgresServiceRepository) Create(ctx context.Context, svc *domain.Service) error {
	query := `
		INSERT INTO services (id, name, description, del_flag, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		svc.ID, svc.Name, svc.Description, svc.DelFlag, svc.CreatedAt, svc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrServiceAlreadyExists
		}
		return fmt.Errorf("failed to create service: %w", err)
	}

	return nil
}

// GetByID retrieves a catalog entry by its ID
func (r *PostgresServiceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	query := `
		SELECT id, name, description, del_flag, created_at, updated_at
		FROM services
		WHERE id = $1 AND del_flag = FALSE
	`

	svc := &domain.Service{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&svc.ID, &svc.Name, &svc.Description, &svc.DelFlag, &svc.CreatedAt, &svc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	return svc, nil
}

// List retrieves all catalog entries
func (r *PostgresServiceRepository) List(ctx context.Context, limit, offset int) ([]*domain.Service, error) {
	query := `
		SELECT id, name, description, del_flag, created_at, updated_at
		FROM services
		WHERE del_flag = FALSE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	var services []*domain.Service
	for rows.Next() {
		svc := &domain.Service{}
		if err := rows.Scan(
			&svc.ID, &svc.Name, &svc.Description, &svc.DelFlag, &svc.CreatedAt, &svc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating services: %w", err)
	}

	return services, nil
}

// Update updates an existing catalog entry
func (r *PostgresServiceRepository) Update(ctx context.Context, svc *domain.Service) error {
	query := `
		UPDATE services SET
			name = $2,
			description = $3,
			updated_at = $4
		WHERE id = $1 AND del_flag = FALSE
	`

	tag, err := r.pool.Exec(ctx, query, svc.ID, svc.Name, svc.Description, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrServiceNotFound
	}

	return nil
}

// Delete soft-deletes a catalog entry by its ID
func (r *PostgresServiceRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE services SET del_flag = TRUE, updated_at = $2
		WHERE id = $1 AND del_flag = FALSE
	`

	tag, err := r.pool.Exec(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrServiceNotFound
	}

	return nil
}

// Ensure PostgresServiceRepository implements ServiceRepository
var _ ServiceRepository = (*PostgresServiceRepository)(nil)
