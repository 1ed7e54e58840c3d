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

// PostgresPaymentRepository implements PaymentRepository using PostgreSQL with pgxpool
type PostgresPaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPaymentRepository creates a new PostgresPaymentRepository
func NewPostgresPaymentRepository(pool *pgxpool.Pool) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{pool: pool}
}

const paymentColumns = `
	id, booking_id, amount, status, reference, paid_at, created_at, updated_at
`

// Create creates a new payment record. The unique index on booking_id makes
// the second of two concurrent inserts fail, which surfaces here as
// domain.ErrPaymentAlreadyExists.
func (r *PostgresPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			id, booking_id, amount, status, reference, paid_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.Amount,
		string(payment.Status),
		payment.Reference,
		payment.PaidAt,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPaymentAlreadyExists
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// GetByID retrieves a payment by its ID
func (r *PostgresPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return r.scanPayment(r.pool.QueryRow(ctx, query, id))
}

// GetByBookingID retrieves the payment for a booking
func (r *PostgresPaymentRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1`
	return r.scanPayment(r.pool.QueryRow(ctx, query, bookingID))
}

// GetByReference retrieves a payment by its gateway reference
func (r *PostgresPaymentRepository) GetByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE reference = $1`
	return r.scanPayment(r.pool.QueryRow(ctx, query, reference))
}

// List retrieves payments, newest first
func (r *PostgresPaymentRepository) List(ctx context.Context, limit, offset int) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		payment, err := r.scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payments: %w", err)
	}

	return payments, nil
}

// Update updates an existing payment
func (r *PostgresPaymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	query := `
		UPDATE payments SET
			status = $2,
			reference = $3,
			paid_at = $4,
			updated_at = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		payment.ID,
		string(payment.Status),
		payment.Reference,
		payment.PaidAt,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}

	return nil
}

// ConfirmWithBooking marks the payment as settled and updates its booking in
// a single transaction
func (r *PostgresPaymentRepository) ConfirmWithBooking(ctx context.Context, payment *domain.Payment, booking *domain.Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()

	paymentQuery := `
		UPDATE payments SET
			status = $2,
			paid_at = $3,
			updated_at = $4
		WHERE id = $1
	`
	tag, err := tx.Exec(ctx, paymentQuery, payment.ID, string(payment.Status), payment.PaidAt, now)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}

	bookingQuery := `
		UPDATE bookings SET
			status = $2,
			admin_id = $3,
			price = $4,
			updated_at = $5
		WHERE id = $1 AND del_flag = FALSE
	`
	tag, err = tx.Exec(ctx, bookingQuery,
		booking.ID,
		string(booking.Status),
		booking.AdminID,
		booking.Price,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *PostgresPaymentRepository) scanPayment(row pgx.Row) (*domain.Payment, error) {
	payment := &domain.Payment{}
	var status string

	err := row.Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Amount,
		&status,
		&payment.Reference,
		&payment.PaidAt,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	payment.Status = domain.PaymentStatus(status)
	return payment, nil
}

// Ensure PostgresPaymentRepository implements PaymentRepository
var _ PaymentRepository = (*PostgresPaymentRepository)(nil)
