package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/payment/domain"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/database"
	apperrors "github.com/rohanbadgujar20011/food-delivery-app/pkg/errors"
)

// PaymentRepository implements repository.PaymentRepository using PostgreSQL.
type PaymentRepository struct {
	pool database.DBTX
}

// NewPaymentRepository creates a new PostgreSQL-backed payment repository.
func NewPaymentRepository(pool database.DBTX) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

// Create inserts a new payment record.
func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `
		INSERT INTO payments (id, order_id, user_id, amount, mode, status, provider_name, provider_payment_id, failure_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.OrderID,
		p.UserID,
		p.Amount,
		p.Mode,
		p.Status,
		p.ProviderName,
		p.ProviderPayID,
		p.FailureReason,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	return nil
}

// GetByID retrieves a payment by its ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `
		SELECT id, order_id, user_id, amount, mode, status, provider_name, provider_payment_id, failure_reason, created_at, updated_at
		FROM payments
		WHERE id = $1`

	var p domain.Payment
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.OrderID,
		&p.UserID,
		&p.Amount,
		&p.Mode,
		&p.Status,
		&p.ProviderName,
		&p.ProviderPayID,
		&p.FailureReason,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("payment", id)
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}

	return &p, nil
}

// ListByOrderID returns all payment attempts for an order, newest first.
func (r *PaymentRepository) ListByOrderID(ctx context.Context, orderID string) ([]domain.Payment, error) {
	query := `
		SELECT id, order_id, user_id, amount, mode, status, provider_name, provider_payment_id, failure_reason, created_at, updated_at
		FROM payments
		WHERE order_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(
			&p.ID,
			&p.OrderID,
			&p.UserID,
			&p.Amount,
			&p.Mode,
			&p.Status,
			&p.ProviderName,
			&p.ProviderPayID,
			&p.FailureReason,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment rows: %w", err)
	}

	return payments, nil
}

// Update persists the mutable fields of a payment.
func (r *PaymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	query := `
		UPDATE payments
		SET status = $1, provider_payment_id = $2, failure_reason = $3, updated_at = $4
		WHERE id = $5`

	ct, err := r.pool.Exec(ctx, query,
		p.Status,
		p.ProviderPayID,
		p.FailureReason,
		time.Now().UTC(),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("payment", p.ID)
	}

	return nil
}
