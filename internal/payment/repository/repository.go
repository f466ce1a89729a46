package repository

import (
	"context"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/payment/domain"
)

// PaymentRepository defines the interface for payment persistence operations.
type PaymentRepository interface {
	// Create inserts a new payment record.
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a payment by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Payment, error)

	// ListByOrderID returns all payment attempts for an order, newest first.
	ListByOrderID(ctx context.Context, orderID string) ([]domain.Payment, error)

	// Update persists the mutable fields of a payment (status, provider
	// reference, failure reason).
	Update(ctx context.Context, payment *domain.Payment) error
}
