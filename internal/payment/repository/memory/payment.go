package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/payment/domain"
	apperrors "github.com/rohanbadgujar20011/food-delivery-app/pkg/errors"
)

// PaymentRepository implements repository.PaymentRepository with an
// in-process map. Useful for tests and for running the server without
// PostgreSQL.
type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]domain.Payment
}

// NewPaymentRepository creates a new in-memory payment repository.
func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{
		payments: make(map[string]domain.Payment),
	}
}

// Create inserts a new payment record.
func (r *PaymentRepository) Create(_ context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.payments[payment.ID]; exists {
		return apperrors.Conflict("payment already exists")
	}

	r.payments[payment.ID] = *payment
	return nil
}

// GetByID retrieves a payment by its ID.
func (r *PaymentRepository) GetByID(_ context.Context, id string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, apperrors.NotFound("payment", id)
	}

	return &p, nil
}

// ListByOrderID returns all payment attempts for an order, newest first.
func (r *PaymentRepository) ListByOrderID(_ context.Context, orderID string) ([]domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payments := make([]domain.Payment, 0)
	for _, p := range r.payments {
		if p.OrderID == orderID {
			payments = append(payments, p)
		}
	}

	sort.Slice(payments, func(i, j int) bool {
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})

	return payments, nil
}

// Update persists the mutable fields of a payment.
func (r *PaymentRepository) Update(_ context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.payments[payment.ID]
	if !ok {
		return apperrors.NotFound("payment", payment.ID)
	}

	stored.Status = payment.Status
	stored.ProviderPayID = payment.ProviderPayID
	stored.FailureReason = payment.FailureReason
	stored.UpdatedAt = time.Now().UTC()
	r.payments[payment.ID] = stored

	return nil
}
