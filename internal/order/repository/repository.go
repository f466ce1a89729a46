package repository

import (
	"context"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/order/domain"
)

// OrderFilter defines filter criteria for listing orders.
type OrderFilter struct {
	UserID       *string
	RestaurantID *string
	Status       *string
	Page         int
	PerPage      int
}

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	// Create inserts a new order and its items into the store atomically.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by its unique identifier, including items.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// GetByIdempotencyKey retrieves the order a user previously created with
	// the given idempotency key. Returns an error wrapping
	// apperrors.ErrNotFound when no such order exists.
	GetByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Order, error)

	// List returns orders matching the given filter along with the total count.
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, int, error)

	// UpdateStatus changes the status of an order and optionally sets a cancel reason.
	UpdateStatus(ctx context.Context, id string, status string, reason string) error
}
