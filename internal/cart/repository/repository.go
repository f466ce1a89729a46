package repository

import (
	"context"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/cart/domain"
)

// CartRepository defines the interface for durable cart persistence. The cart
// service completes the store write before a mutating operation returns, so a
// restart immediately after a mutation observes the mutated state.
type CartRepository interface {
	// Get retrieves a cart by its user ID. Returns a not-found error when no
	// cart is stored for the user.
	Get(ctx context.Context, userID string) (*domain.Cart, error)

	// Save persists a cart, overwriting any existing cart for the user.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the stored cart for the user. Deleting an absent cart
	// is not an error.
	Delete(ctx context.Context, userID string) error
}
