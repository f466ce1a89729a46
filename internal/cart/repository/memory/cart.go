package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/cart/domain"
	apperrors "github.com/rohanbadgujar20011/food-delivery-app/pkg/errors"
)

// CartRepository implements repository.CartRepository with an in-process map.
// It serializes carts to JSON on Save and back on Get, so it exercises the
// same round-trip path as the Redis backend. Useful for tests and for
// running the server without Redis.
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

// NewCartRepository creates a new in-memory cart repository.
func NewCartRepository() *CartRepository {
	return &CartRepository{
		carts: make(map[string][]byte),
	}
}

// Get retrieves a cart by user ID.
func (r *CartRepository) Get(_ context.Context, userID string) (*domain.Cart, error) {
	r.mu.RLock()
	data, ok := r.carts[userID]
	r.mu.RUnlock()

	if !ok {
		return nil, apperrors.NotFound("cart", userID)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}

	return &cart, nil
}

// Save persists a cart, overwriting any existing cart for the user.
func (r *CartRepository) Save(_ context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	r.mu.Lock()
	r.carts[cart.UserID] = data
	r.mu.Unlock()

	return nil
}

// Delete removes the stored cart for the user.
func (r *CartRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	delete(r.carts, userID)
	r.mu.Unlock()

	return nil
}
