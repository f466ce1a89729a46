package repository

import (
	"context"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/menu/domain"
)

// MenuRepository defines the persistence contract for menu items.
//
// GetByID, Update, and Delete return an error wrapping
// apperrors.ErrNotFound when no item with the given ID exists.
type MenuRepository interface {
	// Create inserts a new menu item and fills in its generated ID.
	Create(ctx context.Context, item *domain.MenuItem) error

	// GetByID retrieves a menu item by its ID.
	GetByID(ctx context.Context, id string) (*domain.MenuItem, error)

	// List returns menu items matching the filter, newest first.
	List(ctx context.Context, filter domain.ListFilter) ([]*domain.MenuItem, error)

	// Update replaces the mutable fields of an existing menu item.
	Update(ctx context.Context, item *domain.MenuItem) error

	// Delete removes a menu item by its ID.
	Delete(ctx context.Context, id string) error
}
