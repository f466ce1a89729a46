package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/cart/domain"
	apperrors "github.com/rohanbadgujar20011/food-delivery-app/pkg/errors"
)

func testCart(userID string) *domain.Cart {
	return &domain.Cart{
		UserID:       userID,
		RestaurantID: "rest-1",
		Items: []domain.LineItem{
			{MenuItemID: "item-1", Name: "Veg Burger", UnitPrice: 650, Quantity: 1},
		},
		UpdatedAt: time.Now().UTC(),
	}
}

func TestMemoryCartRepository_RoundTrip(t *testing.T) {
	repo := NewCartRepository()

	cart := testCart("user-1")
	require.NoError(t, repo.Save(context.Background(), cart))

	got, err := repo.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, cart.Items, got.Items)
	assert.Equal(t, "rest-1", got.RestaurantID)
}

func TestMemoryCartRepository_GetReturnsCopy(t *testing.T) {
	repo := NewCartRepository()

	require.NoError(t, repo.Save(context.Background(), testCart("user-1")))

	first, err := repo.Get(context.Background(), "user-1")
	require.NoError(t, err)
	first.Items[0].Quantity = 99

	second, err := repo.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Items[0].Quantity)
}

func TestMemoryCartRepository_NotFound(t *testing.T) {
	repo := NewCartRepository()

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMemoryCartRepository_Delete(t *testing.T) {
	repo := NewCartRepository()

	require.NoError(t, repo.Save(context.Background(), testCart("user-1")))
	require.NoError(t, repo.Delete(context.Background(), "user-1"))

	_, err := repo.Get(context.Background(), "user-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.NoError(t, repo.Delete(context.Background(), "user-1"))
}
