package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/cart/domain"
	apperrors "github.com/rohanbadgujar20011/food-delivery-app/pkg/errors"
)

// --- Mock Repository ---

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestService(repo *mockCartRepository) *CartService {
	return NewCartService(repo, nil, newTestLogger())
}

func newCartWithItem(userID string) *domain.Cart {
	return &domain.Cart{
		UserID:       userID,
		RestaurantID: "rest-1",
		Items: []domain.LineItem{
			{
				MenuItemID: "item-1",
				Name:       "Margherita Pizza",
				UnitPrice:  1250,
				Quantity:   2,
			},
		},
		UpdatedAt: time.Now().UTC(),
	}
}

func addInput() AddItemInput {
	return AddItemInput{
		MenuItemID:   "item-1",
		RestaurantID: "rest-1",
		Name:         "Margherita Pizza",
		UnitPrice:    1250,
	}
}

// --- GetCart ---

func TestGetCart_ReturnsStoredCart(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)

	stored := newCartWithItem("user-1")
	repo.On("Get", mock.Anything, "user-1").Return(stored, nil)

	cart, err := svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", cart.UserID)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2500), cart.TotalAmount())
	repo.AssertExpectations(t)
}

func TestGetCart_AbsentCartIsEmptyCart(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)

	repo.On("Get", mock.Anything, "user-1").Return(nil, apperrors.NotFound("cart", "user-1"))

	cart, err := svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Empty(t, cart.RestaurantID)
}

func TestGetCart_MissingUserID(t *testing.T) {
	svc := newTestService(new(mockCartRepository))

	_, err := svc.GetCart(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// --- AddItem ---

func TestAddItem_NewItemInsertedWithQuantityOne(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)

	repo.On("Get", mock.Anything, "user-1").Return(nil, apperrors.NotFound("cart", "user-1"))
	repo.On("Save", mock.Anything, mock.MatchedBy(func(c *domain.Cart) bool {
		return len(c.Items) == 1 && c.Items[0].Quantity == 1 && c.RestaurantID == "rest-1"
	})).Return(nil)

	cart, err := svc.AddItem(context.Background(), "user-1", addInput())
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, "rest-1", cart.RestaurantID)
	repo.AssertExpectations(t)
}

func TestAddItem_ExistingItemIncrementsByOne(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)

	repo.On("Get", mock.Anything, "user-1").Return(newCartWithItem("user-1"), nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	cart, err := svc.AddItem(context.Background(), "user-1", addInput())
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Len(t, cart.Items, 1)
}

func TestAddItem_DifferentRestaurantRejected(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)

	repo.On("Get", mock.Anything, "user-1").Return(newCartWithItem("user-1"), nil)

	input := addInput()
	input.MenuItemID = "item-9"
	input.RestaurantID = "rest-2"

	_, err := svc.AddItem(context.Background(), "user-1", input)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddItem_NegativePriceRejected(t *testing.T) {
	svc := newTestService(new(mockCartRepository))

	input := addInput()
	input.UnitPrice = -1

	_, err := svc.AddItem(context.Background(), "user-1", input)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestAddItem_QuantityLimitEnforced(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)

	cart := newCartWithItem("user-1")
	cart.Items[0].Quantity = MaxQuantityPerItem
	repo.On("Get", mock.Anything, "user-1").Return(cart, nil)

	_, err := svc.AddItem(context.Background(), "user-1", addInput())
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestAddItem_SaveErrorPropagated(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)

	repo.On("Get", mock.Anything, "user-1").Return(nil, apperrors.NotFound("cart", "user-1"))
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("redis: connection refused"))

	_, err := svc.AddItem(context.Background(), "user-1", addInput())
	assert.Error(t, err)
}

// --- DecrementItem ---

func TestDecrementItem_ReducesQuantity(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)

	repo.On("Get", mock.Anything, "user-1").Return(newCartWithItem("user-1"), nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	cart, err := svc.DecrementItem(context.Background(), "user-1", "item-1")
	require.NoError(t, err)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestDecrementItem_LastUnitRemovesLine(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)

	cart := newCartWithItem("user-1")
	cart.Items[0].Quantity = 1
	repo.On("Get", mock.Anything, "user-1").Return(cart, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.DecrementItem(context.Background(), "user-1", "item-1")
	require.NoError(t, err)
	assert.True(t, result.IsEmpty())
	assert.Empty(t, result.RestaurantID)
}

func TestDecrementItem_AbsentItemIsNoOp(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)

	repo.On("Get", mock.Anything, "user-1").Return(newCartWithItem("user-1"), nil)

	cart, err := svc.DecrementItem(context.Background(), "user-1", "item-missing")
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// --- RemoveItem ---

func TestRemoveItem_RemovesLineRegardlessOfQuantity(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)

	repo.On("Get", mock.Anything, "user-1").Return(newCartWithItem("user-1"), nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	cart, err := svc.RemoveItem(context.Background(), "user-1", "item-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestRemoveItem_AbsentItemIsNoOp(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)

	repo.On("Get", mock.Anything, "user-1").Return(newCartWithItem("user-1"), nil)

	cart, err := svc.RemoveItem(context.Background(), "user-1", "item-missing")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// --- SetQuantity ---

func TestSetQuantity_UpdatesQuantity(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)

	repo.On("Get", mock.Anything, "user-1").Return(newCartWithItem("user-1"), nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	cart, err := svc.SetQuantity(context.Background(), "user-1", "item-1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)

	repo.On("Get", mock.Anything, "user-1").Return(newCartWithItem("user-1"), nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	cart, err := svc.SetQuantity(context.Background(), "user-1", "item-1", 0)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestSetQuantity_AbsentItemNotFound(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)

	repo.On("Get", mock.Anything, "user-1").Return(newCartWithItem("user-1"), nil)

	_, err := svc.SetQuantity(context.Background(), "user-1", "item-missing", 3)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSetQuantity_OverLimitRejected(t *testing.T) {
	svc := newTestService(new(mockCartRepository))

	_, err := svc.SetQuantity(context.Background(), "user-1", "item-1", MaxQuantityPerItem+1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// --- Clear ---

func TestClear_DeletesCart(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)

	repo.On("Delete", mock.Anything, "user-1").Return(nil)

	err := svc.Clear(context.Background(), "user-1")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestClear_DeleteErrorPropagated(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestService(repo)

	repo.On("Delete", mock.Anything, "user-1").Return(errors.New("redis: connection refused"))

	err := svc.Clear(context.Background(), "user-1")
	assert.Error(t, err)
}
