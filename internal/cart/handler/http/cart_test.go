package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/cart/domain"
	"github.com/rohanbadgujar20011/food-delivery-app/internal/cart/service"
	apperrors "github.com/rohanbadgujar20011/food-delivery-app/pkg/errors"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/httputil"
)

// --- Mock CartRepository ---

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

// --- Test helpers ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupCartRouter(repo *mockCartRepository) *chi.Mux {
	svc := service.NewCartService(repo, nil, testLogger())
	handler := NewCartHandler(svc, testLogger())

	r := chi.NewRouter()
	r.Route("/api/v1/cart", handler.Routes)
	return r
}

func storedCart(userID string) *domain.Cart {
	return &domain.Cart{
		UserID:       userID,
		RestaurantID: "rest-1",
		Items: []domain.LineItem{
			{MenuItemID: "item-1", Name: "Masala Dosa", UnitPrice: 899, Quantity: 2},
		},
		UpdatedAt: time.Now().UTC(),
	}
}

func doRequest(t *testing.T, router *chi.Mux, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// --- GetCart ---

func TestGetCart_OK(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Get", mock.Anything, "user-1").Return(storedCart("user-1"), nil)

	rec := doRequest(t, setupCartRouter(repo), http.MethodGet, "/api/v1/cart", "user-1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Nil(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestGetCart_MissingUserHeader(t *testing.T) {
	rec := doRequest(t, setupCartRouter(new(mockCartRepository)), http.MethodGet, "/api/v1/cart", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetCart_AbsentCartReturnsEmpty(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Get", mock.Anything, "user-1").Return(nil, apperrors.NotFound("cart", "user-1"))

	rec := doRequest(t, setupCartRouter(repo), http.MethodGet, "/api/v1/cart", "user-1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// --- AddItem ---

func TestAddItem_OK(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Get", mock.Anything, "user-1").Return(nil, apperrors.NotFound("cart", "user-1"))
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	body := AddItemRequest{
		MenuItemID:   "item-1",
		RestaurantID: "rest-1",
		Name:         "Masala Dosa",
		UnitPrice:    899,
	}
	rec := doRequest(t, setupCartRouter(repo), http.MethodPost, "/api/v1/cart/items", "user-1", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestAddItem_ValidationFailure(t *testing.T) {
	body := AddItemRequest{MenuItemID: "", RestaurantID: "rest-1", Name: "X"}
	rec := doRequest(t, setupCartRouter(new(mockCartRepository)), http.MethodPost, "/api/v1/cart/items", "user-1", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestAddItem_CrossRestaurantConflict(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Get", mock.Anything, "user-1").Return(storedCart("user-1"), nil)

	body := AddItemRequest{
		MenuItemID:   "item-9",
		RestaurantID: "rest-2",
		Name:         "Sushi Roll",
		UnitPrice:    1500,
	}
	rec := doRequest(t, setupCartRouter(repo), http.MethodPost, "/api/v1/cart/items", "user-1", body)

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CONFLICT", resp.Error.Code)
}

func TestAddItem_MalformedBody(t *testing.T) {
	router := setupCartRouter(new(mockCartRepository))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddItem_WrongContentType(t *testing.T) {
	router := setupCartRouter(new(mockCartRepository))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString("menu_item_id=item-1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-User-ID", "user-1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

// --- SetQuantity ---

func TestSetQuantity_OK(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Get", mock.Anything, "user-1").Return(storedCart("user-1"), nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	rec := doRequest(t, setupCartRouter(repo), http.MethodPut, "/api/v1/cart/items/item-1", "user-1",
		SetQuantityRequest{Quantity: 4})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetQuantity_AbsentItem(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Get", mock.Anything, "user-1").Return(storedCart("user-1"), nil)

	rec := doRequest(t, setupCartRouter(repo), http.MethodPut, "/api/v1/cart/items/item-404", "user-1",
		SetQuantityRequest{Quantity: 2})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// --- DecrementItem ---

func TestDecrementItem_OK(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Get", mock.Anything, "user-1").Return(storedCart("user-1"), nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	rec := doRequest(t, setupCartRouter(repo), http.MethodPost, "/api/v1/cart/items/item-1/decrement", "user-1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// --- RemoveItem / ClearCart ---

func TestRemoveItem_OK(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Get", mock.Anything, "user-1").Return(storedCart("user-1"), nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	rec := doRequest(t, setupCartRouter(repo), http.MethodDelete, "/api/v1/cart/items/item-1", "user-1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClearCart_OK(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Delete", mock.Anything, "user-1").Return(nil)

	rec := doRequest(t, setupCartRouter(repo), http.MethodDelete, "/api/v1/cart", "user-1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}
