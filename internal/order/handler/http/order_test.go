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

	"github.com/rohanbadgujar20011/food-delivery-app/internal/order/domain"
	"github.com/rohanbadgujar20011/food-delivery-app/internal/order/repository"
	"github.com/rohanbadgujar20011/food-delivery-app/internal/order/service"
	apperrors "github.com/rohanbadgujar20011/food-delivery-app/pkg/errors"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/httputil"
)

const testOrderID = "8f14e45f-ceea-467f-a07c-0f7d1a3c2b01"

// --- Mock Repository ---

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepository) GetByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Order, error) {
	args := m.Called(ctx, userID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id string, status string, reason string) error {
	args := m.Called(ctx, id, status, reason)
	return args.Error(0)
}

// --- Test helpers ---

func setupOrderRouter(repo *mockOrderRepository) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	handler := NewOrderHandler(service.NewOrderService(repo, nil, logger), logger)

	r := chi.NewRouter()
	r.Route("/api/v1/orders", handler.Routes)
	return r
}

func sampleOrder() *domain.Order {
	now := time.Now().UTC()
	return &domain.Order{
		ID:             testOrderID,
		UserID:         "user-1",
		RestaurantID:   "rest-1",
		Status:         domain.OrderStatusPending,
		SubtotalAmount: 2550,
		DeliveryFee:    299,
		TotalAmount:    2849,
		Items:          []domain.OrderItem{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// --- CreateOrder ---

func TestCreateOrder_Created(t *testing.T) {
	repo := new(mockOrderRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	body, err := json.Marshal(CreateOrderRequest{
		UserID:       "user-1",
		RestaurantID: "rest-1",
		Items: []CreateOrderItemRequest{
			{MenuItemID: "menu-1", Name: "Margherita Pizza", Price: 1250, Quantity: 2},
			{MenuItemID: "menu-2", Name: "Garlic Bread", Price: 50, Quantity: 1},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	setupOrderRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data domain.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(2849), resp.Data.TotalAmount)
	assert.NotEmpty(t, resp.Data.ID)
}

func TestCreateOrder_IdempotencyKeyHeaderHonored(t *testing.T) {
	repo := new(mockOrderRepository)
	existing := sampleOrder()
	repo.On("GetByIdempotencyKey", mock.Anything, "user-1", "attempt-42").Return(existing, nil)

	body, err := json.Marshal(CreateOrderRequest{
		UserID:       "user-1",
		RestaurantID: "rest-1",
		Items: []CreateOrderItemRequest{
			{MenuItemID: "menu-1", Name: "Margherita Pizza", Price: 1250, Quantity: 2},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "attempt-42")
	rec := httptest.NewRecorder()
	setupOrderRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data domain.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, existing.ID, resp.Data.ID)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateOrder_ValidationFailure(t *testing.T) {
	body := []byte(`{"user_id":"","restaurant_id":"rest-1","items":[]}`)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	setupOrderRouter(new(mockOrderRepository)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp httputil.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

// --- GetOrder ---

func TestGetOrder_OK(t *testing.T) {
	repo := new(mockOrderRepository)
	repo.On("GetByID", mock.Anything, testOrderID).Return(sampleOrder(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+testOrderID, nil)
	rec := httptest.NewRecorder()
	setupOrderRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetOrder_InvalidUUID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	setupOrderRouter(new(mockOrderRepository)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder_NotFound(t *testing.T) {
	repo := new(mockOrderRepository)
	repo.On("GetByID", mock.Anything, testOrderID).Return(nil, apperrors.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+testOrderID, nil)
	rec := httptest.NewRecorder()
	setupOrderRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// --- ListOrders ---

func TestListOrders_PaginatedEnvelope(t *testing.T) {
	repo := new(mockOrderRepository)
	repo.On("List", mock.Anything, mock.Anything).Return([]domain.Order{*sampleOrder()}, 1, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?user_id=user-1&page=1&per_page=10", nil)
	rec := httptest.NewRecorder()
	setupOrderRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp httputil.PaginatedResponse[domain.Order]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.TotalCount)
	assert.Len(t, resp.Data, 1)
	assert.False(t, resp.HasNext)
}

func TestListOrders_BadPageParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?page=zero", nil)
	rec := httptest.NewRecorder()
	setupOrderRouter(new(mockOrderRepository)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- UpdateOrderStatus / CancelOrder ---

func TestUpdateOrderStatus_OK(t *testing.T) {
	repo := new(mockOrderRepository)
	repo.On("GetByID", mock.Anything, testOrderID).Return(sampleOrder(), nil)
	repo.On("UpdateStatus", mock.Anything, testOrderID, domain.OrderStatusConfirmed, "").Return(nil)

	body := []byte(`{"status":"confirmed"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/orders/"+testOrderID+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	setupOrderRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateOrderStatus_RejectsUnknownStatus(t *testing.T) {
	body := []byte(`{"status":"shipped"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/orders/"+testOrderID+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	setupOrderRouter(new(mockOrderRepository)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelOrder_EmptyBodyAllowed(t *testing.T) {
	repo := new(mockOrderRepository)
	repo.On("GetByID", mock.Anything, testOrderID).Return(sampleOrder(), nil)
	repo.On("UpdateStatus", mock.Anything, testOrderID, domain.OrderStatusCancelled, "").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+testOrderID+"/cancel", nil)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	setupOrderRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
