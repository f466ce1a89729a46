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

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartmemory "github.com/rohanbadgujar20011/food-delivery-app/internal/cart/repository/memory"
	cartservice "github.com/rohanbadgujar20011/food-delivery-app/internal/cart/service"
	"github.com/rohanbadgujar20011/food-delivery-app/internal/checkout/client"
	"github.com/rohanbadgujar20011/food-delivery-app/internal/checkout/service"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/httpclient"
)

const (
	testUserID  = "user-001"
	testOrderID = "8f14e45f-ceea-467f-a07c-0f7d1a3c2b01"
)

// --- Test Helpers ---

// fakeBackend serves minimal order and payment endpoints on one mux.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/orders", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"id": testOrderID, "status": "pending", "total_amount": 2849},
		})
	})
	mux.HandleFunc("POST /api/v1/payments", func(w http.ResponseWriter, r *http.Request) {
		var req client.SubmitPaymentRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		result := map[string]any{"payment_id": "pay-001", "status": "SUCCESS"}
		if req.Mode == "UPI" {
			result = map[string]any{"payment_id": "pay-002", "status": "FAILED", "failure_reason": "upstream timeout"}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": result})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestRouter(t *testing.T) (http.Handler, *cartservice.CartService) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	carts := cartservice.NewCartService(cartmemory.NewCartRepository(), nil, logger)

	backend := fakeBackend(t)
	httpc := httpclient.New(httpclient.DefaultConfig())
	svc := service.NewCheckoutService(
		carts,
		client.NewOrderClient(httpc, backend.URL),
		client.NewPaymentClient(httpc, backend.URL),
		logger,
	)
	handler := NewCheckoutHandler(svc, logger)

	r := chi.NewRouter()
	r.Route("/api/v1/checkout", handler.Routes)
	return r, carts
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.Header.Set("X-User-ID", testUserID)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func seedCart(t *testing.T, carts *cartservice.CartService) {
	t.Helper()
	_, err := carts.AddItem(context.Background(), testUserID, cartservice.AddItemInput{
		MenuItemID:   "menu-001",
		RestaurantID: "rest-001",
		Name:         "Margherita Pizza",
		UnitPrice:    1250,
	})
	require.NoError(t, err)
}

// --- PlaceOrder ---

func TestPlaceOrder_Created(t *testing.T) {
	router, carts := newTestRouter(t)
	seedCart(t, carts)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/checkout/orders", nil, true)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var envelope struct {
		Data struct {
			OrderID string `json:"order_id"`
			Amount  int64  `json:"amount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, testOrderID, envelope.Data.OrderID)
	assert.Equal(t, int64(2849), envelope.Data.Amount)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/checkout/orders", nil, true)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMPTY_CART")
}

func TestPlaceOrder_Unauthenticated(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/checkout/orders", nil, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// --- SubmitPayment ---

func TestSubmitPayment_Success(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/checkout/payments", map[string]any{
		"order_id": testOrderID,
		"amount":   2849,
		"mode":     "CARD",
	}, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"SUCCESS"`)
	assert.Contains(t, rec.Body.String(), "pay-001")
}

func TestSubmitPayment_FailedOutcomeStillReturns200(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/checkout/payments", map[string]any{
		"order_id": testOrderID,
		"amount":   2849,
		"mode":     "UPI",
	}, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"FAILED"`)
	assert.Contains(t, rec.Body.String(), "upstream timeout")
}

func TestSubmitPayment_InvalidMode(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/checkout/payments", map[string]any{
		"order_id": testOrderID,
		"amount":   2849,
		"mode":     "BITCOIN",
	}, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "BITCOIN")
}

func TestSubmitPayment_ValidationError(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/checkout/payments", map[string]any{
		"amount": 0,
	}, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}
