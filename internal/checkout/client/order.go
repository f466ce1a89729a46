package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rohanbadgujar20011/food-delivery-app/pkg/httpclient"
)

// Doer executes an HTTP request. Both httpclient.Client and
// httpclient.CircuitBreakerClient satisfy it.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// OrderItem is one line of an order creation request.
type OrderItem struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Quantity   int    `json:"quantity"`
}

// CreateOrderRequest is the JSON body sent to the order endpoint.
type CreateOrderRequest struct {
	UserID       string      `json:"user_id"`
	RestaurantID string      `json:"restaurant_id"`
	Items        []OrderItem `json:"items"`
}

// OrderSummary is the slice of the order endpoint's response the checkout
// flow cares about. TotalAmount is a pointer so an omitted field is
// distinguishable from a legitimately zero total.
type OrderSummary struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	TotalAmount *int64 `json:"total_amount"`
}

// OrderClient calls the order service over HTTP.
type OrderClient struct {
	http    Doer
	baseURL string
}

// NewOrderClient creates an order service client. baseURL is the service
// root, e.g. "http://localhost:8080".
func NewOrderClient(doer Doer, baseURL string) *OrderClient {
	return &OrderClient{http: doer, baseURL: baseURL}
}

// CreateOrder submits an order. The idempotency key is forwarded in the
// Idempotency-Key header so a resubmission after a lost ack returns the
// already-created order instead of a duplicate.
func (c *OrderClient) CreateOrder(ctx context.Context, reqBody *CreateOrderRequest, idempotencyKey string) (*OrderSummary, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call order service: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.ParseResponseError(resp, "order service")
	}
	defer func() { _ = resp.Body.Close() }()

	var envelope struct {
		Data OrderSummary `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	if envelope.Data.ID == "" {
		return nil, fmt.Errorf("order service returned no order id")
	}

	return &envelope.Data, nil
}
