package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rohanbadgujar20011/food-delivery-app/pkg/httpclient"
)

// SubmitPaymentRequest is the JSON body sent to the payment endpoint.
type SubmitPaymentRequest struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id,omitempty"`
	Amount  int64  `json:"amount"`
	Mode    string `json:"mode"`
}

// PaymentResult is the slice of the payment endpoint's response the
// checkout flow cares about.
type PaymentResult struct {
	PaymentID     string `json:"payment_id"`
	Status        string `json:"status"`
	FailureReason string `json:"failure_reason"`
}

// PaymentClient calls the payment service over HTTP.
type PaymentClient struct {
	http    Doer
	baseURL string
}

// NewPaymentClient creates a payment service client.
func NewPaymentClient(doer Doer, baseURL string) *PaymentClient {
	return &PaymentClient{http: doer, baseURL: baseURL}
}

// SubmitPayment submits a charge. The payment service reports declines in
// the response body with a 2xx status, so a returned error here means the
// request itself did not go through.
func (c *PaymentClient) SubmitPayment(ctx context.Context, reqBody *SubmitPaymentRequest) (*PaymentResult, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal payment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/payments", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call payment service: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.ParseResponseError(resp, "payment service")
	}
	defer func() { _ = resp.Body.Close() }()

	var envelope struct {
		Data PaymentResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode payment response: %w", err)
	}

	return &envelope.Data, nil
}
