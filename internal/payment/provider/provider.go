package provider

import "context"

// ChargeInput holds the parameters for charging a payment.
type ChargeInput struct {
	OrderID     string
	Amount      int64
	Mode        string
	Description string
}

// ChargeResult holds the result of a charge operation from the payment provider.
type ChargeResult struct {
	ProviderPaymentID string
	Status            string // "succeeded" or "failed"
	FailureReason     string
}

// Charge outcome status values.
const (
	ChargeStatusSucceeded = "succeeded"
	ChargeStatusFailed    = "failed"
)

// Provider defines the interface for payment provider integrations.
type Provider interface {
	// Name returns the provider name (e.g., "mock", "razorpay").
	Name() string

	// Charge processes a payment charge through the provider.
	Charge(ctx context.Context, input *ChargeInput) (*ChargeResult, error)
}
