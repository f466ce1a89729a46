package mock

import (
	"context"

	"github.com/google/uuid"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/payment/provider"
)

// Decider inspects a charge and decides whether it should be declined.
// It returns true plus a failure reason to decline.
type Decider func(input *provider.ChargeInput) (decline bool, reason string)

// Provider is a mock payment provider for development and testing. Charges
// succeed deterministically unless a Decider is installed.
type Provider struct {
	decider Decider
}

// NewProvider creates a new mock payment provider that always succeeds.
func NewProvider() *Provider {
	return &Provider{}
}

// NewProviderWithDecider creates a mock provider whose charges are declined
// whenever the decider says so.
func NewProviderWithDecider(decider Decider) *Provider {
	return &Provider{decider: decider}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "mock"
}

// Charge simulates a payment charge.
func (p *Provider) Charge(_ context.Context, input *provider.ChargeInput) (*provider.ChargeResult, error) {
	if p.decider != nil {
		if decline, reason := p.decider(input); decline {
			return &provider.ChargeResult{
				ProviderPaymentID: "mock_pay_" + uuid.New().String(),
				Status:            provider.ChargeStatusFailed,
				FailureReason:     reason,
			}, nil
		}
	}

	return &provider.ChargeResult{
		ProviderPaymentID: "mock_pay_" + uuid.New().String(),
		Status:            provider.ChargeStatusSucceeded,
	}, nil
}
