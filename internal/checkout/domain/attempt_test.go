package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttempt_HappyPath(t *testing.T) {
	attempt := NewAttempt()
	assert.Equal(t, StateAwaitingOrder, attempt.State)

	attempt.BindOrder("order-1", 2849)
	assert.Equal(t, StateCollectingMethod, attempt.State)
	assert.Equal(t, int64(2849), attempt.Amount)

	attempt.BeginSubmission()
	assert.Equal(t, StateSubmitting, attempt.State)
	assert.Equal(t, OutcomePending, attempt.Outcome.Status)

	attempt.Resolve(&PaymentOutcome{Status: OutcomeSuccess, PaymentID: "pay-1"})
	assert.Equal(t, StateResolved, attempt.State)
	assert.Equal(t, "pay-1", attempt.Outcome.PaymentID)
}

func TestAttempt_FailedPaymentReturnsToMethodCollection(t *testing.T) {
	attempt := NewAttempt()
	attempt.BindOrder("order-1", 2849)
	attempt.BeginSubmission()

	attempt.Resolve(&PaymentOutcome{Status: OutcomeFailed, Message: "declined"})
	assert.Equal(t, StateCollectingMethod, attempt.State)

	// A fresh submission after a decline can still resolve.
	attempt.BeginSubmission()
	attempt.Resolve(&PaymentOutcome{Status: OutcomeSuccess, PaymentID: "pay-2"})
	assert.Equal(t, StateResolved, attempt.State)
}
