package domain

import "time"

// Payment outcome values for a checkout attempt. PENDING means a submission
// is in flight and no resolution has arrived yet.
const (
	OutcomePending = "PENDING"
	OutcomeSuccess = "SUCCESS"
	OutcomeFailed  = "FAILED"
)

// Attempt states. A failed payment returns the attempt to
// StateCollectingMethod so the user can pick a mode and resubmit.
const (
	StateAwaitingOrder    = "AWAITING_ORDER"
	StateCollectingMethod = "COLLECTING_METHOD"
	StateSubmitting       = "SUBMITTING"
	StateResolved         = "RESOLVED"
)

// PlaceOrderResult is the outcome of a successful order placement.
type PlaceOrderResult struct {
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
}

// PaymentOutcome is the resolution of a payment submission.
type PaymentOutcome struct {
	Status    string `json:"status"`
	PaymentID string `json:"payment_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Attempt tracks one checkout flow from order placement through payment
// resolution.
type Attempt struct {
	State     string          `json:"state"`
	OrderID   string          `json:"order_id,omitempty"`
	Amount    int64           `json:"amount,omitempty"`
	Outcome   *PaymentOutcome `json:"outcome,omitempty"`
	StartedAt time.Time       `json:"started_at"`
}

// NewAttempt starts a checkout attempt with no order context.
func NewAttempt() *Attempt {
	return &Attempt{
		State:     StateAwaitingOrder,
		StartedAt: time.Now().UTC(),
	}
}

// BindOrder attaches the placed order and moves the attempt to method
// collection.
func (a *Attempt) BindOrder(orderID string, amount int64) {
	a.OrderID = orderID
	a.Amount = amount
	a.State = StateCollectingMethod
}

// BeginSubmission marks a payment submission as in flight.
func (a *Attempt) BeginSubmission() {
	a.State = StateSubmitting
	a.Outcome = &PaymentOutcome{Status: OutcomePending}
}

// Resolve records the payment outcome. A failed payment is terminal for the
// submission but not for the attempt: the state returns to method collection
// so a fresh submission can be made.
func (a *Attempt) Resolve(outcome *PaymentOutcome) {
	a.Outcome = outcome
	if outcome.Status == OutcomeFailed {
		a.State = StateCollectingMethod
		return
	}
	a.State = StateResolved
}
