package domain

import "time"

// Payment status constants. These are wire-format values: clients receive
// them verbatim and branch on SUCCESS/FAILED.
const (
	PaymentStatusPending = "PENDING"
	PaymentStatusSuccess = "SUCCESS"
	PaymentStatusFailed  = "FAILED"
)

// Payment mode constants. The set is closed: anything else is rejected
// before a charge is attempted.
const (
	PaymentModeCard           = "CARD"
	PaymentModeUPI            = "UPI"
	PaymentModeNetBanking     = "NET_BANKING"
	PaymentModeCashOnDelivery = "CASH_ON_DELIVERY"
)

// Payment represents a single charge attempt against an order. A FAILED
// payment is terminal; a retry creates a new payment record.
type Payment struct {
	ID            string    `json:"payment_id"`
	OrderID       string    `json:"order_id"`
	UserID        string    `json:"user_id"`
	Amount        int64     `json:"amount"`
	Mode          string    `json:"mode"`
	Status        string    `json:"status"`
	ProviderName  string    `json:"provider_name"`
	ProviderPayID string    `json:"provider_payment_id,omitempty"`
	FailureReason string    `json:"failure_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidPaymentModes returns all valid payment modes.
func ValidPaymentModes() []string {
	return []string{
		PaymentModeCard,
		PaymentModeUPI,
		PaymentModeNetBanking,
		PaymentModeCashOnDelivery,
	}
}

// IsValidPaymentMode checks whether the given mode is a valid payment mode.
func IsValidPaymentMode(mode string) bool {
	for _, m := range ValidPaymentModes() {
		if m == mode {
			return true
		}
	}
	return false
}

// IsValidPaymentStatus checks whether the given status is a valid payment status.
func IsValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPending, PaymentStatusSuccess, PaymentStatusFailed:
		return true
	}
	return false
}
