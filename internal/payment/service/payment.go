package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/payment/domain"
	"github.com/rohanbadgujar20011/food-delivery-app/internal/payment/event"
	"github.com/rohanbadgujar20011/food-delivery-app/internal/payment/provider"
	"github.com/rohanbadgujar20011/food-delivery-app/internal/payment/repository"
	apperrors "github.com/rohanbadgujar20011/food-delivery-app/pkg/errors"
)

// PaymentService implements the business logic for payment operations.
type PaymentService struct {
	repo     repository.PaymentRepository
	provider provider.Provider
	producer *event.Producer
	logger   *slog.Logger
}

// NewPaymentService creates a new payment service. The producer may be nil,
// in which case no events are published.
func NewPaymentService(
	repo repository.PaymentRepository,
	prov provider.Provider,
	producer *event.Producer,
	logger *slog.Logger,
) *PaymentService {
	return &PaymentService{
		repo:     repo,
		provider: prov,
		producer: producer,
		logger:   logger,
	}
}

// SubmitPaymentInput holds the parameters for submitting a payment.
type SubmitPaymentInput struct {
	OrderID string
	UserID  string
	Amount  int64
	Mode    string
}

// SubmitPayment records a payment attempt and charges it through the
// provider in one step. The returned payment carries the final SUCCESS or
// FAILED status; a FAILED payment is terminal and a retry creates a new
// record.
func (s *PaymentService) SubmitPayment(ctx context.Context, input *SubmitPaymentInput) (*domain.Payment, error) {
	if input.OrderID == "" {
		return nil, apperrors.InvalidInput("order_id is required")
	}
	if input.Amount <= 0 {
		return nil, apperrors.InvalidInput("amount must be greater than zero")
	}
	if !domain.IsValidPaymentMode(input.Mode) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid payment mode %q", input.Mode))
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:           uuid.New().String(),
		OrderID:      input.OrderID,
		UserID:       input.UserID,
		Amount:       input.Amount,
		Mode:         input.Mode,
		Status:       domain.PaymentStatusPending,
		ProviderName: s.provider.Name(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	result, err := s.provider.Charge(ctx, &provider.ChargeInput{
		OrderID:     payment.OrderID,
		Amount:      payment.Amount,
		Mode:        payment.Mode,
		Description: fmt.Sprintf("Payment for order %s", payment.OrderID),
	})
	if err != nil {
		// Provider transport error: the charge did not happen.
		payment.Status = domain.PaymentStatusFailed
		payment.FailureReason = err.Error()
	} else {
		payment.ProviderPayID = result.ProviderPaymentID
		if result.Status == provider.ChargeStatusSucceeded {
			payment.Status = domain.PaymentStatusSuccess
		} else {
			payment.Status = domain.PaymentStatusFailed
			payment.FailureReason = result.FailureReason
		}
	}

	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("update payment result: %w", err)
	}

	if s.producer != nil {
		if err := s.producer.PublishPaymentResult(ctx, payment); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish payment result event",
				slog.String("payment_id", payment.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "payment processed",
		slog.String("payment_id", payment.ID),
		slog.String("order_id", payment.OrderID),
		slog.String("mode", payment.Mode),
		slog.String("status", payment.Status),
	)

	return payment, nil
}

// GetPayment retrieves a payment by its ID.
func (s *PaymentService) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	payment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get payment by id: %w", err)
	}
	return payment, nil
}

// ListPaymentsForOrder returns all payment attempts for an order.
func (s *PaymentService) ListPaymentsForOrder(ctx context.Context, orderID string) ([]domain.Payment, error) {
	if orderID == "" {
		return nil, apperrors.InvalidInput("order_id is required")
	}

	payments, err := s.repo.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list payments for order: %w", err)
	}

	return payments, nil
}
