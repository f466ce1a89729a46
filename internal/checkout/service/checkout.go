package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	cartdomain "github.com/rohanbadgujar20011/food-delivery-app/internal/cart/domain"
	"github.com/rohanbadgujar20011/food-delivery-app/internal/checkout/client"
	"github.com/rohanbadgujar20011/food-delivery-app/internal/checkout/domain"
	orderdomain "github.com/rohanbadgujar20011/food-delivery-app/internal/order/domain"
	paymentdomain "github.com/rohanbadgujar20011/food-delivery-app/internal/payment/domain"
	apperrors "github.com/rohanbadgujar20011/food-delivery-app/pkg/errors"
)

// CartStore is the slice of the cart service the checkout flow needs.
type CartStore interface {
	GetCart(ctx context.Context, userID string) (*cartdomain.Cart, error)
	Clear(ctx context.Context, userID string) error
}

// OrderGateway places orders against the order endpoint.
type OrderGateway interface {
	CreateOrder(ctx context.Context, req *client.CreateOrderRequest, idempotencyKey string) (*client.OrderSummary, error)
}

// PaymentGateway submits charges against the payment endpoint.
type PaymentGateway interface {
	SubmitPayment(ctx context.Context, req *client.SubmitPaymentRequest) (*client.PaymentResult, error)
}

// CheckoutService drives the order placement and payment hand-off flow.
type CheckoutService struct {
	carts    CartStore
	orders   OrderGateway
	payments PaymentGateway
	logger   *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(carts CartStore, orders OrderGateway, payments PaymentGateway, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		orders:   orders,
		payments: payments,
		logger:   logger,
	}
}

// PlaceOrder snapshots the user's cart into an order request and submits it.
// An empty cart short-circuits before any network call. On success the cart
// is cleared; on any failure the cart is left untouched so the user can
// retry.
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID string) (*domain.PlaceOrderResult, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("sign in to place an order")
	}

	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, apperrors.EmptyCart()
	}

	req := &client.CreateOrderRequest{
		UserID:       userID,
		RestaurantID: cart.RestaurantID,
		Items:        make([]client.OrderItem, 0, len(cart.Items)),
	}
	for _, item := range cart.Items {
		req.Items = append(req.Items, client.OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      item.UnitPrice,
			Quantity:   item.Quantity,
		})
	}

	// One key per attempt: resubmitting the same attempt after a lost ack
	// cannot create a duplicate order.
	idempotencyKey := uuid.New().String()

	summary, err := s.orders.CreateOrder(ctx, req, idempotencyKey)
	if err != nil {
		s.logger.ErrorContext(ctx, "order submission failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	// The server-returned total is authoritative; fall back to the local
	// computation only when the response omits the field.
	amount := cart.TotalAmount() + orderdomain.DeliveryFeeCents
	if summary.TotalAmount != nil {
		amount = *summary.TotalAmount
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		// The order exists; a stale cart is recoverable.
		s.logger.WarnContext(ctx, "failed to clear cart after order placement",
			slog.String("user_id", userID),
			slog.String("order_id", summary.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("user_id", userID),
		slog.String("order_id", summary.ID),
		slog.Int64("amount", amount),
	)

	return &domain.PlaceOrderResult{OrderID: summary.ID, Amount: amount}, nil
}

// SubmitPaymentInput holds the parameters for a payment submission.
type SubmitPaymentInput struct {
	OrderID string
	UserID  string
	Amount  int64
	Mode    string
}

// SubmitPayment validates the payment locally and hands it off to the
// payment endpoint. Remote SUCCESS and FAILED statuses are honored; any
// other status, a transport error, or an undecodable body resolves the
// attempt as FAILED with a generic message. Local validation failures are
// returned as errors without any network call.
func (s *CheckoutService) SubmitPayment(ctx context.Context, input *SubmitPaymentInput) (*domain.PaymentOutcome, error) {
	if input.OrderID == "" {
		return nil, apperrors.InvalidInput("an order must be placed before paying")
	}
	if input.Amount <= 0 {
		return nil, apperrors.InvalidInput("amount must be greater than zero")
	}
	if !paymentdomain.IsValidPaymentMode(input.Mode) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid payment mode %q", input.Mode))
	}

	attempt := domain.NewAttempt()
	attempt.BindOrder(input.OrderID, input.Amount)
	attempt.BeginSubmission()

	result, err := s.payments.SubmitPayment(ctx, &client.SubmitPaymentRequest{
		OrderID: input.OrderID,
		UserID:  input.UserID,
		Amount:  input.Amount,
		Mode:    input.Mode,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "payment submission failed",
			slog.String("order_id", input.OrderID),
			slog.String("error", err.Error()),
		)
		outcome := &domain.PaymentOutcome{
			Status:  domain.OutcomeFailed,
			Message: "payment could not be processed, please try again",
		}
		attempt.Resolve(outcome)
		return outcome, nil
	}

	outcome := s.interpretResult(result)
	attempt.Resolve(outcome)

	s.logger.InfoContext(ctx, "payment resolved",
		slog.String("order_id", input.OrderID),
		slog.String("status", outcome.Status),
		slog.String("attempt_state", attempt.State),
	)

	return outcome, nil
}

func (s *CheckoutService) interpretResult(result *client.PaymentResult) *domain.PaymentOutcome {
	switch result.Status {
	case domain.OutcomeSuccess:
		return &domain.PaymentOutcome{
			Status:    domain.OutcomeSuccess,
			PaymentID: result.PaymentID,
		}
	case domain.OutcomeFailed:
		message := result.FailureReason
		if message == "" {
			message = "payment was declined"
		}
		return &domain.PaymentOutcome{
			Status:    domain.OutcomeFailed,
			PaymentID: result.PaymentID,
			Message:   message,
		}
	default:
		return &domain.PaymentOutcome{
			Status:  domain.OutcomeFailed,
			Message: "payment could not be processed, please try again",
		}
	}
}
