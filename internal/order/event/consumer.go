package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/order/domain"
	paymentevent "github.com/rohanbadgujar20011/food-delivery-app/internal/payment/event"
	apperrors "github.com/rohanbadgujar20011/food-delivery-app/pkg/errors"
	pkgkafka "github.com/rohanbadgujar20011/food-delivery-app/pkg/kafka"
)

// Consumer group for the order component's subscriptions.
const ConsumerGroupOrder = "order-service"

// OrderConfirmer is the slice of the order service the payment subscription
// needs.
type OrderConfirmer interface {
	MarkOrderPaid(ctx context.Context, id string) (*domain.Order, error)
}

// PaymentSucceededHandler confirms an order when its payment succeeds.
// Returns a pkgkafka.Handler for a consumer subscribed to the
// payment.succeeded topic.
func PaymentSucceededHandler(orders OrderConfirmer, logger *slog.Logger) pkgkafka.Handler {
	return func(ctx context.Context, event *pkgkafka.Event) error {
		var data paymentevent.PaymentResultData
		if err := event.UnmarshalData(&data); err != nil {
			return fmt.Errorf("decode payment.succeeded payload: %w", err)
		}
		if data.OrderID == "" {
			return errors.New("payment.succeeded event without order_id")
		}

		order, err := orders.MarkOrderPaid(ctx, data.OrderID)
		if err != nil {
			// A missing order is not retryable; redelivering the event
			// cannot make it appear.
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.WarnContext(ctx, "payment.succeeded for unknown order, skipping",
					slog.String("order_id", data.OrderID),
					slog.String("payment_id", data.PaymentID),
				)
				return nil
			}
			return fmt.Errorf("confirm order %s: %w", data.OrderID, err)
		}

		logger.InfoContext(ctx, "order confirmed after payment",
			slog.String("order_id", order.ID),
			slog.String("payment_id", data.PaymentID),
			slog.String("status", order.Status),
		)
		return nil
	}
}
