package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/payment/domain"
	pkgkafka "github.com/rohanbadgujar20011/food-delivery-app/pkg/kafka"
)

// Kafka topic constants for payment domain events.
const (
	TopicPaymentSucceeded = "fooddelivery.payment.succeeded"
	TopicPaymentFailed    = "fooddelivery.payment.failed"
)

// Aggregate type constant.
const AggregateTypePayment = "payment"

// Source identifier for events originating from the payment component.
const SourcePaymentService = "payment-service"

// PaymentResultData is the payload for payment.succeeded and payment.failed
// events.
type PaymentResultData struct {
	PaymentID     string `json:"payment_id"`
	OrderID       string `json:"order_id"`
	UserID        string `json:"user_id"`
	Amount        int64  `json:"amount"`
	Mode          string `json:"mode"`
	Status        string `json:"status"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// Producer publishes payment domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the payment component.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishPaymentResult publishes a payment.succeeded or payment.failed event
// depending on the payment's final status.
func (p *Producer) PublishPaymentResult(ctx context.Context, payment *domain.Payment) error {
	topic := TopicPaymentSucceeded
	if payment.Status == domain.PaymentStatusFailed {
		topic = TopicPaymentFailed
	}

	data := PaymentResultData{
		PaymentID:     payment.ID,
		OrderID:       payment.OrderID,
		UserID:        payment.UserID,
		Amount:        payment.Amount,
		Mode:          payment.Mode,
		Status:        payment.Status,
		FailureReason: payment.FailureReason,
	}

	event, err := pkgkafka.NewEvent(topic, payment.ID, AggregateTypePayment, SourcePaymentService, data)
	if err != nil {
		return fmt.Errorf("create payment result event: %w", err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish payment result event: %w", err)
	}

	p.logger.DebugContext(ctx, "published payment result event",
		slog.String("payment_id", payment.ID),
		slog.String("status", payment.Status),
	)

	return nil
}
