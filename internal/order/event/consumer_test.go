package event

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/order/domain"
	paymentevent "github.com/rohanbadgujar20011/food-delivery-app/internal/payment/event"
	apperrors "github.com/rohanbadgujar20011/food-delivery-app/pkg/errors"
	pkgkafka "github.com/rohanbadgujar20011/food-delivery-app/pkg/kafka"
)

type mockOrderConfirmer struct {
	mock.Mock
}

func (m *mockOrderConfirmer) MarkOrderPaid(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func paymentSucceededEvent(t *testing.T, orderID string) *pkgkafka.Event {
	t.Helper()
	event, err := pkgkafka.NewEvent(
		paymentevent.TopicPaymentSucceeded,
		"pay-1",
		paymentevent.AggregateTypePayment,
		paymentevent.SourcePaymentService,
		paymentevent.PaymentResultData{
			PaymentID: "pay-1",
			OrderID:   orderID,
			UserID:    "user-1",
			Amount:    2849,
			Mode:      "UPI",
			Status:    "SUCCESS",
		},
	)
	require.NoError(t, err)
	return event
}

func TestPaymentSucceededHandler_ConfirmsOrder(t *testing.T) {
	orders := new(mockOrderConfirmer)
	orders.On("MarkOrderPaid", mock.Anything, "order-1").
		Return(&domain.Order{ID: "order-1", Status: domain.OrderStatusConfirmed}, nil)

	handler := PaymentSucceededHandler(orders, testLogger())
	err := handler(context.Background(), paymentSucceededEvent(t, "order-1"))

	require.NoError(t, err)
	orders.AssertCalled(t, "MarkOrderPaid", mock.Anything, "order-1")
}

func TestPaymentSucceededHandler_MissingOrderID(t *testing.T) {
	orders := new(mockOrderConfirmer)

	handler := PaymentSucceededHandler(orders, testLogger())
	err := handler(context.Background(), paymentSucceededEvent(t, ""))

	require.Error(t, err)
	orders.AssertNotCalled(t, "MarkOrderPaid", mock.Anything, mock.Anything)
}

func TestPaymentSucceededHandler_UnknownOrderIsSkipped(t *testing.T) {
	orders := new(mockOrderConfirmer)
	orders.On("MarkOrderPaid", mock.Anything, "order-gone").
		Return(nil, apperrors.NotFound("order", "order-gone"))

	handler := PaymentSucceededHandler(orders, testLogger())
	err := handler(context.Background(), paymentSucceededEvent(t, "order-gone"))

	// Redelivery cannot resolve a missing order, so the event is consumed.
	require.NoError(t, err)
}

func TestPaymentSucceededHandler_TransientErrorPropagates(t *testing.T) {
	orders := new(mockOrderConfirmer)
	orders.On("MarkOrderPaid", mock.Anything, "order-1").
		Return(nil, errors.New("connection refused"))

	handler := PaymentSucceededHandler(orders, testLogger())
	err := handler(context.Background(), paymentSucceededEvent(t, "order-1"))

	require.Error(t, err)
}

func TestPaymentSucceededHandler_UndecodablePayload(t *testing.T) {
	orders := new(mockOrderConfirmer)

	event := paymentSucceededEvent(t, "order-1")
	event.Data = json.RawMessage(`"not an object"`)

	handler := PaymentSucceededHandler(orders, testLogger())
	err := handler(context.Background(), event)

	require.Error(t, err)
	orders.AssertNotCalled(t, "MarkOrderPaid", mock.Anything, mock.Anything)
}
