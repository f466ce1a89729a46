package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/order/domain"
	pkgkafka "github.com/rohanbadgujar20011/food-delivery-app/pkg/kafka"
)

// Kafka topic constants for order domain events.
const (
	TopicOrderCreated       = "fooddelivery.order.created"
	TopicOrderStatusChanged = "fooddelivery.order.status_changed"
	TopicOrderCancelled     = "fooddelivery.order.cancelled"
)

// Aggregate type constant.
const AggregateTypeOrder = "order"

// Source identifier for events originating from the order component.
const SourceOrderService = "order-service"

// OrderCreatedData is the payload for an order.created event.
type OrderCreatedData struct {
	OrderID        string          `json:"order_id"`
	UserID         string          `json:"user_id"`
	RestaurantID   string          `json:"restaurant_id"`
	Status         string          `json:"status"`
	Items          []OrderItemData `json:"items"`
	SubtotalAmount int64           `json:"subtotal_amount"`
	DeliveryFee    int64           `json:"delivery_fee"`
	TotalAmount    int64           `json:"total_amount"`
}

// OrderItemData is the item payload within order events.
type OrderItemData struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Quantity   int    `json:"quantity"`
}

// OrderStatusChangedData is the payload for an order.status_changed event.
type OrderStatusChangedData struct {
	OrderID   string `json:"order_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// OrderCancelledData is the payload for an order.cancelled event.
type OrderCancelledData struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// Producer publishes order domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the order component.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishOrderCreated publishes an order.created event.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	items := make([]OrderItemData, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemData{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
		}
	}

	data := OrderCreatedData{
		OrderID:        order.ID,
		UserID:         order.UserID,
		RestaurantID:   order.RestaurantID,
		Status:         order.Status,
		Items:          items,
		SubtotalAmount: order.SubtotalAmount,
		DeliveryFee:    order.DeliveryFee,
		TotalAmount:    order.TotalAmount,
	}

	event, err := pkgkafka.NewEvent(TopicOrderCreated, order.ID, AggregateTypeOrder, SourceOrderService, data)
	if err != nil {
		return fmt.Errorf("create order.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderCreated, event); err != nil {
		return fmt.Errorf("publish order.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.created event",
		slog.String("order_id", order.ID),
		slog.Int64("total_amount", order.TotalAmount),
	)

	return nil
}

// PublishOrderStatusChanged publishes an order.status_changed event.
func (p *Producer) PublishOrderStatusChanged(ctx context.Context, orderID, oldStatus, newStatus string) error {
	data := OrderStatusChangedData{
		OrderID:   orderID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}

	event, err := pkgkafka.NewEvent(TopicOrderStatusChanged, orderID, AggregateTypeOrder, SourceOrderService, data)
	if err != nil {
		return fmt.Errorf("create order.status_changed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderStatusChanged, event); err != nil {
		return fmt.Errorf("publish order.status_changed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.status_changed event",
		slog.String("order_id", orderID),
		slog.String("new_status", newStatus),
	)

	return nil
}

// PublishOrderCancelled publishes an order.cancelled event.
func (p *Producer) PublishOrderCancelled(ctx context.Context, orderID, reason string) error {
	data := OrderCancelledData{OrderID: orderID, Reason: reason}

	event, err := pkgkafka.NewEvent(TopicOrderCancelled, orderID, AggregateTypeOrder, SourceOrderService, data)
	if err != nil {
		return fmt.Errorf("create order.cancelled event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderCancelled, event); err != nil {
		return fmt.Errorf("publish order.cancelled event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.cancelled event",
		slog.String("order_id", orderID),
	)

	return nil
}
