package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/order/domain"
	"github.com/rohanbadgujar20011/food-delivery-app/internal/order/event"
	"github.com/rohanbadgujar20011/food-delivery-app/internal/order/repository"
	apperrors "github.com/rohanbadgujar20011/food-delivery-app/pkg/errors"
)

// OrderService implements the business logic for order operations.
type OrderService struct {
	repo     repository.OrderRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewOrderService creates a new order service. The producer may be nil, in
// which case no events are published.
func NewOrderService(repo repository.OrderRepository, producer *event.Producer, logger *slog.Logger) *OrderService {
	return &OrderService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// CreateOrderItemInput holds the parameters for an order line item.
type CreateOrderItemInput struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Quantity   int    `json:"quantity"`
}

// CreateOrderInput holds the parameters for creating an order.
type CreateOrderInput struct {
	UserID         string
	RestaurantID   string
	Items          []CreateOrderItemInput
	IdempotencyKey string
}

// CreateOrder creates a new order from the given input. The total is
// computed server-side as the item subtotal plus the flat delivery fee; any
// amount the client may claim is ignored. When an idempotency key is
// supplied and the user already created an order with that key, the
// previously created order is returned instead of creating a duplicate.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if input.UserID == "" {
		return nil, apperrors.InvalidInput("user_id is required")
	}
	if input.RestaurantID == "" {
		return nil, apperrors.InvalidInput("restaurant_id is required")
	}
	if len(input.Items) == 0 {
		return nil, apperrors.InvalidInput("order must contain at least one item")
	}
	for _, item := range input.Items {
		if item.MenuItemID == "" {
			return nil, apperrors.InvalidInput("menu_item_id is required on every item")
		}
		if item.Quantity <= 0 {
			return nil, apperrors.InvalidInput("item quantity must be positive")
		}
		if item.Price < 0 {
			return nil, apperrors.InvalidInput("item price must not be negative")
		}
	}

	if input.IdempotencyKey != "" {
		existing, err := s.repo.GetByIdempotencyKey(ctx, input.UserID, input.IdempotencyKey)
		if err == nil {
			s.logger.InfoContext(ctx, "idempotent order replay",
				slog.String("order_id", existing.ID),
				slog.String("idempotency_key", input.IdempotencyKey),
			)
			return existing, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("lookup order by idempotency key: %w", err)
		}
	}

	now := time.Now().UTC()
	orderID := uuid.New().String()

	var subtotal int64
	items := make([]domain.OrderItem, len(input.Items))
	for i, itemInput := range input.Items {
		items[i] = domain.OrderItem{
			ID:         uuid.New().String(),
			OrderID:    orderID,
			MenuItemID: itemInput.MenuItemID,
			Name:       itemInput.Name,
			Price:      itemInput.Price,
			Quantity:   itemInput.Quantity,
		}
		subtotal += items[i].LineTotal()
	}

	order := &domain.Order{
		ID:             orderID,
		UserID:         input.UserID,
		RestaurantID:   input.RestaurantID,
		Status:         domain.OrderStatusPending,
		Items:          items,
		SubtotalAmount: subtotal,
		DeliveryFee:    domain.DeliveryFeeCents,
		TotalAmount:    subtotal + domain.DeliveryFeeCents,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if s.producer != nil {
		if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish order.created event",
				slog.String("order_id", order.ID),
				slog.String("error", err.Error()),
			)
			// Do not fail the operation if event publishing fails.
		}
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
		slog.String("restaurant_id", order.RestaurantID),
		slog.Int64("total_amount", order.TotalAmount),
	)

	return order, nil
}

// GetOrder retrieves an order by its ID.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	return order, nil
}

// ListOrders returns a filtered, paginated list of orders.
func (s *OrderService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 20
	}
	if filter.PerPage > 100 {
		filter.PerPage = 100
	}

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}

	return orders, total, nil
}

// UpdateOrderStatus transitions the order to a new status with validation.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id string, newStatus string, reason string) (*domain.Order, error) {
	if !domain.IsValidStatus(newStatus) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid status %q, must be one of: %s", newStatus, strings.Join(domain.ValidStatuses(), ", ")))
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order for status update: %w", err)
	}

	if !order.CanTransitionTo(newStatus) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("cannot transition from %q to %q", order.Status, newStatus))
	}

	oldStatus := order.Status

	if err := s.repo.UpdateStatus(ctx, id, newStatus, reason); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	if s.producer != nil {
		if err := s.producer.PublishOrderStatusChanged(ctx, id, oldStatus, newStatus); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish order.status_changed event",
				slog.String("order_id", id),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", id),
		slog.String("old_status", oldStatus),
		slog.String("new_status", newStatus),
	)

	order.Status = newStatus
	if reason != "" {
		order.CancelReason = reason
	}

	return order, nil
}

// CancelOrder cancels an order with a reason, validating the transition.
func (s *OrderService) CancelOrder(ctx context.Context, id string, reason string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order for cancel: %w", err)
	}

	if !order.CanTransitionTo(domain.OrderStatusCancelled) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("cannot cancel order in %q status", order.Status))
	}

	if err := s.repo.UpdateStatus(ctx, id, domain.OrderStatusCancelled, reason); err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}

	if s.producer != nil {
		if err := s.producer.PublishOrderCancelled(ctx, id, reason); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish order.cancelled event",
				slog.String("order_id", id),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "order cancelled",
		slog.String("order_id", id),
		slog.String("reason", reason),
	)

	order.Status = domain.OrderStatusCancelled
	order.CancelReason = reason

	return order, nil
}

// MarkOrderPaid confirms a pending order after a successful payment. An
// already-confirmed order is returned as is so redelivered payment events
// are harmless.
func (s *OrderService) MarkOrderPaid(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order for confirmation: %w", err)
	}
	if order.Status == domain.OrderStatusConfirmed {
		return order, nil
	}
	return s.UpdateOrderStatus(ctx, id, domain.OrderStatusConfirmed, "")
}
