package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/cart/domain"
	"github.com/rohanbadgujar20011/food-delivery-app/internal/cart/event"
	"github.com/rohanbadgujar20011/food-delivery-app/internal/cart/repository"
	apperrors "github.com/rohanbadgujar20011/food-delivery-app/pkg/errors"
)

// Cart operation upper-bound limits to prevent abuse.
const (
	// MaxQuantityPerItem is the maximum quantity allowed for a single line item.
	MaxQuantityPerItem = 100
	// MaxItemsPerCart is the maximum number of distinct line items allowed in a cart.
	MaxItemsPerCart = 50
	// MaxPriceCents is the maximum unit price in cents (10,000.00) allowed per item.
	MaxPriceCents = 10_000_00
)

// AddItemInput holds the parameters for adding a menu item to the cart.
type AddItemInput struct {
	MenuItemID   string `json:"menu_item_id" validate:"required"`
	RestaurantID string `json:"restaurant_id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	UnitPrice    int64  `json:"unit_price" validate:"gte=0"`
	ImageURL     string `json:"image_url"`
}

// CartService implements the business logic for cart operations. Every
// mutation completes its repository write before returning, so a reload
// observes the mutated cart.
type CartService struct {
	repo     repository.CartRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartService creates a new cart service. The producer may be nil, in
// which case no events are published.
func NewCartService(repo repository.CartRepository, producer *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// GetCart retrieves the cart for a user. If no cart is stored, returns an
// empty cart rather than an error.
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(userID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// AddItem adds a menu item to the user's cart. If the item is already
// present its quantity is incremented by one; otherwise a new line item with
// quantity one is inserted. The cart binds to the restaurant of its first
// item: adding an item from a different restaurant is rejected with a
// conflict, and the caller must clear the cart first.
func (s *CartService) AddItem(ctx context.Context, userID string, input AddItemInput) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if input.MenuItemID == "" {
		return nil, apperrors.InvalidInput("menu item id is required")
	}
	if input.RestaurantID == "" {
		return nil, apperrors.InvalidInput("restaurant id is required")
	}
	if input.UnitPrice < 0 {
		return nil, apperrors.InvalidInput("unit price must not be negative")
	}
	if input.UnitPrice > MaxPriceCents {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unit price must not exceed %d cents", MaxPriceCents))
	}

	cart, err := s.getOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if cart.RestaurantID == "" {
		cart.RestaurantID = input.RestaurantID
	} else if cart.RestaurantID != input.RestaurantID {
		return nil, apperrors.Conflict("cart contains items from another restaurant; clear the cart first")
	}

	if idx := cart.FindItemIndex(input.MenuItemID); idx >= 0 {
		if cart.Items[idx].Quantity+1 > MaxQuantityPerItem {
			return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
		}
		cart.Items[idx].Quantity++
		// Refresh display fields in case the menu item changed.
		cart.Items[idx].Name = input.Name
		cart.Items[idx].Description = input.Description
		cart.Items[idx].UnitPrice = input.UnitPrice
		cart.Items[idx].ImageURL = input.ImageURL
	} else {
		if len(cart.Items) >= MaxItemsPerCart {
			return nil, apperrors.InvalidInput(fmt.Sprintf("cart must not contain more than %d items", MaxItemsPerCart))
		}
		cart.Items = append(cart.Items, domain.LineItem{
			MenuItemID:  input.MenuItemID,
			Name:        input.Name,
			Description: input.Description,
			UnitPrice:   input.UnitPrice,
			Quantity:    1,
			ImageURL:    input.ImageURL,
		})
	}

	if err := s.saveAndPublish(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("user_id", userID),
		slog.String("menu_item_id", input.MenuItemID),
		slog.String("restaurant_id", cart.RestaurantID),
	)

	return cart, nil
}

// DecrementItem decreases the quantity of a line item by one. When the
// quantity reaches zero the line item is removed. Decrementing an item that
// is not in the cart is a no-op and triggers no store write.
func (s *CartService) DecrementItem(ctx context.Context, userID, menuItemID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if menuItemID == "" {
		return nil, apperrors.InvalidInput("menu item id is required")
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItemIndex(menuItemID)
	if idx < 0 {
		return cart, nil
	}

	cart.Items[idx].Quantity--
	if cart.Items[idx].Quantity <= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	}
	s.unbindIfEmpty(cart)

	if err := s.saveAndPublish(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart item decremented",
		slog.String("user_id", userID),
		slog.String("menu_item_id", menuItemID),
	)

	return cart, nil
}

// RemoveItem removes a line item from the cart entirely, regardless of its
// quantity. Removing an item that is not in the cart is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, menuItemID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if menuItemID == "" {
		return nil, apperrors.InvalidInput("menu item id is required")
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItemIndex(menuItemID)
	if idx < 0 {
		return cart, nil
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	s.unbindIfEmpty(cart)

	if err := s.saveAndPublish(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("user_id", userID),
		slog.String("menu_item_id", menuItemID),
	)

	return cart, nil
}

// SetQuantity sets the quantity of a line item directly. A quantity of zero
// or less removes the line item. Setting a positive quantity on an item that
// is not in the cart returns a not-found error.
func (s *CartService) SetQuantity(ctx context.Context, userID, menuItemID string, quantity int) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if menuItemID == "" {
		return nil, apperrors.InvalidInput("menu item id is required")
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, menuItemID)
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItemIndex(menuItemID)
	if idx < 0 {
		return nil, apperrors.NotFound("cart item", menuItemID)
	}

	cart.Items[idx].Quantity = quantity

	if err := s.saveAndPublish(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart item quantity set",
		slog.String("user_id", userID),
		slog.String("menu_item_id", menuItemID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// Clear empties the cart and removes it from the store.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	if s.producer != nil {
		if err := s.producer.PublishCartCleared(ctx, userID); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("user_id", userID),
	)

	return nil
}

// getOrCreateCart retrieves the cart for a user, creating an empty one if it
// does not exist.
func (s *CartService) getOrCreateCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(userID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// saveAndPublish persists the cart and publishes a cart.updated event. The
// store write is synchronous; event publishing is best-effort.
func (s *CartService) saveAndPublish(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}

	if s.producer != nil {
		if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
				slog.String("user_id", cart.UserID),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

// unbindIfEmpty clears the restaurant binding once the last line item is
// removed, so the next add may come from any restaurant.
func (s *CartService) unbindIfEmpty(cart *domain.Cart) {
	if cart.IsEmpty() {
		cart.RestaurantID = ""
	}
}

// newEmptyCart creates a new empty cart for the given user.
func (s *CartService) newEmptyCart(userID string) *domain.Cart {
	return &domain.Cart{
		UserID:    userID,
		Items:     []domain.LineItem{},
		UpdatedAt: time.Now().UTC(),
	}
}
