package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/menu/domain"
	"github.com/rohanbadgujar20011/food-delivery-app/internal/menu/repository"
	apperrors "github.com/rohanbadgujar20011/food-delivery-app/pkg/errors"
)

// MaxPriceCents is the maximum price in cents (10,000.00) a menu item may carry.
const MaxPriceCents = 10_000_00

// MenuService implements the business logic for menu operations.
type MenuService struct {
	repo   repository.MenuRepository
	logger *slog.Logger
}

// NewMenuService creates a new menu service.
func NewMenuService(repo repository.MenuRepository, logger *slog.Logger) *MenuService {
	return &MenuService{
		repo:   repo,
		logger: logger,
	}
}

// CreateMenuItemInput holds the parameters for creating a menu item.
type CreateMenuItemInput struct {
	RestaurantID string
	Name         string
	Description  string
	Price        int64
	ImageURL     string
	Category     string
	Available    *bool
}

// UpdateMenuItemInput holds the parameters for updating a menu item. Nil
// fields are left unchanged.
type UpdateMenuItemInput struct {
	Name        *string
	Description *string
	Price       *int64
	ImageURL    *string
	Category    *string
	Available   *bool
}

// CreateMenuItem creates a new menu item.
func (s *MenuService) CreateMenuItem(ctx context.Context, input *CreateMenuItemInput) (*domain.MenuItem, error) {
	if input.RestaurantID == "" {
		return nil, apperrors.InvalidInput("restaurant id is required")
	}
	if input.Name == "" {
		return nil, apperrors.InvalidInput("menu item name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}
	if input.Price > MaxPriceCents {
		return nil, apperrors.InvalidInput(fmt.Sprintf("price must not exceed %d cents", MaxPriceCents))
	}

	now := time.Now().UTC()
	item := &domain.MenuItem{
		RestaurantID: input.RestaurantID,
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		ImageURL:     input.ImageURL,
		Category:     input.Category,
		Available:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if input.Available != nil {
		item.Available = *input.Available
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}

	s.logger.InfoContext(ctx, "menu item created",
		slog.String("menu_item_id", item.ID),
		slog.String("restaurant_id", item.RestaurantID),
	)

	return item, nil
}

// GetMenuItem retrieves a menu item by its ID.
func (s *MenuService) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get menu item by id: %w", err)
	}
	return item, nil
}

// ListMenuItems returns menu items matching the filter.
func (s *MenuService) ListMenuItems(ctx context.Context, filter domain.ListFilter) ([]*domain.MenuItem, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

// UpdateMenuItem applies the non-nil fields of the input to an existing
// menu item.
func (s *MenuService) UpdateMenuItem(ctx context.Context, id string, input *UpdateMenuItemInput) (*domain.MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get menu item by id: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("menu item name must not be empty")
		}
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperrors.InvalidInput("price must not be negative")
		}
		if *input.Price > MaxPriceCents {
			return nil, apperrors.InvalidInput(fmt.Sprintf("price must not exceed %d cents", MaxPriceCents))
		}
		item.Price = *input.Price
	}
	if input.ImageURL != nil {
		item.ImageURL = *input.ImageURL
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Available != nil {
		item.Available = *input.Available
	}

	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update menu item: %w", err)
	}

	s.logger.InfoContext(ctx, "menu item updated",
		slog.String("menu_item_id", item.ID),
	)

	return item, nil
}

// DeleteMenuItem removes a menu item by its ID.
func (s *MenuService) DeleteMenuItem(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}

	s.logger.InfoContext(ctx, "menu item deleted",
		slog.String("menu_item_id", id),
	)

	return nil
}
