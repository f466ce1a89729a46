package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/cart/service"
	apperrors "github.com/rohanbadgujar20011/food-delivery-app/pkg/errors"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/httputil"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/middleware"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		logger:  logger,
	}
}

// Routes registers the cart endpoints on the given router.
func (h *CartHandler) Routes(r chi.Router) {
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.UserIDFromHeader)

	r.Get("/", h.GetCart)
	r.Delete("/", h.ClearCart)

	r.Post("/items", h.AddItem)
	r.Put("/items/{menuItemId}", h.SetQuantity)
	r.Post("/items/{menuItemId}/decrement", h.DecrementItem)
	r.Delete("/items/{menuItemId}", h.RemoveItem)
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding a menu item to the cart.
type AddItemRequest struct {
	MenuItemID   string `json:"menu_item_id" validate:"required"`
	RestaurantID string `json:"restaurant_id" validate:"required"`
	Name         string `json:"name" validate:"required,min=1,max=500"`
	Description  string `json:"description" validate:"max=2000"`
	UnitPrice    int64  `json:"unit_price" validate:"gte=0"`
	ImageURL     string `json:"image_url"`
}

// SetQuantityRequest is the JSON request body for setting an item's quantity.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	cart, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, cart)
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	cart, err := h.service.AddItem(r.Context(), userID, service.AddItemInput{
		MenuItemID:   req.MenuItemID,
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  req.Description,
		UnitPrice:    req.UnitPrice,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, cart)
}

// SetQuantity handles PUT /api/v1/cart/items/{menuItemId}
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	menuItemID := chi.URLParam(r, "menuItemId")
	if menuItemID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("menuItemId is required"), h.logger)
		return
	}

	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	cart, err := h.service.SetQuantity(r.Context(), userID, menuItemID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, cart)
}

// DecrementItem handles POST /api/v1/cart/items/{menuItemId}/decrement
func (h *CartHandler) DecrementItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	menuItemID := chi.URLParam(r, "menuItemId")
	if menuItemID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("menuItemId is required"), h.logger)
		return
	}

	cart, err := h.service.DecrementItem(r.Context(), userID, menuItemID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /api/v1/cart/items/{menuItemId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	menuItemID := chi.URLParam(r, "menuItemId")
	if menuItemID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("menuItemId is required"), h.logger)
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), userID, menuItemID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, cart)
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	if err := h.service.Clear(r.Context(), userID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, map[string]string{"status": "cleared"})
}
