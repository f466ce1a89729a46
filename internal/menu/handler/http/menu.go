package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/menu/domain"
	"github.com/rohanbadgujar20011/food-delivery-app/internal/menu/service"
	apperrors "github.com/rohanbadgujar20011/food-delivery-app/pkg/errors"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/httputil"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/middleware"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/validator"
)

// MenuHandler handles HTTP requests for menu endpoints.
type MenuHandler struct {
	service *service.MenuService
	logger  *slog.Logger
}

// NewMenuHandler creates a new menu HTTP handler.
func NewMenuHandler(svc *service.MenuService, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		service: svc,
		logger:  logger,
	}
}

// Routes registers the menu endpoints on the given router. Reads are open;
// writes require an authenticated user.
func (h *MenuHandler) Routes(r chi.Router) {
	r.Use(middleware.ContentTypeJSON)

	r.Get("/", h.ListMenuItems)
	r.Get("/{id}", h.GetMenuItem)

	r.Group(func(r chi.Router) {
		r.Use(middleware.UserIDFromHeader)

		r.Post("/", h.CreateMenuItem)
		r.Put("/{id}", h.UpdateMenuItem)
		r.Delete("/{id}", h.DeleteMenuItem)
	})
}

// --- Request DTOs ---

// CreateMenuItemRequest is the JSON request body for creating a menu item.
type CreateMenuItemRequest struct {
	RestaurantID string `json:"restaurant_id" validate:"required"`
	Name         string `json:"name" validate:"required,min=1,max=500"`
	Description  string `json:"description" validate:"max=2000"`
	Price        int64  `json:"price" validate:"gte=0"`
	ImageURL     string `json:"image_url" validate:"omitempty,url"`
	Category     string `json:"category" validate:"max=100"`
	Available    *bool  `json:"available"`
}

// UpdateMenuItemRequest is the JSON request body for updating a menu item.
// Absent fields are left unchanged.
type UpdateMenuItemRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=500"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Price       *int64  `json:"price" validate:"omitempty,gte=0"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	Available   *bool   `json:"available"`
}

// --- Handlers ---

// CreateMenuItem handles POST /api/v1/menu
func (h *MenuHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req CreateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	item, err := h.service.CreateMenuItem(r.Context(), &service.CreateMenuItemInput{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		ImageURL:     req.ImageURL,
		Category:     req.Category,
		Available:    req.Available,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, item)
}

// GetMenuItem handles GET /api/v1/menu/{id}
func (h *MenuHandler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("id is required"), h.logger)
		return
	}

	item, err := h.service.GetMenuItem(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, item)
}

// ListMenuItems handles GET /api/v1/menu
func (h *MenuHandler) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	filter := domain.ListFilter{
		RestaurantID:  r.URL.Query().Get("restaurant_id"),
		Category:      r.URL.Query().Get("category"),
		OnlyAvailable: r.URL.Query().Get("available") == "true",
	}

	items, err := h.service.ListMenuItems(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, items)
}

// UpdateMenuItem handles PUT /api/v1/menu/{id}
func (h *MenuHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("id is required"), h.logger)
		return
	}

	var req UpdateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	item, err := h.service.UpdateMenuItem(r.Context(), id, &service.UpdateMenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Available:   req.Available,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, item)
}

// DeleteMenuItem handles DELETE /api/v1/menu/{id}
func (h *MenuHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("id is required"), h.logger)
		return
	}

	if err := h.service.DeleteMenuItem(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, map[string]string{"status": "deleted"})
}
