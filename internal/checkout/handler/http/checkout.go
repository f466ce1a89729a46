package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/checkout/service"
	apperrors "github.com/rohanbadgujar20011/food-delivery-app/pkg/errors"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/httputil"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/middleware"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/validator"
)

// CheckoutHandler handles HTTP requests for the checkout flow.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// Routes registers the checkout endpoints on the given router. All checkout
// operations require an authenticated user.
func (h *CheckoutHandler) Routes(r chi.Router) {
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.UserIDFromHeader)

	r.Post("/orders", h.PlaceOrder)
	r.Post("/payments", h.SubmitPayment)
}

// SubmitPaymentRequest is the JSON request body for a payment submission.
type SubmitPaymentRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	Amount  int64  `json:"amount" validate:"required,gt=0"`
	Mode    string `json:"mode" validate:"required"`
}

// PlaceOrder handles POST /api/v1/checkout/orders
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	result, err := h.service.PlaceOrder(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, result)
}

// SubmitPayment handles POST /api/v1/checkout/payments
func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req SubmitPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	outcome, err := h.service.SubmitPayment(r.Context(), &service.SubmitPaymentInput{
		OrderID: req.OrderID,
		UserID:  userID,
		Amount:  req.Amount,
		Mode:    req.Mode,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	// A FAILED outcome is a handled resolution, not a request error.
	httputil.WriteData(w, http.StatusOK, outcome)
}
