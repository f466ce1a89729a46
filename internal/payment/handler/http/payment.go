package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rohanbadgujar20011/food-delivery-app/internal/payment/service"
	apperrors "github.com/rohanbadgujar20011/food-delivery-app/pkg/errors"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/httputil"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/middleware"
	"github.com/rohanbadgujar20011/food-delivery-app/pkg/validator"
)

// PaymentHandler handles HTTP requests for payment endpoints.
type PaymentHandler struct {
	service *service.PaymentService
	logger  *slog.Logger
}

// NewPaymentHandler creates a new payment HTTP handler.
func NewPaymentHandler(svc *service.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: svc,
		logger:  logger,
	}
}

// Routes registers the payment endpoints on the given router.
func (h *PaymentHandler) Routes(r chi.Router) {
	r.Use(middleware.ContentTypeJSON)

	r.Post("/", h.SubmitPayment)
	r.Get("/", h.ListPayments)
	r.Get("/{id}", h.GetPayment)
}

// --- Request DTOs ---

// SubmitPaymentRequest is the JSON request body for submitting a payment.
type SubmitPaymentRequest struct {
	OrderID string `json:"order_id" validate:"required"`
	UserID  string `json:"user_id"`
	Amount  int64  `json:"amount" validate:"required,gt=0"`
	Mode    string `json:"mode" validate:"required"`
}

// --- Handlers ---

// SubmitPayment handles POST /api/v1/payments
func (h *PaymentHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
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

	payment, err := h.service.SubmitPayment(r.Context(), &service.SubmitPaymentInput{
		OrderID: req.OrderID,
		UserID:  req.UserID,
		Amount:  req.Amount,
		Mode:    req.Mode,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	// The charge outcome, including FAILED, is reported with 200: the
	// request itself was handled, the decline lives in the payload.
	httputil.WriteData(w, http.StatusOK, payment)
}

// GetPayment handles GET /api/v1/payments/{id}
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	payment, err := h.service.GetPayment(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, payment)
}

// ListPayments handles GET /api/v1/payments?order_id=...
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("order_id")
	if orderID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("order_id query parameter is required"), h.logger)
		return
	}

	payments, err := h.service.ListPaymentsForOrder(r.Context(), orderID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, payments)
}
