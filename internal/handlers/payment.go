package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fa-emon/glamhub-server/internal/services"
	"github.com/fa-emon/glamhub-server/types"
	"github.com/go-chi/chi/v5"
)

// PaymentHandler provides HTTP handlers for payment intents and checkout.
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler constructs a handler with the provided service.
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// PaymentRouter registers the payment routes on the given router.
func PaymentRouter(r chi.Router, paymentService *services.PaymentService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewPaymentHandler(paymentService)

	r.With(authMiddleware).Post("/create-payment-intent", handler.CreateIntent)
	r.With(authMiddleware).Post("/payments", handler.Checkout)
}

// CreateIntent exchanges a price for a processor client secret.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req CreateIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	clientSecret, err := h.paymentService.CreateIntent(r.Context(), req.Price)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create payment intent")
		return
	}

	writeJSON(w, http.StatusOK, CreateIntentResponse{ClientSecret: clientSecret})
}

// Checkout records the payment and clears the purchased cart items.
func (h *PaymentHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var payment types.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	recorded, deleted, err := h.paymentService.Checkout(r.Context(), payment)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCartItemID) {
			writeError(w, http.StatusBadRequest, "invalid cart item id")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to record payment")
		return
	}

	writeJSON(w, http.StatusOK, CheckoutResponse{
		Payment:      recorded,
		DeletedCount: deleted,
	})
}

type CreateIntentRequest struct {
	Price float64 `json:"price"`
}

type CreateIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CheckoutResponse carries the recorded payment and how many cart items were
// removed by it.
type CheckoutResponse struct {
	Payment      types.Payment `json:"payment"`
	DeletedCount int64         `json:"deletedCount"`
}
