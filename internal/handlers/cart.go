package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fa-emon/glamhub-server/internal/services"
	"github.com/fa-emon/glamhub-server/types"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartHandler provides HTTP handlers for cart items.
type CartHandler struct {
	cartService *services.CartService
}

// NewCartHandler constructs a handler with the provided service.
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// CartRouter registers cart routes on the given router. Only the listing is
// gated; add and remove are ungated, matching the upstream API.
func CartRouter(r chi.Router, cartService *services.CartService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewCartHandler(cartService)

	r.With(authMiddleware).Get("/", handler.List)
	r.Post("/", handler.Add)
	r.Delete("/{id}", handler.Delete)
}

// List returns the cart items owned by the queried email. The queried
// identity must equal the authenticated identity.
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeJSON(w, http.StatusOK, []types.CartItem{})
		return
	}

	claimed, err := emailFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized access")
		return
	}
	if email != claimed {
		writeError(w, http.StatusForbidden, "forbidden access")
		return
	}

	items, err := h.cartService.ListByEmail(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list cart items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var item types.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.cartService.Add(r.Context(), item)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to add cart item")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart item id")
		return
	}

	deleted, err := h.cartService.Delete(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete cart item")
		return
	}

	writeJSON(w, http.StatusOK, DeleteResponse{DeletedCount: deleted})
}
