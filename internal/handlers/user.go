package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fa-emon/glamhub-server/internal/services"
	"github.com/fa-emon/glamhub-server/internal/store"
	"github.com/fa-emon/glamhub-server/types"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler provides HTTP handlers for users.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler constructs a handler with the provided service.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserRouter registers user routes on the given router. The promote and
// delete routes are deliberately left ungated, matching the upstream API.
func UserRouter(
	r chi.Router,
	userService *services.UserService,
	authMiddleware func(http.Handler) http.Handler,
	adminMiddleware func(http.Handler) http.Handler,
) {
	handler := NewUserHandler(userService)

	r.With(authMiddleware, adminMiddleware).Get("/", handler.ListUsers)
	r.Post("/", handler.Register)
	r.With(authMiddleware).Get("/admin/{email}", handler.AdminStatus)
	r.Patch("/admin/{email}", handler.Promote)
	r.Delete("/{id}", handler.Delete)
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Register creates a new user. Duplicate emails conflict.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var user types.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user.Email = strings.TrimSpace(user.Email)
	if user.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	if _, err := h.userService.GetByEmail(r.Context(), user.Email); err == nil {
		writeError(w, http.StatusConflict, "User already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	created, err := h.userService.Create(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, RegisterResponse{
		Message: "User created successfully",
		User:    created,
	})
}

// AdminStatus reports whether the queried identity has the admin role. The
// answer is only meaningful for the caller's own identity; any other email
// reads as non-admin.
func (h *UserHandler) AdminStatus(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	claimed, err := emailFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized access")
		return
	}
	if claimed != email {
		writeJSON(w, http.StatusOK, AdminStatusResponse{Admin: false})
		return
	}

	user, err := h.userService.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusOK, AdminStatusResponse{Admin: false})
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	writeJSON(w, http.StatusOK, AdminStatusResponse{Admin: user.Role == adminRole})
}

// Promote sets the identified user's role to admin. The path position is
// shared with the admin-status route; here the segment carries the user
// document id.
func (h *UserHandler) Promote(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	modified, err := h.userService.PromoteToAdmin(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	writeJSON(w, http.StatusOK, UpdateResponse{ModifiedCount: modified})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	deleted, err := h.userService.Delete(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}

	writeJSON(w, http.StatusOK, DeleteResponse{DeletedCount: deleted})
}

// RegisterResponse is the created-user payload.
type RegisterResponse struct {
	Message string     `json:"message"`
	User    types.User `json:"user"`
}

// AdminStatusResponse answers the admin-status check.
type AdminStatusResponse struct {
	Admin bool `json:"admin"`
}
