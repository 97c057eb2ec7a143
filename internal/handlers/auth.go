package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fa-emon/glamhub-server/internal/services"
	"github.com/fa-emon/glamhub-server/internal/store"
	"github.com/go-chi/chi/v5"
)

const adminRole = "admin"

// AuthHandler provides the token issue endpoint.
type AuthHandler struct {
	tokens *TokenService
}

// NewAuthHandler constructs an AuthHandler with the provided token service.
func NewAuthHandler(tokens *TokenService) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// AuthRouter registers the token issue route on the given router.
func AuthRouter(r chi.Router, tokens *TokenService) {
	handler := NewAuthHandler(tokens)
	r.Post("/jwt", handler.IssueToken)
}

// IssueToken signs the submitted identity claims and returns the token.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var claims map[string]any
	if err := json.NewDecoder(r.Body).Decode(&claims); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	token, err := h.tokens.Issue(claims)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// TokenResponse carries an issued token.
type TokenResponse struct {
	Token string `json:"token"`
}

// RequireAuth enforces bearer authentication and injects the verified claims
// into the request context.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := bearerToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			ctx := context.WithValue(r.Context(), contextClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin loads the authenticated user's record and rejects non-admin
// roles. It must compose after RequireAuth; the role lookup needs the
// verified identity from the claims.
func RequireAdmin(userService *services.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, err := emailFromContext(r.Context())
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			user, err := userService.GetByEmail(r.Context(), email)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusInternalServerError, "failed to load user")
				return
			}

			if user.Role != adminRole {
				writeError(w, http.StatusForbidden, "forbidden access")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("invalid authorization")
	}
	return token, nil
}
