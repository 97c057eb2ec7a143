package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const contextClaimsKey contextKey = "claims"

func claimsFromContext(ctx context.Context) (jwt.MapClaims, error) {
	claims, ok := ctx.Value(contextClaimsKey).(jwt.MapClaims)
	if !ok {
		return nil, errors.New("missing claims")
	}
	return claims, nil
}

func emailFromContext(ctx context.Context) (string, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	email, _ := claims["email"].(string)
	email = strings.TrimSpace(email)
	if email == "" {
		return "", errors.New("missing email claim")
	}
	return email, nil
}

// ErrorResponse is the error payload for every failed request.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// UpdateResponse reports how many documents an update touched.
type UpdateResponse struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResponse reports how many documents a delete removed.
type DeleteResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: true, Message: message})
}
