package handlers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = time.Hour

// TokenService issues and verifies signed, time-limited identity tokens.
// Single static secret for the process lifetime; no rotation, no revocation.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService constructs a TokenService signing with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    defaultTokenTTL,
	}
}

// Issue signs the submitted identity claims, embedding a fixed expiry.
// Re-issuance requires a new login; there is no refresh mechanism.
func (s *TokenService) Issue(claims map[string]any) (string, error) {
	now := time.Now()
	tokenClaims := jwt.MapClaims{}
	for key, value := range claims {
		tokenClaims[key] = value
	}
	tokenClaims["iat"] = jwt.NewNumericDate(now)
	tokenClaims["exp"] = jwt.NewNumericDate(now.Add(s.ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)
	return token.SignedString(s.secret)
}

// Verify validates signature and expiry and returns the embedded claims.
// Expired tokens surface as an error wrapping jwt.ErrTokenExpired.
func (s *TokenService) Verify(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
