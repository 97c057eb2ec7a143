package handlers

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenIssueAndVerify(t *testing.T) {
	tokens := NewTokenService("secret")

	signed, err := tokens.Issue(map[string]any{"email": "user@example.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if email, _ := claims["email"].(string); email != "user@example.com" {
		t.Fatalf("unexpected email claim: %q", email)
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("expected exp claim to be set")
	}
}

func TestTokenVerifyRejectsWrongSecret(t *testing.T) {
	signed, err := NewTokenService("secret-a").Issue(map[string]any{"email": "user@example.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewTokenService("secret-b").Verify(signed); err == nil {
		t.Fatalf("expected verification to fail with a different secret")
	}
}

func TestTokenVerifyRejectsExpired(t *testing.T) {
	tokens := NewTokenService("secret")
	tokens.ttl = -time.Minute

	signed, err := tokens.Issue(map[string]any{"email": "user@example.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = tokens.Verify(signed)
	if err == nil {
		t.Fatalf("expected expired token to fail verification")
	}
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected jwt.ErrTokenExpired, got %v", err)
	}
}

func TestTokenVerifyRejectsGarbage(t *testing.T) {
	if _, err := NewTokenService("secret").Verify("not-a-token"); err == nil {
		t.Fatalf("expected garbage token to fail verification")
	}
}
