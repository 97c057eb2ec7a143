package handlers

import (
	"net/http"
	"testing"
)

func TestIssueTokenEndpoint(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/jwt", "", map[string]string{"email": "user@example.com"})
	requireStatus(t, rec, http.StatusOK)

	resp := decodeBody[TokenResponse](t, rec)
	if resp.Token == "" {
		t.Fatalf("expected a token in the response")
	}

	claims, err := app.tokens.Verify(resp.Token)
	if err != nil {
		t.Fatalf("issued token did not verify: %v", err)
	}
	if email, _ := claims["email"].(string); email != "user@example.com" {
		t.Fatalf("unexpected email claim: %q", email)
	}
}

func TestRequireAuthRejectsMissingAndMalformedTokens(t *testing.T) {
	app := newTestApp(t)

	cases := map[string]string{
		"missing":      "",
		"not a bearer": "Basic abc123",
		"garbage":      "Bearer not-a-token",
	}
	for name, header := range cases {
		req, rec := newRawRequest(t, http.MethodGet, "/users")
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		app.router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
		resp := decodeBody[ErrorResponse](t, rec)
		if !resp.Error || resp.Message != "unauthorized access" {
			t.Fatalf("%s: unexpected error body: %+v", name, resp)
		}
	}
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	app := newTestApp(t)
	app.addUser("student@example.com", "student")

	rec := app.do(t, http.MethodGet, "/users", app.tokenFor(t, "student@example.com"), nil)
	requireStatus(t, rec, http.StatusForbidden)

	resp := decodeBody[ErrorResponse](t, rec)
	if !resp.Error || resp.Message != "forbidden access" {
		t.Fatalf("unexpected error body: %+v", resp)
	}
}

func TestRequireAdminRejectsUnknownUser(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/users", app.tokenFor(t, "ghost@example.com"), nil)
	requireStatus(t, rec, http.StatusForbidden)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	app := newTestApp(t)
	app.addUser("admin@example.com", "admin")

	rec := app.do(t, http.MethodGet, "/users", app.tokenFor(t, "admin@example.com"), nil)
	requireStatus(t, rec, http.StatusOK)
}
