package handlers

import (
	"net/http"
	"testing"

	"github.com/fa-emon/glamhub-server/types"
)

func TestCartListOwnItems(t *testing.T) {
	app := newTestApp(t)
	app.carts.items = []types.CartItem{
		{Email: "me@example.com", CourseID: "c1", Name: "Course One", Price: 10},
		{Email: "other@example.com", CourseID: "c2", Name: "Course Two", Price: 20},
	}

	rec := app.do(t, http.MethodGet, "/carts?email=me@example.com", app.tokenFor(t, "me@example.com"), nil)
	requireStatus(t, rec, http.StatusOK)

	items := decodeBody[[]types.CartItem](t, rec)
	if len(items) != 1 || items[0].CourseID != "c1" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestCartListEmptyEmailReturnsEmptyList(t *testing.T) {
	app := newTestApp(t)
	app.carts.items = []types.CartItem{{Email: "me@example.com"}}

	rec := app.do(t, http.MethodGet, "/carts", app.tokenFor(t, "me@example.com"), nil)
	requireStatus(t, rec, http.StatusOK)

	if items := decodeBody[[]types.CartItem](t, rec); len(items) != 0 {
		t.Fatalf("expected empty list, got %d items", len(items))
	}
}

func TestCartListForeignEmailForbidden(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/carts?email=other@example.com", app.tokenFor(t, "me@example.com"), nil)
	requireStatus(t, rec, http.StatusForbidden)

	resp := decodeBody[ErrorResponse](t, rec)
	if !resp.Error || resp.Message != "forbidden access" {
		t.Fatalf("unexpected error body: %+v", resp)
	}
}

func TestCartListRequiresToken(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/carts?email=me@example.com", "", nil)
	requireStatus(t, rec, http.StatusUnauthorized)
}

func TestCartAddAndDelete(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/carts", "", types.CartItem{
		Email:    "me@example.com",
		CourseID: "c1",
		Name:     "Course One",
		Price:    10,
	})
	requireStatus(t, rec, http.StatusCreated)

	item := decodeBody[types.CartItem](t, rec)
	if item.ID.IsZero() {
		t.Fatalf("expected created item to have an id")
	}

	rec = app.do(t, http.MethodDelete, "/carts/"+item.ID.Hex(), "", nil)
	requireStatus(t, rec, http.StatusOK)
	if decodeBody[DeleteResponse](t, rec).DeletedCount != 1 {
		t.Fatalf("expected deletedCount=1")
	}
	if len(app.carts.items) != 0 {
		t.Fatalf("expected cart to be empty")
	}
}

func TestCartDeleteRejectsMalformedID(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodDelete, "/carts/nope", "", nil)
	requireStatus(t, rec, http.StatusBadRequest)
}
