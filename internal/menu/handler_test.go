package menu

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	catalog, err := Load()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	handler := NewHandler(catalog, slog.New(slog.NewTextHandler(io.Discard, nil)))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /menu", handler.HandleGetMenu)
	mux.HandleFunc("GET /menu/items/{slug}", handler.HandleGetItem)
	return mux
}

func TestHandleGetMenu(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest(http.MethodGet, "/menu", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &sections); err != nil {
		t.Fatalf("menu is not valid JSON: %v", err)
	}
	if _, ok := sections["drinks"]; !ok {
		t.Error("expected drinks section in menu")
	}
}

func TestHandleGetItem(t *testing.T) {
	mux := newTestMux(t)

	t.Run("returns item with defaults and price", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/menu/items/latte", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}

		var resp itemResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Item == nil || resp.Item.Slug != "latte" {
			t.Fatalf("unexpected item: %+v", resp.Item)
		}
		if resp.DefaultOptions["size"] != "regular" || resp.DefaultOptions["milk"] != "whole" {
			t.Errorf("unexpected defaults: %v", resp.DefaultOptions)
		}
		if resp.Price == nil || *resp.Price != 3.2 {
			t.Errorf("expected default price 3.2, got %v", resp.Price)
		}
	})

	t.Run("unknown slug is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/menu/items/ristretto", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})
}
