package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestHandler(passcode string) *Handler {
	return NewHandler(passcode, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func login(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)
	return rec
}

func TestHandleLogin(t *testing.T) {
	t.Run("accepts correct passcode", func(t *testing.T) {
		rec := login(t, newTestHandler("4821"), `{"passcode": "4821"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	})

	t.Run("rejects wrong passcode", func(t *testing.T) {
		rec := login(t, newTestHandler("4821"), `{"passcode": "0000"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("rejects missing passcode", func(t *testing.T) {
		rec := login(t, newTestHandler("4821"), `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("falls back to development default", func(t *testing.T) {
		rec := login(t, newTestHandler(""), `{"passcode": "1234"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	})
}
