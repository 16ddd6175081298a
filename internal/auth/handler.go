// Package auth gates the staff views behind a shared passcode. Clients
// keep the session themselves; the server only verifies the code.
package auth

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
)

const defaultPasscode = "1234"

type Handler struct {
	passcode string
	logger   *slog.Logger
}

// NewHandler verifies against the given passcode, falling back to the
// development default when empty.
func NewHandler(passcode string, logger *slog.Logger) *Handler {
	if passcode == "" {
		passcode = defaultPasscode
	}
	return &Handler{
		passcode: passcode,
		logger:   logger,
	}
}

type loginRequest struct {
	Passcode string `json:"passcode"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Passcode == "" {
		h.writeError(w, http.StatusBadRequest, "passcode is required")
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Passcode), []byte(h.passcode)) != 1 {
		h.logger.Info("rejected login attempt")
		h.writeError(w, http.StatusUnauthorized, "invalid passcode")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
