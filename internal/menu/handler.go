package menu

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type Handler struct {
	catalog *Catalog
	logger  *slog.Logger
}

func NewHandler(catalog *Catalog, logger *slog.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// HandleGetMenu serves the catalog as authored so clients render the
// same section/category structure the menu file declares.
func (h *Handler) HandleGetMenu(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(h.catalog.Raw()); err != nil {
		h.logger.Error("failed to write menu response", "error", err)
	}
}

type itemResponse struct {
	Item           *Item             `json:"item"`
	DefaultOptions map[string]string `json:"defaultOptions"`
	Price          *float64          `json:"price"`
}

// HandleGetItem returns one item with its default selection and the
// unit price that selection resolves to.
func (h *Handler) HandleGetItem(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		h.writeError(w, http.StatusBadRequest, "missing item slug")
		return
	}

	item, ok := h.catalog.FindBySlug(slug)
	if !ok {
		h.writeError(w, http.StatusNotFound, "item not found")
		return
	}

	defaults := DefaultOptions(item)
	h.writeJSON(w, http.StatusOK, itemResponse{
		Item:           item,
		DefaultOptions: defaults,
		Price:          Calculate(item, defaults),
	})
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
