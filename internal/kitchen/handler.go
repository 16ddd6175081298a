// Package kitchen turns order.created events into log tickets for the
// kitchen display feed. Staff screens still poll the orders API for
// state; this feed is an operational log of incoming work.
package kitchen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/lifecafe/order-service/internal/domain"
)

type TicketHandler struct {
	logger *slog.Logger
}

func NewTicketHandler(logger *slog.Logger) *TicketHandler {
	return &TicketHandler{logger: logger}
}

func (h *TicketHandler) Handle(ctx context.Context, payload []byte) error {
	var event domain.OrderCreatedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal order created event: %w", err)
	}

	h.logger.Info("new ticket",
		"order_id", event.OrderID,
		"table_number", event.TableNumber,
		"items", len(event.Items),
	)

	for _, item := range event.Items {
		attrs := []any{
			"order_id", event.OrderID,
			"item", item.Name,
			"quantity", item.Quantity,
		}
		if opts := formatOptions(item.Options); opts != "" {
			attrs = append(attrs, "options", opts)
		}
		if item.Notes != nil && *item.Notes != "" {
			attrs = append(attrs, "notes", *item.Notes)
		}
		h.logger.Info("ticket line", attrs...)
	}

	return nil
}

func formatOptions(options domain.OptionMap) string {
	if len(options) == 0 {
		return ""
	}

	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+options[k])
	}
	return strings.Join(parts, ", ")
}
