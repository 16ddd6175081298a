package domain

import (
	"errors"
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses is the full status vocabulary. Transitions are deliberately
// unrestricted beyond membership: staff must be able to correct mis-clicks,
// e.g. move a cancelled order back to pending.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusReady,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

var ErrOrderNotFound = errors.New("order not found")

// ValidationError reports rejected input. Callers should not retry.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

type OrderItem struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Options   OptionMap `json:"options"`
	Price     *float64  `json:"price"`
	Quantity  int       `json:"quantity"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"-"`
}

type Order struct {
	ID          string      `json:"id"`
	TableNumber int         `json:"tableNumber"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	Items       []OrderItem `json:"items"`
}

// Total is derived, never stored: sum of price*quantity over all items,
// with unpriced items counting as zero.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		if item.Price == nil {
			continue
		}
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		total += *item.Price * float64(qty)
	}
	return total
}
