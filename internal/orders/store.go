package orders

import (
	"context"
	"time"

	"github.com/lifecafe/order-service/internal/domain"
)

// ListFilter narrows ListOrders. Zero values impose no constraint;
// table numbers are always positive so 0 is safe as "any".
type ListFilter struct {
	TableNumber int
	Status      domain.OrderStatus
}

// Store is the persistence boundary for orders and their line items.
// Implementations must make CreateOrder atomic: readers never observe
// an order without its items. GetOrder returns (nil, nil) when the id
// is unknown; UpdateStatus and DeleteOrder report absence through their
// boolean so the caller decides how to surface it.
type Store interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, updatedAt time.Time) (bool, error)
	DeleteOrder(ctx context.Context, id string) (bool, error)
}
