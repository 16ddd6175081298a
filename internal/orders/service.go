package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/lifecafe/order-service/internal/domain"
	"github.com/lifecafe/order-service/internal/menu"
)

// NewItem is one cart line as submitted by a client.
type NewItem struct {
	Name     string           `json:"name"`
	Slug     string           `json:"slug"`
	Options  domain.OptionMap `json:"options"`
	Price    *float64         `json:"price"`
	Quantity int              `json:"quantity"`
	Notes    *string          `json:"notes"`
}

// Service owns the order lifecycle: it validates input, stamps status
// and timestamps, and returns orders aggregated with their items.
// Status transitions are unrestricted beyond vocabulary membership; the
// staff UI encodes the expected pending → ready → completed flow.
type Service struct {
	store   Store
	catalog *menu.Catalog
}

// NewService wires the engine to a store. The catalog is optional; when
// present it fills in unit prices for submitted items that carry none.
func NewService(store Store, catalog *menu.Catalog) *Service {
	return &Service{store: store, catalog: catalog}
}

func (s *Service) CreateOrder(ctx context.Context, tableNumber int, items []NewItem) (*domain.Order, error) {
	if tableNumber <= 0 {
		return nil, domain.Validationf("table number is required")
	}
	if len(items) == 0 {
		return nil, domain.Validationf("at least one item is required")
	}

	now := time.Now().UTC()
	order := &domain.Order{
		TableNumber: tableNumber,
		Status:      domain.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		Items:       make([]domain.OrderItem, 0, len(items)),
	}

	for i, item := range items {
		if item.Name == "" || item.Slug == "" {
			return nil, domain.Validationf("item %d: name and slug are required", i)
		}
		if item.Quantity < 0 {
			return nil, domain.Validationf("item %d: quantity must be positive", i)
		}
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}

		price := item.Price
		if price == nil {
			price = s.lookupPrice(item.Slug, item.Options)
		}

		order.Items = append(order.Items, domain.OrderItem{
			Name:     item.Name,
			Slug:     item.Slug,
			Options:  item.Options,
			Price:    price,
			Quantity: quantity,
			Notes:    item.Notes,
		})
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return order, nil
}

// lookupPrice computes a unit price from the catalog for items the
// client submitted without one. Clients normally price items themselves
// at cart time; this is a fallback, never an override.
func (s *Service) lookupPrice(slug string, selected domain.OptionMap) *float64 {
	if s.catalog == nil {
		return nil
	}
	item, ok := s.catalog.FindBySlug(slug)
	if !ok {
		return nil
	}
	return menu.Calculate(item, selected)
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// ListOrders returns orders newest-first by creation time, each with
// its items embedded. Filters AND together; zero values match all.
func (s *Service) ListOrders(ctx context.Context, filter ListFilter) ([]domain.Order, error) {
	orders, err := s.store.ListOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *Service) SetStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.Validationf("invalid status %q: must be one of %v", status, domain.OrderStatuses)
	}

	found, err := s.store.UpdateStatus(ctx, id, status, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if !found {
		return nil, domain.ErrOrderNotFound
	}

	return s.GetOrder(ctx, id)
}

func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	found, err := s.store.DeleteOrder(ctx, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if !found {
		return domain.ErrOrderNotFound
	}
	return nil
}
