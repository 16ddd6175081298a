package orders

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/lifecafe/order-service/internal/domain"
	"github.com/lifecafe/order-service/internal/menu"
)

func ptr(v float64) *float64 { return &v }

func newTestService(t *testing.T) (*Service, *MemoryStore) {
	t.Helper()
	catalog, err := menu.Load()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	store := NewMemoryStore()
	return NewService(store, catalog), store
}

func latteItem() NewItem {
	return NewItem{
		Name:     "Latte",
		Slug:     "latte",
		Options:  domain.OptionMap{"milk": "oat"},
		Price:    ptr(3.20),
		Quantity: 2,
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending order", func(t *testing.T) {
		service, _ := newTestService(t)

		order, err := service.CreateOrder(ctx, 7, []NewItem{latteItem()})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		if order.ID == "" {
			t.Error("expected order id to be set")
		}
		if order.Status != domain.OrderStatusPending {
			t.Errorf("expected status pending, got %s", order.Status)
		}
		if order.TableNumber != 7 {
			t.Errorf("expected table 7, got %d", order.TableNumber)
		}
		if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
			t.Fatalf("unexpected items: %+v", order.Items)
		}
		if order.UpdatedAt.Before(order.CreatedAt) {
			t.Error("updatedAt must not precede createdAt")
		}
		if math.Abs(order.Total()-6.40) > 1e-9 {
			t.Errorf("expected total 6.40, got %v", order.Total())
		}

		listed, err := service.ListOrders(ctx, ListFilter{TableNumber: 7})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(listed) != 1 || listed[0].ID != order.ID {
			t.Fatalf("expected created order in table-7 listing, got %+v", listed)
		}
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.CreateOrder(ctx, 5, nil)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected validation error, got %v", err)
		}

		listed, _ := service.ListOrders(ctx, ListFilter{})
		if len(listed) != 0 {
			t.Errorf("expected nothing persisted, got %d orders", len(listed))
		}
	})

	t.Run("rejects missing table number", func(t *testing.T) {
		service, _ := newTestService(t)

		for _, table := range []int{0, -3} {
			_, err := service.CreateOrder(ctx, table, []NewItem{latteItem()})
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("table %d: expected validation error, got %v", table, err)
			}
		}
	})

	t.Run("rejects negative quantity and defaults zero to one", func(t *testing.T) {
		service, _ := newTestService(t)

		bad := latteItem()
		bad.Quantity = -1
		_, err := service.CreateOrder(ctx, 3, []NewItem{bad})
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected validation error, got %v", err)
		}

		defaulted := latteItem()
		defaulted.Quantity = 0
		order, err := service.CreateOrder(ctx, 3, []NewItem{defaulted})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if order.Items[0].Quantity != 1 {
			t.Errorf("expected quantity defaulted to 1, got %d", order.Items[0].Quantity)
		}
	})

	t.Run("store failure leaves no trace", func(t *testing.T) {
		service, store := newTestService(t)
		store.FailNextCreate(errors.New("item insert failed"))

		_, err := service.CreateOrder(ctx, 4, []NewItem{latteItem()})
		if err == nil {
			t.Fatal("expected create to fail")
		}

		listed, _ := service.ListOrders(ctx, ListFilter{})
		if len(listed) != 0 {
			t.Errorf("expected no partial order, got %d", len(listed))
		}
	})

	t.Run("fills missing price from catalog", func(t *testing.T) {
		service, _ := newTestService(t)

		order, err := service.CreateOrder(ctx, 2, []NewItem{{
			Name:    "Latte",
			Slug:    "latte",
			Options: domain.OptionMap{"size": "regular", "milk": "oat"},
		}})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if order.Items[0].Price == nil || math.Abs(*order.Items[0].Price-3.20) > 1e-9 {
			t.Fatalf("expected catalog price 3.20, got %v", order.Items[0].Price)
		}
	})

	t.Run("unknown slug without price stays unpriced", func(t *testing.T) {
		service, _ := newTestService(t)

		order, err := service.CreateOrder(ctx, 2, []NewItem{{
			Name: "Off Menu",
			Slug: "off-menu",
		}})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if order.Items[0].Price != nil {
			t.Errorf("expected nil price, got %v", *order.Items[0].Price)
		}
		if order.Total() != 0 {
			t.Errorf("expected zero total, got %v", order.Total())
		}
	})

	t.Run("client price is never overridden", func(t *testing.T) {
		service, _ := newTestService(t)

		item := latteItem()
		item.Price = ptr(1.00)
		order, err := service.CreateOrder(ctx, 2, []NewItem{item})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if *order.Items[0].Price != 1.00 {
			t.Errorf("expected submitted price kept, got %v", *order.Items[0].Price)
		}
	})
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown status without touching the order", func(t *testing.T) {
		service, _ := newTestService(t)
		order, err := service.CreateOrder(ctx, 1, []NewItem{latteItem()})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		_, err = service.SetStatus(ctx, order.ID, "served")
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected validation error, got %v", err)
		}

		unchanged, err := service.GetOrder(ctx, order.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if unchanged.Status != domain.OrderStatusPending {
			t.Errorf("status changed to %s", unchanged.Status)
		}
		if !unchanged.UpdatedAt.Equal(order.UpdatedAt) {
			t.Error("updatedAt changed on rejected transition")
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		service, _ := newTestService(t)
		_, err := service.SetStatus(ctx, "nope", domain.OrderStatusReady)
		if !errors.Is(err, domain.ErrOrderNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("any status may follow any other", func(t *testing.T) {
		service, _ := newTestService(t)
		order, err := service.CreateOrder(ctx, 1, []NewItem{latteItem()})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		for _, status := range []domain.OrderStatus{
			domain.OrderStatusReady,
			domain.OrderStatusCompleted,
			domain.OrderStatusCancelled,
			domain.OrderStatusPending, // staff un-cancelling a mis-click
		} {
			updated, err := service.SetStatus(ctx, order.ID, status)
			if err != nil {
				t.Fatalf("transition to %s failed: %v", status, err)
			}
			if updated.Status != status {
				t.Errorf("expected %s, got %s", status, updated.Status)
			}
			if updated.UpdatedAt.Before(updated.CreatedAt) {
				t.Error("updatedAt must not precede createdAt")
			}
			if len(updated.Items) != 1 {
				t.Errorf("expected aggregated items on refresh, got %d", len(updated.Items))
			}
		}
	})
}

func TestListOrders(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	seed := []struct {
		table  int
		status domain.OrderStatus
	}{
		{1, domain.OrderStatusPending},
		{1, domain.OrderStatusCompleted},
		{2, domain.OrderStatusPending},
	}

	var ids []string
	for _, s := range seed {
		order, err := service.CreateOrder(ctx, s.table, []NewItem{latteItem()})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if s.status != domain.OrderStatusPending {
			if _, err := service.SetStatus(ctx, order.ID, s.status); err != nil {
				t.Fatalf("set status failed: %v", err)
			}
		}
		ids = append(ids, order.ID)
		time.Sleep(5 * time.Millisecond)
	}

	t.Run("filters by table", func(t *testing.T) {
		got, err := service.ListOrders(ctx, ListFilter{TableNumber: 1})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 table-1 orders, got %d", len(got))
		}
	})

	t.Run("filters by status", func(t *testing.T) {
		got, err := service.ListOrders(ctx, ListFilter{Status: domain.OrderStatusPending})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 pending orders, got %d", len(got))
		}
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		got, err := service.ListOrders(ctx, ListFilter{TableNumber: 1, Status: domain.OrderStatusPending})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != ids[0] {
			t.Fatalf("expected exactly the pending table-1 order, got %+v", got)
		}
	})

	t.Run("newest first", func(t *testing.T) {
		got, err := service.ListOrders(ctx, ListFilter{})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 orders, got %d", len(got))
		}
		if got[0].ID != ids[2] || got[2].ID != ids[0] {
			t.Errorf("expected createdAt-descending order, got %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
		}
	})
}

func TestDeleteOrder(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	order, err := service.CreateOrder(ctx, 9, []NewItem{
		latteItem(),
		{Name: "Croissant", Slug: "croissant", Price: ptr(2.80)},
		{Name: "Green Tea", Slug: "green-tea", Price: ptr(2.20)},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := service.DeleteOrder(ctx, order.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := service.GetOrder(ctx, order.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	if err := service.DeleteOrder(ctx, order.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
