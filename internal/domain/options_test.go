package domain

import (
	"math"
	"testing"
)

func TestOptionMapScan(t *testing.T) {
	t.Run("decodes json object", func(t *testing.T) {
		var m OptionMap
		if err := m.Scan([]byte(`{"milk":"oat","size":"large"}`)); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		if m["milk"] != "oat" || m["size"] != "large" {
			t.Errorf("unexpected map: %v", m)
		}
	})

	t.Run("decodes double-encoded string", func(t *testing.T) {
		var m OptionMap
		if err := m.Scan([]byte(`"{\"milk\":\"oat\"}"`)); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		if m["milk"] != "oat" {
			t.Errorf("unexpected map: %v", m)
		}
	})

	t.Run("decodes text column value", func(t *testing.T) {
		var m OptionMap
		if err := m.Scan(`{"size":"small"}`); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		if m["size"] != "small" {
			t.Errorf("unexpected map: %v", m)
		}
	})

	t.Run("nil and empty stay nil", func(t *testing.T) {
		var m OptionMap
		if err := m.Scan(nil); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		if m != nil {
			t.Errorf("expected nil map, got %v", m)
		}
		if err := m.Scan(""); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		if m != nil {
			t.Errorf("expected nil map, got %v", m)
		}
	})

	t.Run("round-trips through Value", func(t *testing.T) {
		m := OptionMap{"milk": "oat"}
		v, err := m.Value()
		if err != nil {
			t.Fatalf("value failed: %v", err)
		}
		var decoded OptionMap
		if err := decoded.Scan(v.(string)); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		if decoded["milk"] != "oat" {
			t.Errorf("unexpected map: %v", decoded)
		}
	})
}

func TestOrderTotal(t *testing.T) {
	price := func(v float64) *float64 { return &v }

	order := &Order{
		Items: []OrderItem{
			{Price: price(3.20), Quantity: 2},
			{Price: nil, Quantity: 1},
			{Price: price(4.50), Quantity: 1},
		},
	}

	if got := order.Total(); math.Abs(got-10.90) > 1e-9 {
		t.Errorf("expected total 10.90, got %v", got)
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range OrderStatuses {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if OrderStatus("served").Valid() {
		t.Error("expected 'served' to be invalid")
	}
	if OrderStatus("").Valid() {
		t.Error("expected empty status to be invalid")
	}
}
