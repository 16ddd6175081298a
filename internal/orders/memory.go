package orders

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lifecafe/order-service/internal/domain"
)

// MemoryStore keeps orders in process memory. It backs unit tests and
// database-less development runs; the contract matches PostgresStore.
type MemoryStore struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order

	// failNextCreate makes the next CreateOrder fail after the point a
	// non-transactional store would have written the order row, proving
	// the all-or-nothing contract in tests.
	failNextCreate error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders: make(map[string]*domain.Order),
	}
}

// FailNextCreate arms a one-shot item-insertion failure.
func (s *MemoryStore) FailNextCreate(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNextCreate = err
}

func (s *MemoryStore) CreateOrder(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failNextCreate; err != nil {
		s.failNextCreate = nil
		return err
	}

	order.ID = uuid.New().String()
	for i := range order.Items {
		order.Items[i].ID = uuid.New().String()
		order.Items[i].OrderID = order.ID
		order.Items[i].CreatedAt = order.CreatedAt
	}

	s.orders[order.ID] = cloneOrder(order)
	return nil
}

func (s *MemoryStore) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(order), nil
}

func (s *MemoryStore) ListOrders(_ context.Context, filter ListFilter) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []domain.Order{}
	for _, order := range s.orders {
		if filter.TableNumber > 0 && order.TableNumber != filter.TableNumber {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		result = append(result, *cloneOrder(order))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id string, status domain.OrderStatus, updatedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return false, nil
	}
	order.Status = status
	order.UpdatedAt = updatedAt
	return true, nil
}

func (s *MemoryStore) DeleteOrder(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return false, nil
	}
	delete(s.orders, id)
	return true, nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = make([]domain.OrderItem, len(order.Items))
	copy(clone.Items, order.Items)
	return &clone
}
