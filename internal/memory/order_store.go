package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderhub/internal/domain"
	"github.com/nikolayk812/orderhub/internal/port"
)

type orderStore struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]domain.Order
}

func NewOrderStore() port.OrderRepository {
	return &orderStore{
		orders: make(map[uuid.UUID]domain.Order),
	}
}

func (s *orderStore) InsertOrder(_ context.Context, order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[order.ID]; exists {
		return fmt.Errorf("order[%s]: %w", order.ID, domain.ErrConflict)
	}

	order.ProductIDs = slices.Clone(order.ProductIDs)
	s.orders[order.ID] = order
	return nil
}

func (s *orderStore) GetOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, exists := s.orders[orderID]
	if !exists {
		return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}

	// callers must not alias the stored set
	order.ProductIDs = slices.Clone(order.ProductIDs)
	return order, nil
}

// UpdateOrderProducts holds the write lock from the membership read through the
// swap, so concurrent updates for the same order cannot interleave: each call
// hands fn the set the previous call persisted.
func (s *orderStore) UpdateOrderProducts(ctx context.Context, orderID uuid.UUID, fn port.UpdateProductsFunc) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, exists := s.orders[orderID]
	if !exists {
		return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
	}

	productIDs, total, err := fn(ctx, slices.Clone(order.ProductIDs))
	if err != nil {
		return domain.Order{}, fmt.Errorf("fn order[%s]: %w", orderID, err)
	}

	order.ProductIDs = slices.Clone(productIDs)
	order.TotalPrice = total
	order.UpdatedAt = time.Now().UTC()
	s.orders[orderID] = order

	order.ProductIDs = slices.Clone(order.ProductIDs)
	return order, nil
}
