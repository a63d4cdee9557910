// Package memory provides map-backed implementations of the repository ports.
// Stores are explicitly owned instances injected into the service layer, with
// lifecycle equal to the process lifetime. All mutations are immediately
// visible to subsequent reads.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderhub/internal/domain"
	"github.com/nikolayk812/orderhub/internal/port"
)

type customerStore struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]domain.Customer
}

func NewCustomerStore() port.CustomerRepository {
	return &customerStore{
		customers: make(map[uuid.UUID]domain.Customer),
	}
}

func (s *customerStore) InsertCustomer(_ context.Context, customer domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customers[customer.ID]; exists {
		return fmt.Errorf("customer[%s]: %w", customer.ID, domain.ErrConflict)
	}

	s.customers[customer.ID] = customer
	return nil
}

func (s *customerStore) GetCustomer(_ context.Context, customerID uuid.UUID) (domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, exists := s.customers[customerID]
	if !exists {
		return domain.Customer{}, fmt.Errorf("customer[%s]: %w", customerID, domain.ErrNotFound)
	}

	return customer, nil
}
