package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderhub/internal/domain"
	"github.com/nikolayk812/orderhub/internal/port"
)

type productStore struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
}

func NewProductStore() port.ProductRepository {
	return &productStore{
		products: make(map[uuid.UUID]domain.Product),
	}
}

func (s *productStore) InsertProduct(_ context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.ID]; exists {
		return fmt.Errorf("product[%s]: %w", product.ID, domain.ErrConflict)
	}

	s.products[product.ID] = product
	return nil
}

func (s *productStore) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, exists := s.products[productID]
	if !exists {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}

	return product, nil
}

// GetProducts skips missing IDs, the caller compares input and output to spot them.
func (s *productStore) GetProducts(_ context.Context, productIDs []uuid.UUID) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, 0, len(productIDs))
	for _, id := range productIDs {
		if product, exists := s.products[id]; exists {
			products = append(products, product)
		}
	}

	return products, nil
}
