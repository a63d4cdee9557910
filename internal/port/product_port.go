package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderhub/internal/domain"
)

type ProductRepository interface {
	// InsertProduct is insert-if-absent: it returns domain.ErrConflict when a
	// product with the same (derived) ID already exists.
	InsertProduct(ctx context.Context, product domain.Product) error

	// GetProduct returns domain.ErrNotFound when the ID is absent.
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)

	// GetProducts resolves a batch of product IDs in one round-trip.
	// The result may be shorter than the input when some IDs do not exist,
	// callers detect missing products by comparing the two.
	GetProducts(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error)
}
