package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderhub/internal/domain"
)

type CustomerRepository interface {
	// InsertCustomer is insert-if-absent: it returns domain.ErrConflict when a
	// customer with the same (derived) ID already exists.
	InsertCustomer(ctx context.Context, customer domain.Customer) error

	// GetCustomer returns domain.ErrNotFound when the ID is absent.
	GetCustomer(ctx context.Context, customerID uuid.UUID) (domain.Customer, error)
}
