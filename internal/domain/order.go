package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order references its products by ID only. ProductIDs is a set: membership
// stays unique regardless of how many times a product was added. TotalPrice is
// a cached derived value, recomputed from current product prices on every
// membership change.
type Order struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Status     OrderStatus
	TotalPrice Money
	ProductIDs []uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}
