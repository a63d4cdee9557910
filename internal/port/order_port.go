package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderhub/internal/domain"
)

// UpdateProductsFunc computes an order's next product-ID set and total from
// its current membership. The store calls it while holding its write lock (or
// the locked row's transaction), so the input can never be a stale snapshot.
type UpdateProductsFunc func(ctx context.Context, current []uuid.UUID) ([]uuid.UUID, domain.Money, error)

type OrderRepository interface {
	InsertOrder(ctx context.Context, order domain.Order) error

	// GetOrder returns domain.ErrNotFound when the ID is absent.
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)

	// UpdateOrderProducts atomically swaps the order's product-ID set and
	// cached total: read current membership, apply fn, persist its result, all
	// in one critical section. Concurrent calls for the same order are
	// serialized, each sees the previous one's membership. Returns the updated
	// order, or domain.ErrNotFound when the order is absent.
	UpdateOrderProducts(ctx context.Context, orderID uuid.UUID, fn UpdateProductsFunc) (domain.Order, error)
}
