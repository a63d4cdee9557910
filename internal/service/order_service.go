// Package service wires identity derivation, referential validation and price
// recomputation over the repository ports. Both store backends sit behind the
// same interfaces, the service does not know which one it talks to.
package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderhub/internal/domain"
	"github.com/nikolayk812/orderhub/internal/events"
	"github.com/nikolayk812/orderhub/internal/port"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

type Service struct {
	customers port.CustomerRepository
	products  port.ProductRepository
	orders    port.OrderRepository
	publisher events.Publisher

	// currency of an empty order's zero total
	defaultCurrency currency.Unit
}

func New(
	customers port.CustomerRepository,
	products port.ProductRepository,
	orders port.OrderRepository,
	publisher events.Publisher,
	defaultCurrency currency.Unit,
) *Service {
	return &Service{
		customers:       customers,
		products:        products,
		orders:          orders,
		publisher:       publisher,
		defaultCurrency: defaultCurrency,
	}
}

// CreateCustomer derives the ID from the email address, so a second request
// with the same email collides in the store instead of creating a duplicate.
func (s *Service) CreateCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	customer.ID = domain.CustomerID(customer.EmailAddress)
	customer.CreatedAt = time.Now().UTC()

	if err := s.customers.InsertCustomer(ctx, customer); err != nil {
		return domain.Customer{}, fmt.Errorf("customers.InsertCustomer: %w", err)
	}

	return customer, nil
}

func (s *Service) GetCustomer(ctx context.Context, customerID uuid.UUID) (domain.Customer, error) {
	customer, err := s.customers.GetCustomer(ctx, customerID)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("customers.GetCustomer: %w", err)
	}

	return customer, nil
}

// CreateProduct derives the ID from the (name, category) pair.
func (s *Service) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	product.ID = domain.ProductID(product.Name, product.Category)
	product.CreatedAt = time.Now().UTC()

	if err := s.products.InsertProduct(ctx, product); err != nil {
		return domain.Product{}, fmt.Errorf("products.InsertProduct: %w", err)
	}

	return product, nil
}

// CreateOrder validates the customer and every requested product before any
// write: if a single product is missing the whole request fails and no order
// is persisted.
func (s *Service) CreateOrder(ctx context.Context, customerID uuid.UUID, productIDs []uuid.UUID) (domain.Order, error) {
	if _, err := s.customers.GetCustomer(ctx, customerID); err != nil {
		return domain.Order{}, fmt.Errorf("customers.GetCustomer: %w", err)
	}

	ids := normalizeSet(productIDs)

	products, err := s.resolveProducts(ctx, ids)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.resolveProducts: %w", err)
	}

	total, err := Total(products, s.defaultCurrency)
	if err != nil {
		return domain.Order{}, fmt.Errorf("Total: %w", err)
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:         uuid.New(), // orders are not idempotent by content
		CustomerID: customerID,
		Status:     domain.OrderStatusPending,
		TotalPrice: total,
		ProductIDs: ids,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.orders.InsertOrder(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("orders.InsertOrder: %w", err)
	}

	s.publish(ctx, events.TypeOrderCreated, order)

	return order, nil
}

// AddProducts unions the requested IDs with the order's existing set,
// re-validates the whole union and recomputes the total from scratch. Adding
// an already-present product is a membership no-op but still triggers the
// recomputation. The union runs inside the store's critical section against
// the membership read there, so two concurrent adds stack instead of the
// later one overwriting the earlier.
func (s *Service) AddProducts(ctx context.Context, orderID uuid.UUID, productIDs []uuid.UUID) (domain.Order, error) {
	updated, err := s.orders.UpdateOrderProducts(ctx, orderID,
		func(ctx context.Context, current []uuid.UUID) ([]uuid.UUID, domain.Money, error) {
			union := normalizeSet(append(current, productIDs...))

			products, err := s.resolveProducts(ctx, union)
			if err != nil {
				return nil, domain.Money{}, fmt.Errorf("s.resolveProducts: %w", err)
			}

			total, err := Total(products, s.defaultCurrency)
			if err != nil {
				return nil, domain.Money{}, fmt.Errorf("Total: %w", err)
			}

			return union, total, nil
		})
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.UpdateOrderProducts: %w", err)
	}

	s.publish(ctx, events.TypeOrderProductsAdded, updated)

	return updated, nil
}

// resolveProducts fails with the first missing ID: whole-operation-fails-if-
// any-item-invalid, no partial application of the valid rest.
func (s *Service) resolveProducts(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	found, err := s.products.GetProducts(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("products.GetProducts: %w", err)
	}

	byID := lo.KeyBy(found, func(p domain.Product) uuid.UUID { return p.ID })

	products := make([]domain.Product, 0, len(productIDs))
	for _, id := range productIDs {
		product, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("product[%s]: %w", id, domain.ErrNotFound)
		}
		products = append(products, product)
	}

	return products, nil
}

func (s *Service) publish(ctx context.Context, eventType string, order domain.Order) {
	if err := s.publisher.PublishOrderEvent(ctx, eventType, order); err != nil {
		slog.WarnContext(ctx, "failed to publish order event",
			"event_type", eventType,
			"order_id", order.ID,
			"error", err,
		)
	}
}

// normalizeSet turns a product-ID list into canonical set form: unique
// membership, sorted byte-wise for stable responses.
func normalizeSet(productIDs []uuid.UUID) []uuid.UUID {
	ids := lo.Uniq(productIDs)
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	return ids
}
