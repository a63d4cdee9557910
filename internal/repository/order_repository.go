package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/orderhub/internal/domain"
	"github.com/nikolayk812/orderhub/internal/port"
	"github.com/shopspring/decimal"
)

type orderRepository struct {
	db dbtx
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{db: pool}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{db: tx}
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) error {
	if err := r.withTx(ctx, func(tx pgx.Tx) error {
		query := `INSERT INTO orders (id, customer_id, status, total_amount, total_currency, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT DO NOTHING`

		cmdTag, err := tx.Exec(ctx, query,
			order.ID,
			order.CustomerID,
			string(order.Status),
			order.TotalPrice.Amount,
			order.TotalPrice.Currency.String(),
			order.CreatedAt,
			order.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("tx.Exec: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("order[%s]: %w", order.ID, domain.ErrConflict)
		}

		if err := insertOrderProducts(ctx, tx, order.ID, order.ProductIDs); err != nil {
			return fmt.Errorf("insertOrderProducts: %w", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("r.withTx: %w", err)
	}

	return nil
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	order, err := r.withTxOrder(ctx, func(tx pgx.Tx) (domain.Order, error) {
		return getOrder(ctx, tx, orderID, false)
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.withTxOrder: %w", err)
	}

	return order, nil
}

// UpdateOrderProducts reads the current membership, applies fn, and swaps the
// set and the cached total, all in one transaction. The FOR UPDATE row lock
// serializes concurrent updates for the same order, so fn never works from a
// stale membership snapshot.
func (r *orderRepository) UpdateOrderProducts(ctx context.Context, orderID uuid.UUID, fn port.UpdateProductsFunc) (domain.Order, error) {
	var o domain.Order

	if orderID == uuid.Nil {
		return o, fmt.Errorf("orderID is empty")
	}

	order, err := r.withTxOrder(ctx, func(tx pgx.Tx) (domain.Order, error) {
		order, err := getOrder(ctx, tx, orderID, true)
		if err != nil {
			return o, fmt.Errorf("getOrder: %w", err)
		}

		productIDs, total, err := fn(ctx, order.ProductIDs)
		if err != nil {
			return o, fmt.Errorf("fn: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM order_products WHERE order_id = $1`, orderID); err != nil {
			return o, fmt.Errorf("tx.Exec delete: %w", err)
		}

		if err := insertOrderProducts(ctx, tx, orderID, productIDs); err != nil {
			return o, fmt.Errorf("insertOrderProducts: %w", err)
		}

		updatedAt := time.Now().UTC()
		query := `UPDATE orders SET total_amount = $2, total_currency = $3, updated_at = $4 WHERE id = $1`
		if _, err := tx.Exec(ctx, query, orderID, total.Amount, total.Currency.String(), updatedAt); err != nil {
			return o, fmt.Errorf("tx.Exec update: %w", err)
		}

		order.ProductIDs = productIDs
		order.TotalPrice = total
		order.UpdatedAt = updatedAt
		return order, nil
	})
	if err != nil {
		return o, fmt.Errorf("r.withTxOrder: %w", err)
	}

	return order, nil
}

// getOrder runs inside the caller's transaction; forUpdate locks the order row
// until the transaction ends.
func getOrder(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, forUpdate bool) (domain.Order, error) {
	var (
		o             domain.Order
		order         domain.Order
		status        string
		totalAmount   decimal.Decimal
		totalCurrency string
	)

	query := `SELECT id, customer_id, status, total_amount, total_currency, created_at, updated_at
		FROM orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	err := tx.QueryRow(ctx, query, orderID).Scan(
		&order.ID,
		&order.CustomerID,
		&status,
		&totalAmount,
		&totalCurrency,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return o, fmt.Errorf("order[%s]: %w", orderID, domain.ErrNotFound)
		}
		return o, fmt.Errorf("tx.QueryRow: %w", err)
	}

	order.Status, err = domain.ToOrderStatus(status)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", status, err)
	}

	order.TotalPrice, err = mapPriceToMoney(totalAmount, totalCurrency)
	if err != nil {
		return o, fmt.Errorf("mapPriceToMoney: %w", err)
	}

	order.ProductIDs, err = getOrderProducts(ctx, tx, orderID)
	if err != nil {
		return o, fmt.Errorf("getOrderProducts: %w", err)
	}

	return order, nil
}

// TODO: batch with pgx.CopyFrom once membership sets grow beyond a handful of rows
func insertOrderProducts(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, productIDs []uuid.UUID) error {
	for _, productID := range productIDs {
		query := `INSERT INTO order_products (order_id, product_id) VALUES ($1, $2)`
		if _, err := tx.Exec(ctx, query, orderID, productID); err != nil {
			return fmt.Errorf("tx.Exec[%s]: %w", productID, err)
		}
	}

	return nil
}

func getOrderProducts(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := tx.Query(ctx, `SELECT product_id FROM order_products WHERE order_id = $1 ORDER BY product_id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("tx.Query: %w", err)
	}
	defer rows.Close()

	var productIDs []uuid.UUID
	for rows.Next() {
		var productID uuid.UUID
		if err := rows.Scan(&productID); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}
		productIDs = append(productIDs, productID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return productIDs, nil
}

func (r *orderRepository) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	_, err := withTx(ctx, r.db, func(tx pgx.Tx) (struct{}, error) {
		err := fn(tx)
		return struct{}{}, err
	})
	return err
}

func (r *orderRepository) withTxOrder(ctx context.Context, fn func(tx pgx.Tx) (domain.Order, error)) (domain.Order, error) {
	return withTx(ctx, r.db, fn)
}
