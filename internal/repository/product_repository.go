package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/orderhub/internal/domain"
	"github.com/nikolayk812/orderhub/internal/port"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type productRepository struct {
	db dbtx
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{db: pool}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{db: tx}
}

func (r *productRepository) InsertProduct(ctx context.Context, product domain.Product) error {
	query := `INSERT INTO products (id, name, description, price_amount, price_currency, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT DO NOTHING`

	cmdTag, err := r.db.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price.Amount,
		product.Price.Currency.String(),
		product.Category,
		product.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product[%s]: %w", product.ID, domain.ErrConflict)
	}

	return nil
}

func (r *productRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	var (
		p             domain.Product
		priceAmount   decimal.Decimal
		priceCurrency string
	)

	query := `SELECT id, name, description, price_amount, price_currency, category, created_at
		FROM products WHERE id = $1`

	err := r.db.QueryRow(ctx, query, productID).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&priceAmount,
		&priceCurrency,
		&p.Category,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
		}
		return p, fmt.Errorf("db.QueryRow: %w", err)
	}

	price, err := mapPriceToMoney(priceAmount, priceCurrency)
	if err != nil {
		return p, fmt.Errorf("mapPriceToMoney: %w", err)
	}
	p.Price = price

	return p, nil
}

// GetProducts resolves a batch of IDs in one query, missing IDs are simply
// absent from the result.
func (r *productRepository) GetProducts(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	ids := lo.Map(productIDs, func(id uuid.UUID, _ int) string {
		return id.String()
	})

	query := `SELECT id, name, description, price_amount, price_currency, category, created_at
		FROM products WHERE id = ANY($1::uuid[])`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("db.Query: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var (
			p             domain.Product
			priceAmount   decimal.Decimal
			priceCurrency string
		)

		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&priceAmount,
			&priceCurrency,
			&p.Category,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		price, err := mapPriceToMoney(priceAmount, priceCurrency)
		if err != nil {
			return nil, fmt.Errorf("mapPriceToMoney: %w", err)
		}
		p.Price = price

		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return products, nil
}

func mapPriceToMoney(amount decimal.Decimal, currencyCode string) (domain.Money, error) {
	parsedCurrency, err := currency.ParseISO(currencyCode)
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}

	return domain.Money{Amount: amount, Currency: parsedCurrency}, nil
}
