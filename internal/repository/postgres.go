package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS customers (
	id               uuid PRIMARY KEY,
	first_name       text NOT NULL,
	last_name        text NOT NULL,
	email_address    text NOT NULL UNIQUE,
	phone_number     text NOT NULL,
	physical_address text NOT NULL,
	created_at       timestamptz NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id             uuid PRIMARY KEY,
	name           text NOT NULL,
	description    text NOT NULL,
	price_amount   numeric NOT NULL CHECK (price_amount >= 0),
	price_currency text NOT NULL,
	category       text NOT NULL,
	created_at     timestamptz NOT NULL,
	UNIQUE (name, category)
);

CREATE TABLE IF NOT EXISTS orders (
	id             uuid PRIMARY KEY,
	customer_id    uuid NOT NULL REFERENCES customers (id),
	status         text NOT NULL,
	total_amount   numeric NOT NULL,
	total_currency text NOT NULL,
	created_at     timestamptz NOT NULL,
	updated_at     timestamptz NOT NULL
);

CREATE TABLE IF NOT EXISTS order_products (
	order_id   uuid NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
	product_id uuid NOT NULL REFERENCES products (id),
	PRIMARY KEY (order_id, product_id)
);
`

// InitSchema creates the tables if they do not exist yet. It is idempotent and
// runs on startup, there is no migration framework in scope.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("pool.Exec: %w", err)
	}

	return nil
}
