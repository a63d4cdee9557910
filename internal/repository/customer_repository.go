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
)

type customerRepository struct {
	db dbtx
}

func NewCustomer(pool *pgxpool.Pool) port.CustomerRepository {
	return &customerRepository{db: pool}
}

func NewCustomerWithTx(tx pgx.Tx) port.CustomerRepository {
	return &customerRepository{db: tx}
}

func (r *customerRepository) InsertCustomer(ctx context.Context, customer domain.Customer) error {
	query := `INSERT INTO customers (id, first_name, last_name, email_address, phone_number, physical_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT DO NOTHING`

	cmdTag, err := r.db.Exec(ctx, query,
		customer.ID,
		customer.FirstName,
		customer.LastName,
		customer.EmailAddress,
		customer.PhoneNumber,
		customer.PhysicalAddress,
		customer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("db.Exec: %w", err)
	}

	// ON CONFLICT DO NOTHING swallows the duplicate row, zero rows affected
	// means the derived ID (or the email) already exists.
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("customer[%s]: %w", customer.ID, domain.ErrConflict)
	}

	return nil
}

func (r *customerRepository) GetCustomer(ctx context.Context, customerID uuid.UUID) (domain.Customer, error) {
	var c domain.Customer

	query := `SELECT id, first_name, last_name, email_address, phone_number, physical_address, created_at
		FROM customers WHERE id = $1`

	err := r.db.QueryRow(ctx, query, customerID).Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.EmailAddress,
		&c.PhoneNumber,
		&c.PhysicalAddress,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c, fmt.Errorf("customer[%s]: %w", customerID, domain.ErrNotFound)
		}
		return c, fmt.Errorf("db.QueryRow: %w", err)
	}

	return c, nil
}
