package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Product price is fixed post-creation, re-creating a product with the same
// (name, category) pair is rejected as a conflict.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       Money
	Category    string

	CreatedAt time.Time
}

func (p Product) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("product_name is required")
	}
	if p.Category == "" {
		return fmt.Errorf("category is required")
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("price must be non-negative")
	}
	return nil
}
