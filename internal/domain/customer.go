package domain

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// Customer is immutable once created: there is no update endpoint and the ID
// is derived from the email address, so the same email always maps to the
// same record.
type Customer struct {
	ID              uuid.UUID
	FirstName       string
	LastName        string
	EmailAddress    string
	PhoneNumber     string
	PhysicalAddress string

	CreatedAt time.Time
}

func (c Customer) Validate() error {
	if c.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}
	if c.LastName == "" {
		return fmt.Errorf("last_name is required")
	}
	if _, err := mail.ParseAddress(c.EmailAddress); err != nil {
		return fmt.Errorf("email_address[%s] is not valid: %w", c.EmailAddress, err)
	}
	return nil
}
