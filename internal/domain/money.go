package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// ErrCurrencyMismatch marks a request-validation failure, not a third domain
// error kind: an order total is always denominated in a single currency.
var ErrCurrencyMismatch = errors.New("currency mismatch")

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// Zero returns a zero amount in the given currency.
func Zero(unit currency.Unit) Money {
	return Money{Amount: decimal.Zero, Currency: unit}
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%s vs %s: %w", m.Currency, other.Currency, ErrCurrencyMismatch)
	}

	return Money{
		Amount:   m.Amount.Add(other.Amount),
		Currency: m.Currency,
	}, nil
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.String(), m.Currency.String())
}
