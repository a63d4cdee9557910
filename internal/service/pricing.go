package service

import (
	"fmt"

	"github.com/nikolayk812/orderhub/internal/domain"
	"golang.org/x/text/currency"
)

// Total sums the current prices of the resolved product set. It is a pure
// function over its input: no memoization, no incremental deltas, the caller
// re-invokes it on every membership change. An empty set totals zero in the
// fallback currency.
func Total(products []domain.Product, fallback currency.Unit) (domain.Money, error) {
	if len(products) == 0 {
		return domain.Zero(fallback), nil
	}

	total := domain.Zero(products[0].Price.Currency)
	for _, product := range products {
		var err error
		total, err = total.Add(product.Price)
		if err != nil {
			return domain.Money{}, fmt.Errorf("product[%s]: %w", product.ID, err)
		}
	}

	return total, nil
}
