package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/orderhub/internal/domain"
	"github.com/nikolayk812/orderhub/internal/port"
	"github.com/nikolayk812/orderhub/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"golang.org/x/text/currency"
)

type orderRepositorySuite struct {
	suite.Suite

	pool      *pgxpool.Pool
	repo      port.OrderRepository
	customers port.CustomerRepository
	products  port.ProductRepository
	container testcontainers.Container
}

// entry point to run the tests in the suite
func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(orderRepositorySuite))
}

// before all tests in the suite
func (suite *orderRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.NoError(err)

	suite.NoError(repository.InitSchema(ctx, suite.pool))

	suite.repo = repository.NewOrder(suite.pool)
	suite.customers = repository.NewCustomer(suite.pool)
	suite.products = repository.NewProduct(suite.pool)
}

// after all tests in the suite
func (suite *orderRepositorySuite) TearDownSuite() {
	ctx := suite.T().Context()

	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(ctx))
	}
}

func (suite *orderRepositorySuite) TestInsertOrder() {
	t := suite.T()
	ctx := t.Context()

	order := suite.makeOrder(2)

	require.NoError(t, suite.repo.InsertOrder(ctx, order))

	actual, err := suite.repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assertOrder(t, order, actual)
}

func (suite *orderRepositorySuite) TestInsertOrder_Conflict() {
	t := suite.T()
	ctx := t.Context()

	order := suite.makeOrder(1)
	require.NoError(t, suite.repo.InsertOrder(ctx, order))
	require.ErrorIs(t, suite.repo.InsertOrder(ctx, order), domain.ErrConflict)
}

func (suite *orderRepositorySuite) TestInsertOrder_NoProducts() {
	t := suite.T()
	ctx := t.Context()

	// an order with an empty product set is allowed, total is zero
	order := suite.makeOrder(0)
	require.NoError(t, suite.repo.InsertOrder(ctx, order))

	actual, err := suite.repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, actual.ProductIDs)
	assert.True(t, actual.TotalPrice.Amount.IsZero())
}

func (suite *orderRepositorySuite) TestGetOrder_NotFound() {
	t := suite.T()

	_, err := suite.repo.GetOrder(t.Context(), uuid.MustParse(gofakeit.UUID()))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *orderRepositorySuite) TestUpdateOrderProducts() {
	t := suite.T()
	ctx := t.Context()

	order := suite.makeOrder(1)
	require.NoError(t, suite.repo.InsertOrder(ctx, order))

	extra := fakeProduct()
	require.NoError(t, suite.products.InsertProduct(ctx, extra))

	var newTotal domain.Money
	updated, err := suite.repo.UpdateOrderProducts(ctx, order.ID,
		func(_ context.Context, current []uuid.UUID) ([]uuid.UUID, domain.Money, error) {
			// fn sees the persisted membership, not a caller-side snapshot
			assert.ElementsMatch(t, order.ProductIDs, current)

			total, err := order.TotalPrice.Add(extra.Price)
			if err != nil {
				return nil, domain.Money{}, err
			}

			newTotal = total
			return append(current, extra.ID), total, nil
		})
	require.NoError(t, err)
	assert.ElementsMatch(t, append(order.ProductIDs, extra.ID), updated.ProductIDs)

	actual, err := suite.repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, updated.ProductIDs, actual.ProductIDs)
	assert.True(t, actual.TotalPrice.Amount.Equal(newTotal.Amount),
		"got %s, want %s", actual.TotalPrice.Amount, newTotal.Amount)
	assert.True(t, actual.UpdatedAt.After(order.UpdatedAt))
}

func (suite *orderRepositorySuite) TestUpdateOrderProducts_Errors() {
	t := suite.T()
	ctx := t.Context()

	keep := func(_ context.Context, current []uuid.UUID) ([]uuid.UUID, domain.Money, error) {
		return current, domain.Zero(currency.MustParseISO("USD")), nil
	}

	_, err := suite.repo.UpdateOrderProducts(ctx, uuid.MustParse(gofakeit.UUID()), keep)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = suite.repo.UpdateOrderProducts(ctx, uuid.Nil, keep)
	require.EqualError(t, err, "orderID is empty")
}

func (suite *orderRepositorySuite) TestUpdateOrderProducts_FnErrorRollsBack() {
	t := suite.T()
	ctx := t.Context()

	order := suite.makeOrder(2)
	require.NoError(t, suite.repo.InsertOrder(ctx, order))

	fnErr := errors.New("pricing failed")
	_, err := suite.repo.UpdateOrderProducts(ctx, order.ID,
		func(_ context.Context, _ []uuid.UUID) ([]uuid.UUID, domain.Money, error) {
			return nil, domain.Money{}, fnErr
		})
	require.ErrorIs(t, err, fnErr)

	actual, err := suite.repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, order.ProductIDs, actual.ProductIDs)
}

// Two concurrent updates adding distinct products to the same order: the row
// lock serializes them, the second one unions against the first one's result,
// both additions survive.
func (suite *orderRepositorySuite) TestUpdateOrderProducts_ConcurrentAdds() {
	t := suite.T()
	ctx := t.Context()

	order := suite.makeOrder(1)
	require.NoError(t, suite.repo.InsertOrder(ctx, order))

	extras := []domain.Product{fakeProduct(), fakeProduct()}
	for _, extra := range extras {
		require.NoError(t, suite.products.InsertProduct(ctx, extra))
	}

	var wg sync.WaitGroup
	for _, extra := range extras {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := suite.repo.UpdateOrderProducts(ctx, order.ID,
				func(_ context.Context, current []uuid.UUID) ([]uuid.UUID, domain.Money, error) {
					total, err := order.TotalPrice.Add(extra.Price)
					if err != nil {
						return nil, domain.Money{}, err
					}
					return append(current, extra.ID), total, nil
				})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	actual, err := suite.repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]uuid.UUID{order.ProductIDs[0], extras[0].ID, extras[1].ID},
		actual.ProductIDs)
}

// makeOrder persists a customer and n products, then builds an unsaved order
// referencing them, the schema enforces both foreign keys.
func (suite *orderRepositorySuite) makeOrder(productCount int) domain.Order {
	t := suite.T()
	ctx := t.Context()

	customer := fakeCustomer()
	require.NoError(t, suite.customers.InsertCustomer(ctx, customer))

	products := make([]domain.Product, 0, productCount)
	for range productCount {
		product := fakeProduct()
		require.NoError(t, suite.products.InsertProduct(ctx, product))
		products = append(products, product)
	}

	order, err := fakeOrder(customer.ID, products)
	require.NoError(t, err)
	return order
}

func assertOrder(t *testing.T, expected, actual domain.Order) {
	t.Helper()

	opts := cmp.Options{
		currencyComparer(),
		cmpopts.SortSlices(func(a, b uuid.UUID) bool { return a.String() < b.String() }),
		cmpopts.EquateEmpty(),
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.False(t, actual.CreatedAt.IsZero())
	assert.False(t, actual.UpdatedAt.IsZero())
	assert.True(t, actual.TotalPrice.Amount.GreaterThanOrEqual(decimal.Zero))
}
