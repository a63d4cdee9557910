package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/orderhub/internal/domain"
	"github.com/nikolayk812/orderhub/internal/port"
	"github.com/nikolayk812/orderhub/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"go.uber.org/goleak"
)

type customerRepositorySuite struct {
	suite.Suite

	pool      *pgxpool.Pool
	repo      port.CustomerRepository
	container testcontainers.Container
}

// entry point to run the tests in the suite
func TestCustomerRepositorySuite(t *testing.T) {
	// Verifies no leaks after all tests in the suite run.
	defer goleak.VerifyNone(t)

	suite.Run(t, new(customerRepositorySuite))
}

// before all tests in the suite
func (suite *customerRepositorySuite) SetupSuite() {
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

	suite.repo = repository.NewCustomer(suite.pool)
}

// after all tests in the suite
func (suite *customerRepositorySuite) TearDownSuite() {
	ctx := suite.T().Context()

	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(ctx))
	}
}

func (suite *customerRepositorySuite) TestInsertCustomer() {
	t := suite.T()
	ctx := t.Context()

	customer := fakeCustomer()

	require.NoError(t, suite.repo.InsertCustomer(ctx, customer))

	actual, err := suite.repo.GetCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assertCustomer(t, customer, actual)
}

func (suite *customerRepositorySuite) TestInsertCustomer_Conflict() {
	t := suite.T()
	ctx := t.Context()

	customer := fakeCustomer()
	require.NoError(t, suite.repo.InsertCustomer(ctx, customer))

	// same derived ID: conflict, first record survives
	duplicate := fakeCustomer()
	duplicate.ID = customer.ID
	require.ErrorIs(t, suite.repo.InsertCustomer(ctx, duplicate), domain.ErrConflict)

	actual, err := suite.repo.GetCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assertCustomer(t, customer, actual)
}

func (suite *customerRepositorySuite) TestInsertCustomer_EmailUnique() {
	t := suite.T()
	ctx := t.Context()

	customer := fakeCustomer()
	require.NoError(t, suite.repo.InsertCustomer(ctx, customer))

	// different ID, same email: the unique index still rejects it
	sameEmail := customer
	sameEmail.ID = uuid.New()
	require.ErrorIs(t, suite.repo.InsertCustomer(ctx, sameEmail), domain.ErrConflict)
}

func (suite *customerRepositorySuite) TestGetCustomer_NotFound() {
	t := suite.T()

	_, err := suite.repo.GetCustomer(t.Context(), uuid.MustParse(gofakeit.UUID()))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func assertCustomer(t *testing.T, expected, actual domain.Customer) {
	t.Helper()

	diff := cmp.Diff(expected, actual)
	assert.Empty(t, diff)
}
