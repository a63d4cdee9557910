package repository_test

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/orderhub/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/text/currency"
)

func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	container, err := tcpostgres.Run(ctx, "postgres:17-alpine",
		tcpostgres.WithDatabase("orderhub"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	return container, connStr, nil
}

func fakeCustomer() domain.Customer {
	email := gofakeit.Email()
	return domain.Customer{
		ID:              domain.CustomerID(email),
		FirstName:       gofakeit.FirstName(),
		LastName:        gofakeit.LastName(),
		EmailAddress:    email,
		PhoneNumber:     gofakeit.Phone(),
		PhysicalAddress: gofakeit.Address().Address,
		CreatedAt:       time.Now().UTC().Truncate(time.Microsecond),
	}
}

func fakeProduct() domain.Product {
	// suffix keeps (name, category) unique, gofakeit's product vocabulary is small
	name := gofakeit.ProductName() + " " + gofakeit.LetterN(8)
	category := gofakeit.ProductCategory()

	return domain.Product{
		ID:          domain.ProductID(name, category),
		Name:        name,
		Description: gofakeit.ProductDescription(),
		Price: domain.Money{
			Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)),
			Currency: currency.MustParseISO("USD"),
		},
		Category:  category,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func fakeOrder(customerID uuid.UUID, products []domain.Product) (domain.Order, error) {
	total := domain.Zero(currency.MustParseISO("USD"))

	productIDs := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		var err error
		total, err = total.Add(p.Price)
		if err != nil {
			return domain.Order{}, err
		}
		productIDs = append(productIDs, p.ID)
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	return domain.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		Status:     domain.OrderStatusPending,
		TotalPrice: total,
		ProductIDs: productIDs,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
