package httpx

import "github.com/shopspring/decimal"

type CreateCustomerRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	EmailAddress    string `json:"email_address"`
	PhoneNumber     string `json:"phone_number"`
	PhysicalAddress string `json:"physical_address"`
}

type CustomerResponse struct {
	CustomerID      string `json:"customer_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	EmailAddress    string `json:"email_address"`
	PhoneNumber     string `json:"phone_number"`
	PhysicalAddress string `json:"physical_address"`
	CreationDate    string `json:"creation_date"`
}

type CreateProductRequest struct {
	ProductName string          `json:"product_name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency,omitempty"` // ISO-4217, defaults to the server currency
	Category    string          `json:"category"`
}

type ProductResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category"`
}

type CreateOrderRequest struct {
	CustomerID string   `json:"customer_id"`
	ProductIDs []string `json:"product_ids"`
}

type AddProductsRequest struct {
	ProductIDs []string `json:"product_ids"`
}

// OrderResponse lists product identifiers, not full product objects.
type OrderResponse struct {
	OrderID    string          `json:"order_id"`
	CustomerID string          `json:"customer_id"`
	OrderDate  string          `json:"order_date"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Currency   string          `json:"currency"`
	Status     string          `json:"status"`
	Products   []string        `json:"products"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
