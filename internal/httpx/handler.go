package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/orderhub/internal/domain"
	"github.com/nikolayk812/orderhub/internal/service"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

// Handler maps the HTTP surface onto the order service. All failure modes
// reduce to two domain error kinds: Conflict (409) and NotFound (404),
// malformed request bodies are 400.
type Handler struct {
	svc *service.Service

	// currency applied when a product request omits one
	defaultCurrency currency.Unit
}

func NewHandler(svc *service.Service, defaultCurrency currency.Unit) *Handler {
	return &Handler{
		svc:             svc,
		defaultCurrency: defaultCurrency,
	}
}

// CreateCustomer derives the customer ID from the email address and rejects
// the request with 409 when that ID already exists.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	customer := domain.Customer{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		EmailAddress:    req.EmailAddress,
		PhoneNumber:     req.PhoneNumber,
		PhysicalAddress: req.PhysicalAddress,
	}

	if err := customer.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	created, err := h.svc.CreateCustomer(r.Context(), customer)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapCustomerToResponse(created))
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := uuid.Parse(chi.URLParam(r, "customer_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_customer_id", err.Error())
		return
	}

	customer, err := h.svc.GetCustomer(r.Context(), customerID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapCustomerToResponse(customer))
}

// CreateProduct derives the product ID from the (name, category) pair and
// rejects the request with 409 when that ID already exists.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	unit := h.defaultCurrency
	if req.Currency != "" {
		var err error
		unit, err = currency.ParseISO(req.Currency)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_currency", err.Error())
			return
		}
	}

	product := domain.Product{
		Name:        req.ProductName,
		Description: req.Description,
		Price:       domain.Money{Amount: req.Price, Currency: unit},
		Category:    req.Category,
	}

	if err := product.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	created, err := h.svc.CreateProduct(r.Context(), product)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapProductToResponse(created))
}

// CreateOrder validates the customer and the full product set before any
// write: a single missing product fails the whole request with 404.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_customer_id", err.Error())
		return
	}

	productIDs, err := parseProductIDs(req.ProductIDs)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_product_id", err.Error())
		return
	}

	order, err := h.svc.CreateOrder(r.Context(), customerID, productIDs)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapOrderToResponse(order))
}

// AddProducts unions the requested IDs with the order's existing set and
// recomputes the total. The union is validated as a whole, so one missing ID
// leaves the order untouched.
func (h *Handler) AddProducts(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_order_id", err.Error())
		return
	}

	var req AddProductsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	productIDs, err := parseProductIDs(req.ProductIDs)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_product_id", err.Error())
		return
	}

	order, err := h.svc.AddProducts(r.Context(), orderID, productIDs)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapOrderToResponse(order))
}

func parseProductIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func mapCustomerToResponse(customer domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:      customer.ID.String(),
		FirstName:       customer.FirstName,
		LastName:        customer.LastName,
		EmailAddress:    customer.EmailAddress,
		PhoneNumber:     customer.PhoneNumber,
		PhysicalAddress: customer.PhysicalAddress,
		CreationDate:    customer.CreatedAt.Format(time.RFC3339),
	}
}

func mapProductToResponse(product domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:   product.ID.String(),
		ProductName: product.Name,
		Description: product.Description,
		Price:       product.Price.Amount,
		Currency:    product.Price.Currency.String(),
		Category:    product.Category,
	}
}

func mapOrderToResponse(order domain.Order) OrderResponse {
	return OrderResponse{
		OrderID:    order.ID.String(),
		CustomerID: order.CustomerID.String(),
		OrderDate:  order.CreatedAt.Format(time.RFC3339),
		TotalPrice: order.TotalPrice.Amount,
		Currency:   order.TotalPrice.Currency.String(),
		Status:     string(order.Status),
		Products: lo.Map(order.ProductIDs, func(id uuid.UUID, _ int) string {
			return id.String()
		}),
	}
}

func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, domain.ErrCurrencyMismatch):
		writeError(w, http.StatusBadRequest, "currency_mismatch", err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
