package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/customers", handler.CreateCustomer)
	r.Get("/customers/{customer_id}", handler.GetCustomer)
	r.Post("/product", handler.CreateProduct)
	r.Post("/order", handler.CreateOrder)
	r.Post("/order/{order_id}/add-products", handler.AddProducts)
	return r
}
