package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/orderhub/internal/config"
	"github.com/nikolayk812/orderhub/internal/events"
	"github.com/nikolayk812/orderhub/internal/httpx"
	"github.com/nikolayk812/orderhub/internal/memory"
	"github.com/nikolayk812/orderhub/internal/port"
	"github.com/nikolayk812/orderhub/internal/repository"
	"github.com/nikolayk812/orderhub/internal/service"
)

func main() {
	initLogger()

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	customers, products, orders, cleanup, err := buildStores(ctx, cfg)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	publisher, closePublisher, err := buildPublisher(cfg)
	if err != nil {
		return err
	}
	if closePublisher != nil {
		defer closePublisher()
	}

	svc := service.New(customers, products, orders, publisher, cfg.Currency)
	handler := httpx.NewHandler(svc, cfg.Currency)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpx.NewRouter(handler),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.HTTPAddr, "store", cfg.Store)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func buildStores(ctx context.Context, cfg config.Config) (
	port.CustomerRepository, port.ProductRepository, port.OrderRepository, func(), error,
) {
	if cfg.Store == config.StoreMemory {
		return memory.NewCustomerStore(), memory.NewProductStore(), memory.NewOrderStore(), nil, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	if err := repository.InitSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, nil, nil, err
	}

	return repository.NewCustomer(pool), repository.NewProduct(pool), repository.NewOrder(pool), pool.Close, nil
}

func buildPublisher(cfg config.Config) (events.Publisher, func() error, error) {
	if cfg.AMQPURL == "" {
		return events.NopPublisher{}, nil, nil
	}

	return events.NewAMQPPublisher(cfg.AMQPURL)
}

func initLogger() {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
