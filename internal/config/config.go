package config

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/text/currency"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	HTTPAddr    string
	Store       string // memory | postgres
	DatabaseURL string
	AMQPURL     string // empty disables event publishing

	// Currency denominates the zero total of an empty order and products
	// created without an explicit currency.
	Currency currency.Unit
}

func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:    getEnv("ORDERHUB_HTTP_ADDR", ":8080"),
		Store:       getEnv("ORDERHUB_STORE", StoreMemory),
		DatabaseURL: os.Getenv("ORDERHUB_DATABASE_URL"),
		AMQPURL:     os.Getenv("ORDERHUB_AMQP_URL"),
	}

	unit, err := currency.ParseISO(getEnv("ORDERHUB_CURRENCY", "USD"))
	if err != nil {
		return Config{}, fmt.Errorf("currency.ParseISO: %w", err)
	}
	cfg.Currency = unit

	switch cfg.Store {
	case StoreMemory:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("ORDERHUB_DATABASE_URL is required for the postgres store")
		}
	default:
		return Config{}, fmt.Errorf("unknown store %q", cfg.Store)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
