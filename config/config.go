package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the application configuration, read from the environment.
// A .env file in the working directory is loaded if present.
type Config struct {
	Port string
	DSN  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getenv("PORT", "8080"),
	}

	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		cfg.DSN = dsn
		return cfg, nil
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return nil, fmt.Errorf("DATABASE_DSN or DB_NAME must be set")
	}
	cfg.DSN = fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		getenv("DB_HOST", "localhost"),
		getenv("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		dbName,
		getenv("DB_PORT", "5432"),
		getenv("DB_SSLMODE", "disable"),
	)
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
