// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the application configuration. It is passed explicitly
// into the pipeline; there is no ambient global state.
type Config struct {
	// Input files
	InputDir         string
	CustomersFile    string
	ProductsFile     string
	TransactionsFile string

	// Destination store
	Store *StoreConfig

	// Optional revenue CSV export; empty disables the export
	RevenueExportPath string

	// Loading
	BatchSize int

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	inputDir := getEnv("ETL_INPUT_DIR", "data/input")

	cfg := &Config{
		InputDir:          inputDir,
		CustomersFile:     getEnv("ETL_CUSTOMERS_FILE", filepath.Join(inputDir, "customers.csv")),
		ProductsFile:      getEnv("ETL_PRODUCTS_FILE", filepath.Join(inputDir, "products.csv")),
		TransactionsFile:  getEnv("ETL_TRANSACTIONS_FILE", filepath.Join(inputDir, "transactions.csv")),
		RevenueExportPath: getEnv("ETL_REVENUE_EXPORT", ""),
		BatchSize:         getEnvAsInt("ETL_BATCH_SIZE", 1000),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
	}

	storeCfg, err := LoadStoreConfig()
	if err != nil {
		return nil, errors.New("failed to load store configuration: " + err.Error())
	}
	cfg.Store = storeCfg

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.CustomersFile == "" || c.ProductsFile == "" || c.TransactionsFile == "" {
		return errors.New("all three input file paths are required")
	}

	if c.Store == nil {
		return errors.New("store configuration is required")
	}

	if c.BatchSize <= 0 {
		return errors.New("batch size must be positive")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
