// pkg/config/database.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Backend identifies the destination store implementation
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
)

// StoreConfig holds destination store parameters for either backend
type StoreConfig struct {
	Backend Backend

	// PostgreSQL
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// SQLite
	Path string

	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	// Statement timeout
	StatementTimeout time.Duration
}

// LoadStoreConfig loads destination store configuration from environment
// variables. ETL_STORE_BACKEND selects the backend; sqlite is the default
// because it needs no credentials.
func LoadStoreConfig() (*StoreConfig, error) {
	backend := Backend(getEnv("ETL_STORE_BACKEND", string(BackendSQLite)))

	cfg := &StoreConfig{
		Backend: backend,

		MaxOpenConns:    getEnvAsInt("STORE_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getEnvAsInt("STORE_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: time.Duration(getEnvAsInt("STORE_CONN_MAX_LIFETIME_SECONDS", 1800)) * time.Second,
		ConnMaxIdleTime: time.Duration(getEnvAsInt("STORE_CONN_MAX_IDLE_TIME_SECONDS", 600)) * time.Second,

		StatementTimeout: time.Duration(getEnvAsInt("STORE_STATEMENT_TIMEOUT_SECONDS", 300)) * time.Second,
	}

	switch backend {
	case BackendSQLite:
		cfg.Path = getEnv("SQLITE_PATH", "data/output/retail_data.db")

	case BackendPostgres:
		user := os.Getenv("POSTGRES_USER")
		if user == "" {
			return nil, errors.New("POSTGRES_USER environment variable is required")
		}

		password := os.Getenv("POSTGRES_PASSWORD")
		if password == "" {
			return nil, errors.New("POSTGRES_PASSWORD environment variable is required")
		}

		database := os.Getenv("POSTGRES_DB")
		if database == "" {
			return nil, errors.New("POSTGRES_DB environment variable is required")
		}

		cfg.Host = getEnv("POSTGRES_HOST", "localhost")
		cfg.Port = getEnvAsInt("POSTGRES_PORT", 5432)
		cfg.User = user
		cfg.Password = password
		cfg.Database = database
		cfg.SSLMode = getEnv("POSTGRES_SSLMODE", "disable")

	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}

	return cfg, nil
}

// DriverName returns the database/sql driver name for the backend
func (c *StoreConfig) DriverName() string {
	if c.Backend == BackendPostgres {
		return "postgres"
	}
	return "sqlite"
}

// ConnectionString returns a DSN for the configured backend
func (c *StoreConfig) ConnectionString() string {
	if c.Backend == BackendPostgres {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host,
			c.Port,
			c.User,
			c.Password,
			c.Database,
			c.SSLMode,
		)
	}
	return c.Path
}
