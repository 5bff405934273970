// pkg/store/store.go
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/David-Botos/retail-etl/pkg/model"
)

// Store defines the destination-store interface consumed by the pipeline.
// Table contents are replaced wholesale on every run, which is what makes
// re-running the pipeline idempotent at the table level.
type Store interface {
	// EnsureSchema creates the destination tables and indexes if absent
	EnsureSchema(ctx context.Context) error

	// Replace* atomically swap the full contents of one table
	ReplaceCustomers(ctx context.Context, customers []model.CustomerRecord) (int64, error)
	ReplaceProducts(ctx context.Context, products []model.ProductRecord) (int64, error)
	ReplaceTransactions(ctx context.Context, transactions []model.TransactionRecord) (int64, error)
	ReplaceRevenue(ctx context.Context, revenue []model.CustomerRevenueRecord) (int64, error)

	// Summary reads row counts and revenue statistics back from the store
	Summary(ctx context.Context) (model.StoreSummary, error)

	// Close closes the connection and releases resources
	Close() error
}

// PingWithTimeout attempts to ping the store with a timeout
func PingWithTimeout(ctx context.Context, db *sqlx.DB, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping failed after %v: %w", timeout, err)
	}
	return nil
}

// ApplyConnectionSettings configures database connection pool settings
func ApplyConnectionSettings(db *sqlx.DB, maxOpen, maxIdle int, maxLifetime, maxIdleTime time.Duration) {
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	if maxLifetime > 0 {
		db.SetConnMaxLifetime(maxLifetime)
	}
	if maxIdleTime > 0 {
		db.SetConnMaxIdleTime(maxIdleTime)
	}
}

// LogConnectionStats logs connection pool statistics
func LogConnectionStats(logger *zap.Logger, name string, db *sqlx.DB) {
	stats := db.Stats()
	logger.Debug("Connection pool stats",
		zap.String("database", name),
		zap.Int("open_connections", stats.OpenConnections),
		zap.Int("in_use", stats.InUse),
		zap.Int("idle", stats.Idle),
		zap.Int("max_open", stats.MaxOpenConnections))
}
