// pkg/store/factory.go
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/David-Botos/retail-etl/pkg/config"
)

// NewStore opens a destination store for the configured backend and verifies
// the connection. A failure here is fatal for the run.
func NewStore(ctx context.Context, cfg *config.StoreConfig, batchSize int, logger *zap.Logger) (Store, error) {
	logger = logger.Named("store")

	if cfg.Backend == config.BackendSQLite {
		// The SQLite file's directory must exist before the driver can
		// create the database.
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create store directory %s: %w", dir, err)
			}
		}
	}

	logger.Info("Connecting to destination store",
		zap.String("backend", string(cfg.Backend)),
		zap.String("dsn", redactedDSN(cfg)))

	db, err := sqlx.Open(cfg.DriverName(), cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}

	ApplyConnectionSettings(db, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime, cfg.ConnMaxIdleTime)

	if err := PingWithTimeout(ctx, db, 5*time.Second); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to %s store: %w", cfg.Backend, err)
	}

	if cfg.Backend == config.BackendPostgres && cfg.StatementTimeout > 0 {
		_, err = db.ExecContext(ctx,
			fmt.Sprintf("SET statement_timeout = %d", cfg.StatementTimeout.Milliseconds()))
		if err != nil {
			logger.Warn("Failed to set statement timeout", zap.Error(err))
		}
	}

	name := cfg.Database
	if cfg.Backend == config.BackendSQLite {
		name = cfg.Path
	}

	return &SQLStore{
		db:        db,
		logger:    logger,
		name:      name,
		batchSize: batchSize,
	}, nil
}

// redactedDSN returns a loggable connection description without credentials
func redactedDSN(cfg *config.StoreConfig) string {
	if cfg.Backend == config.BackendPostgres {
		return fmt.Sprintf("host=%s port=%d dbname=%s", cfg.Host, cfg.Port, cfg.Database)
	}
	return cfg.Path
}
