// cmd/etl/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/David-Botos/retail-etl/pkg/config"
	"github.com/David-Botos/retail-etl/pkg/pipeline"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "etl:", err)
		os.Exit(1)
	}
}

func run() error {
	inputDir := flag.String("input-dir", "", "directory containing the three input CSV files (overrides ETL_INPUT_DIR)")
	export := flag.String("export", "", "path for the revenue CSV export (overrides ETL_REVENUE_EXPORT)")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	if *inputDir != "" {
		os.Setenv("ETL_INPUT_DIR", *inputDir)
		os.Setenv("ETL_CUSTOMERS_FILE", filepath.Join(*inputDir, "customers.csv"))
		os.Setenv("ETL_PRODUCTS_FILE", filepath.Join(*inputDir, "products.csv"))
		os.Setenv("ETL_TRANSACTIONS_FILE", filepath.Join(*inputDir, "transactions.csv"))
	}
	if *export != "" {
		os.Setenv("ETL_REVENUE_EXPORT", *export)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger, err := buildLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	runner := pipeline.NewRunner(cfg, logger)
	if _, err := runner.Run(context.Background()); err != nil {
		return err
	}
	return nil
}

// buildLogger constructs a zap logger from the configured level and format
func buildLogger(level, format string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	if format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)

	return zapCfg.Build()
}
