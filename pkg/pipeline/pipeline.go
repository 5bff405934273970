// pkg/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/David-Botos/retail-etl/pkg/aggregate"
	"github.com/David-Botos/retail-etl/pkg/cleaner"
	"github.com/David-Botos/retail-etl/pkg/config"
	"github.com/David-Botos/retail-etl/pkg/extract"
	"github.com/David-Botos/retail-etl/pkg/model"
	"github.com/David-Botos/retail-etl/pkg/store"
)

// Runner sequences Extract -> Clean -> Load -> Aggregate for one run.
// Runs are single-threaded; concurrent runs against the same destination
// store are not supported and must be serialized by the caller.
type Runner struct {
	cfg          *config.Config
	logger       *zap.Logger
	state        Stage
	loadComplete bool

	// openStore is swappable in tests
	openStore func(ctx context.Context) (store.Store, error)
}

// NewRunner creates a pipeline runner for the given configuration
func NewRunner(cfg *config.Config, logger *zap.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		logger: logger.Named("pipeline"),
		state:  StageIdle,
		openStore: func(ctx context.Context) (store.Store, error) {
			return store.NewStore(ctx, cfg.Store, cfg.BatchSize, logger)
		},
	}
}

// State returns the stage the run has reached. After a failed run it holds
// the stage the failure halted.
func (r *Runner) State() Stage {
	return r.state
}

// Run executes one full pipeline run and returns its summary. A stage-scoped
// fatal error halts the run and is returned as a *StageError; per-row
// problems never fail a run.
func (r *Runner) Run(ctx context.Context) (*model.PipelineSummary, error) {
	summary := &model.PipelineSummary{
		RunID:     uuid.New().String(),
		StartTime: time.Now(),
	}
	r.logger.Info("Starting pipeline run", zap.String("run_id", summary.RunID))

	// Extract
	r.state = StageExtracting
	extractor := extract.NewExtractor(r.logger)

	rawCustomers, err := extractor.ReadTable(r.cfg.CustomersFile, "customers", cleaner.CustomerColumns)
	if err != nil {
		return summary, r.fail(CategorySourceUnreadable, err)
	}
	rawProducts, err := extractor.ReadTable(r.cfg.ProductsFile, "products", cleaner.ProductColumns)
	if err != nil {
		return summary, r.fail(CategorySourceUnreadable, err)
	}
	rawTransactions, err := extractor.ReadTable(r.cfg.TransactionsFile, "transactions", cleaner.TransactionColumns)
	if err != nil {
		return summary, r.fail(CategorySourceUnreadable, err)
	}

	// Clean
	r.state = StageCleaning
	tc := cleaner.NewTableCleaner(r.logger)
	customers, customerReport := tc.CleanCustomers(rawCustomers)
	products, productReport := tc.CleanProducts(rawProducts)
	transactions, transactionReport := tc.CleanTransactions(rawTransactions, customers, products)
	summary.Customers = customerReport
	summary.Products = productReport
	summary.Transactions = transactionReport

	// Load
	r.state = StageLoading
	st, err := r.openStore(ctx)
	if err != nil {
		return summary, r.fail(CategoryStoreUnavailable, err)
	}
	defer st.Close()

	if err := st.EnsureSchema(ctx); err != nil {
		return summary, r.fail(CategoryStoreUnavailable, err)
	}
	if _, err := st.ReplaceCustomers(ctx, customers); err != nil {
		return summary, r.fail(CategoryStoreUnavailable, err)
	}
	if _, err := st.ReplaceProducts(ctx, products); err != nil {
		return summary, r.fail(CategoryStoreUnavailable, err)
	}
	if _, err := st.ReplaceTransactions(ctx, transactions); err != nil {
		return summary, r.fail(CategoryStoreUnavailable, err)
	}
	r.loadComplete = true

	// Aggregate
	r.state = StageAggregating
	if err := r.aggregateStage(ctx, st, customers, transactions, summary); err != nil {
		return summary, err
	}

	r.state = StageDone
	summary.Complete()
	r.logSummary(summary)

	return summary, nil
}

// aggregateStage derives and persists the revenue aggregate. It refuses to
// run when loading did not complete: the destination tables it joins against
// might be absent.
func (r *Runner) aggregateStage(
	ctx context.Context,
	st store.Store,
	customers []model.CustomerRecord,
	transactions []model.TransactionRecord,
	summary *model.PipelineSummary,
) error {
	if !r.loadComplete {
		return r.fail(CategoryAggregationInputMissing, errors.New("load stage did not complete"))
	}

	agg := aggregate.NewRevenueAggregator(r.logger)
	revenue := agg.Aggregate(customers, transactions)
	if _, err := st.ReplaceRevenue(ctx, revenue); err != nil {
		return r.fail(CategoryStoreUnavailable, err)
	}

	storeSummary, err := st.Summary(ctx)
	if err != nil {
		return r.fail(CategoryStoreUnavailable, err)
	}
	summary.Store = storeSummary

	if r.cfg.RevenueExportPath != "" {
		if err := aggregate.ExportCSV(r.cfg.RevenueExportPath, revenue); err != nil {
			// The run's data is already persisted; a failed export is a
			// warning, not a failed run.
			r.logger.Warn("Revenue CSV export failed", zap.Error(err))
		} else {
			r.logger.Info("Exported revenue CSV", zap.String("path", r.cfg.RevenueExportPath))
		}
	}

	return nil
}

// fail tags a fatal error with the stage it halted and logs it
func (r *Runner) fail(category ErrorCategory, err error) error {
	stageErr := &StageError{Stage: r.state, Category: category, Err: err}
	r.logger.Error("Pipeline run failed",
		zap.String("stage", r.state.String()),
		zap.String("category", category.String()),
		zap.Error(err))
	return stageErr
}

func (r *Runner) logSummary(s *model.PipelineSummary) {
	r.logger.Info("Pipeline run complete",
		zap.String("run_id", s.RunID),
		zap.Duration("duration", s.Duration),
		zap.String("customers", s.Customers.String()),
		zap.String("products", s.Products.String()),
		zap.String("transactions", s.Transactions.String()),
		zap.Int64("revenue_records", s.Store.RevenueRecordCount),
		zap.Float64("total_revenue", s.Store.TotalRevenue))
}
