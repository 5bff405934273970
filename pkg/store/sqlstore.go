// pkg/store/sqlstore.go
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/David-Botos/retail-etl/pkg/model"
)

// SQLStore implements Store on top of sqlx for either backend. Queries are
// written with "?" bindvars and rebound per driver.
type SQLStore struct {
	db        *sqlx.DB
	logger    *zap.Logger
	name      string
	batchSize int
}

// EnsureSchema creates the destination tables and indexes if absent
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	s.logger.Info("Ensured destination schema exists")
	return nil
}

// ReplaceCustomers replaces the full contents of the customers table
func (s *SQLStore) ReplaceCustomers(ctx context.Context, customers []model.CustomerRecord) (int64, error) {
	rows := make([][]interface{}, len(customers))
	for i, c := range customers {
		rows[i] = []interface{}{c.CustomerID, c.FirstName, c.LastName, c.Email, nullableDate(c.RegistrationDate, c.HasRegistrationDate)}
	}
	return s.replaceTable(ctx, "customers",
		[]string{"customer_id", "first_name", "last_name", "email", "registration_date"}, rows)
}

// ReplaceProducts replaces the full contents of the products table
func (s *SQLStore) ReplaceProducts(ctx context.Context, products []model.ProductRecord) (int64, error) {
	rows := make([][]interface{}, len(products))
	for i, p := range products {
		rows[i] = []interface{}{p.ProductID, p.ProductName, p.Category, p.Price}
	}
	return s.replaceTable(ctx, "products",
		[]string{"product_id", "product_name", "category", "price"}, rows)
}

// ReplaceTransactions replaces the full contents of the transactions table
func (s *SQLStore) ReplaceTransactions(ctx context.Context, transactions []model.TransactionRecord) (int64, error) {
	rows := make([][]interface{}, len(transactions))
	for i, t := range transactions {
		rows[i] = []interface{}{t.TransactionID, t.CustomerID, t.ProductID, t.TransactionDate, t.Quantity, t.Amount}
	}
	return s.replaceTable(ctx, "transactions",
		[]string{"transaction_id", "customer_id", "product_id", "transaction_date", "quantity", "amount"}, rows)
}

// ReplaceRevenue replaces the full contents of the customer_revenue table
func (s *SQLStore) ReplaceRevenue(ctx context.Context, revenue []model.CustomerRevenueRecord) (int64, error) {
	rows := make([][]interface{}, len(revenue))
	for i, r := range revenue {
		rows[i] = []interface{}{
			r.CustomerID, r.TotalAmount, r.TransactionCount, r.AvgTransactionAmount,
			nullableDate(r.FirstTransactionDate, !r.FirstTransactionDate.IsZero()),
			nullableDate(r.LastTransactionDate, !r.LastTransactionDate.IsZero()),
			string(r.Segment),
		}
	}
	return s.replaceTable(ctx, "customer_revenue",
		[]string{"customer_id", "total_amount", "transaction_count", "avg_transaction_amount",
			"first_transaction_date", "last_transaction_date", "customer_segment"}, rows)
}

// replaceTable deletes the existing contents and bulk-inserts the new rows in
// one transaction, so a re-run never grows the table.
func (s *SQLStore) replaceTable(ctx context.Context, table string, columns []string, rows [][]interface{}) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin replace of %s: %w", table, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return 0, fmt.Errorf("clear %s: %w", table, err)
	}

	inserted, err := s.insertRows(ctx, tx, table, columns, rows)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit replace of %s: %w", table, err)
	}

	s.logger.Info("Replaced table contents",
		zap.String("table", table),
		zap.Int64("rows", inserted))

	return inserted, nil
}

// insertRows performs a batched multi-row insert within a transaction
func (s *SQLStore) insertRows(ctx context.Context, tx *sqlx.Tx, table string, columns []string, rows [][]interface{}) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	batchSize := s.batchSize
	if batchSize <= 0 {
		batchSize = 1000
	}

	columnStr := strings.Join(columns, ", ")
	rowPlaceholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"

	var total int64
	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[i:end]

		placeholders := make([]string, len(batch))
		args := make([]interface{}, 0, len(batch)*len(columns))
		for j, row := range batch {
			placeholders[j] = rowPlaceholder
			args = append(args, row...)
		}

		query := s.db.Rebind(fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
			table, columnStr, strings.Join(placeholders, ", ")))

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return total, fmt.Errorf("batch insert into %s: %w", table, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			s.logger.Warn("Couldn't get rows affected", zap.Error(err))
			affected = int64(len(batch))
		}
		total += affected
	}

	return total, nil
}

// Summary reads row counts and revenue statistics back from the store
func (s *SQLStore) Summary(ctx context.Context) (model.StoreSummary, error) {
	var summary model.StoreSummary
	if err := s.db.GetContext(ctx, &summary, summaryQuery); err != nil {
		return model.StoreSummary{}, fmt.Errorf("read store summary: %w", err)
	}
	return summary, nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	s.logger.Info("Closing store connection")
	LogConnectionStats(s.logger, s.name, s.db)
	return s.db.Close()
}

// nullableDate maps an absent date to SQL NULL
func nullableDate(t time.Time, ok bool) interface{} {
	if !ok {
		return nil
	}
	return t
}
