// pkg/store/sqlstore_test.go
package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/David-Botos/retail-etl/pkg/model"
)

func newMockStore(t *testing.T, batchSize int) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	store := &SQLStore{
		db:        sqlx.NewDb(mockDB, "sqlmock"),
		logger:    zap.NewNop(),
		name:      "mock",
		batchSize: batchSize,
	}
	return store, mock
}

func TestEnsureSchema(t *testing.T) {
	store, mock := newMockStore(t, 1000)
	defer store.db.Close()

	for range schemaStatements {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchemaError(t *testing.T) {
	store, mock := newMockStore(t, 1000)
	defer store.db.Close()

	mock.ExpectExec("CREATE").WillReturnError(errors.New("disk full"))

	err := store.EnsureSchema(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create schema")
}

func TestReplaceProducts(t *testing.T) {
	store, mock := newMockStore(t, 1000)
	defer store.db.Close()

	products := []model.ProductRecord{
		{ProductID: 1, ProductName: "Laptop", Category: "Electronics", Price: 999.99},
		{ProductID: 2, ProductName: "Mouse", Category: "Electronics", Price: 24.50},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products")).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products (product_id, product_name, category, price) VALUES (?, ?, ?, ?), (?, ?, ?, ?)")).
		WithArgs(int64(1), "Laptop", "Electronics", 999.99, int64(2), "Mouse", "Electronics", 24.50).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	inserted, err := store.ReplaceProducts(context.Background(), products)
	require.NoError(t, err)
	assert.Equal(t, int64(2), inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceTableBatches(t *testing.T) {
	store, mock := newMockStore(t, 2)
	defer store.db.Close()

	products := []model.ProductRecord{
		{ProductID: 1, ProductName: "A", Category: "C", Price: 1},
		{ProductID: 2, ProductName: "B", Category: "C", Price: 2},
		{ProductID: 3, ProductName: "D", Category: "C", Price: 3},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("VALUES (?, ?, ?, ?), (?, ?, ?, ?)")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("VALUES (?, ?, ?, ?)")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	inserted, err := store.ReplaceProducts(context.Background(), products)
	require.NoError(t, err)
	assert.Equal(t, int64(3), inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceEmptyTableStillClears(t *testing.T) {
	store, mock := newMockStore(t, 1000)
	defer store.db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM customers")).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	inserted, err := store.ReplaceCustomers(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceCustomersNullRegistrationDate(t *testing.T) {
	store, mock := newMockStore(t, 1000)
	defer store.db.Close()

	customers := []model.CustomerRecord{
		{CustomerID: 2, FirstName: "Unknown", LastName: "Unknown", Email: "x@example.com"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM customers")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO customers")).
		WithArgs(int64(2), "Unknown", "Unknown", "x@example.com", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	inserted, err := store.ReplaceCustomers(context.Background(), customers)
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceTableRollsBackOnInsertError(t *testing.T) {
	store, mock := newMockStore(t, 1000)
	defer store.db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products")).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	_, err := store.ReplaceProducts(context.Background(),
		[]model.ProductRecord{{ProductID: 1, ProductName: "A", Category: "C", Price: 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch insert into products")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummary(t *testing.T) {
	store, mock := newMockStore(t, 1000)
	defer store.db.Close()

	rows := sqlmock.NewRows([]string{
		"customers_count", "products_count", "transactions_count", "revenue_records_count",
		"total_revenue", "avg_customer_revenue", "max_customer_revenue", "min_customer_revenue",
	}).AddRow(10, 5, 40, 10, 1234.56, 123.46, 600.00, 0.0)

	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	summary, err := store.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), summary.CustomersCount)
	assert.Equal(t, int64(5), summary.ProductsCount)
	assert.Equal(t, int64(40), summary.TransactionsCount)
	assert.Equal(t, int64(10), summary.RevenueRecordCount)
	assert.Equal(t, 1234.56, summary.TotalRevenue)
	assert.Equal(t, 600.00, summary.MaxCustomerRevenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}
