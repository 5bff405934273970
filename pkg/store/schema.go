// pkg/store/schema.go
package store

// The fixed destination schema. Both backends accept the same DDL: SQLite's
// flexible typing tolerates the NUMERIC/DATE declarations PostgreSQL needs.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		customer_id BIGINT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL,
		registration_date DATE
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id BIGINT PRIMARY KEY,
		product_name TEXT NOT NULL,
		category TEXT NOT NULL,
		price NUMERIC(10, 2) NOT NULL CHECK (price >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		transaction_id BIGINT PRIMARY KEY,
		customer_id BIGINT NOT NULL,
		product_id BIGINT NOT NULL,
		transaction_date DATE NOT NULL,
		quantity BIGINT NOT NULL CHECK (quantity > 0),
		amount NUMERIC(12, 2) NOT NULL CHECK (amount > 0)
	)`,
	`CREATE TABLE IF NOT EXISTS customer_revenue (
		customer_id BIGINT PRIMARY KEY,
		total_amount NUMERIC(12, 2) NOT NULL,
		transaction_count BIGINT NOT NULL,
		avg_transaction_amount NUMERIC(12, 2) NOT NULL,
		first_transaction_date DATE,
		last_transaction_date DATE,
		customer_segment TEXT NOT NULL
	)`,
	// The customer_id/product_id indexes support the aggregation join; the
	// remaining indexes match the reporting queries on the destination.
	`CREATE INDEX IF NOT EXISTS idx_transactions_customer_id ON transactions(customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_product_id ON transactions(product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(transaction_date)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_email ON customers(email)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)`,
}

const summaryQuery = `
	SELECT
		(SELECT COUNT(*) FROM customers) AS customers_count,
		(SELECT COUNT(*) FROM products) AS products_count,
		(SELECT COUNT(*) FROM transactions) AS transactions_count,
		(SELECT COUNT(*) FROM customer_revenue) AS revenue_records_count,
		COALESCE(SUM(total_amount), 0) AS total_revenue,
		COALESCE(AVG(total_amount), 0) AS avg_customer_revenue,
		COALESCE(MAX(total_amount), 0) AS max_customer_revenue,
		COALESCE(MIN(total_amount), 0) AS min_customer_revenue
	FROM customer_revenue
`
