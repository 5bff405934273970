// pkg/model/records.go
package model

import (
	"time"
)

// DateLayout is the calendar-date format used by all three input files.
const DateLayout = "2006-01-02"

// CustomerRecord represents one cleaned customer row
type CustomerRecord struct {
	CustomerID       int64     `db:"customer_id"`
	FirstName        string    `db:"first_name"`
	LastName         string    `db:"last_name"`
	Email            string    `db:"email"`
	RegistrationDate time.Time `db:"registration_date"`

	// EmailValid is false when the email failed format validation.
	// Invalid emails flag the row, they never drop it.
	EmailValid bool `db:"-"`

	// HasRegistrationDate is false when the registration date was missing or
	// unparseable. The row still loads; revenue fallback uses the zero date.
	HasRegistrationDate bool `db:"-"`
}

// ProductRecord represents one cleaned product row
type ProductRecord struct {
	ProductID   int64   `db:"product_id"`
	ProductName string  `db:"product_name"`
	Category    string  `db:"category"`
	Price       float64 `db:"price"`
}

// TransactionRecord represents one cleaned transaction row
type TransactionRecord struct {
	TransactionID   int64     `db:"transaction_id"`
	CustomerID      int64     `db:"customer_id"`
	ProductID       int64     `db:"product_id"`
	TransactionDate time.Time `db:"transaction_date"`
	Quantity        int64     `db:"quantity"`
	Amount          float64   `db:"amount"`
}

// Segment classifies a customer by total revenue
type Segment string

const (
	SegmentLow    Segment = "Low Value"
	SegmentMedium Segment = "Medium Value"
	SegmentHigh   Segment = "High Value"
)

// CustomerRevenueRecord is the derived per-customer revenue aggregate.
// It is rebuilt fresh on every run, never incrementally updated.
type CustomerRevenueRecord struct {
	CustomerID           int64     `db:"customer_id"`
	TotalAmount          float64   `db:"total_amount"`
	TransactionCount     int64     `db:"transaction_count"`
	AvgTransactionAmount float64   `db:"avg_transaction_amount"`
	FirstTransactionDate time.Time `db:"first_transaction_date"`
	LastTransactionDate  time.Time `db:"last_transaction_date"`
	Segment              Segment   `db:"customer_segment"`
}
