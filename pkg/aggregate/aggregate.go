// pkg/aggregate/aggregate.go
package aggregate

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/David-Botos/retail-etl/pkg/model"
)

// Segment thresholds are a fixed policy of the revenue aggregation.
const (
	mediumValueThreshold = 100.0
	highValueThreshold   = 200.0
)

// RevenueAggregator derives per-customer revenue from the cleaned tables.
// It is a pure function of its inputs; the result is rebuilt fresh every run.
type RevenueAggregator struct {
	logger *zap.Logger
}

// NewRevenueAggregator creates a new RevenueAggregator instance
func NewRevenueAggregator(logger *zap.Logger) *RevenueAggregator {
	return &RevenueAggregator{logger: logger.Named("aggregate")}
}

// Aggregate computes one CustomerRevenueRecord per cleaned customer with
// left-outer semantics: a customer with no transactions gets zero totals and
// first/last transaction dates falling back to the registration date.
// Results are ordered by customer_id.
func (a *RevenueAggregator) Aggregate(
	customers []model.CustomerRecord,
	transactions []model.TransactionRecord,
) []model.CustomerRevenueRecord {
	type accum struct {
		total float64
		count int64
		first time.Time
		last  time.Time
	}

	byCustomer := make(map[int64]*accum, len(customers))
	for _, txn := range transactions {
		acc, ok := byCustomer[txn.CustomerID]
		if !ok {
			acc = &accum{first: txn.TransactionDate, last: txn.TransactionDate}
			byCustomer[txn.CustomerID] = acc
		}
		acc.total += txn.Amount
		acc.count++
		if txn.TransactionDate.Before(acc.first) {
			acc.first = txn.TransactionDate
		}
		if txn.TransactionDate.After(acc.last) {
			acc.last = txn.TransactionDate
		}
	}

	out := make([]model.CustomerRevenueRecord, 0, len(customers))
	for _, cust := range customers {
		rec := model.CustomerRevenueRecord{
			CustomerID:           cust.CustomerID,
			FirstTransactionDate: cust.RegistrationDate,
			LastTransactionDate:  cust.RegistrationDate,
		}
		if acc, ok := byCustomer[cust.CustomerID]; ok {
			rec.TotalAmount = acc.total
			rec.TransactionCount = acc.count
			rec.AvgTransactionAmount = RoundCents(acc.total / float64(acc.count))
			rec.FirstTransactionDate = acc.first
			rec.LastTransactionDate = acc.last
		}
		rec.Segment = SegmentFor(rec.TotalAmount)
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })

	a.logger.Info("Aggregated customer revenue",
		zap.Int("customers", len(out)),
		zap.Int("customers_with_transactions", len(byCustomer)))

	return out
}

// SegmentFor classifies a customer's total revenue into a value tier:
// below 100 is Low Value, 100 up to but excluding 200 is Medium Value,
// 200 and above is High Value.
func SegmentFor(totalAmount float64) model.Segment {
	switch {
	case totalAmount >= highValueThreshold:
		return model.SegmentHigh
	case totalAmount >= mediumValueThreshold:
		return model.SegmentMedium
	default:
		return model.SegmentLow
	}
}

// RoundCents rounds to 2 decimal places, half away from zero.
// TotalAmount is an exact sum and is never passed through here; only the
// derived average is rounded.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// TotalRevenue sums the total amounts across all revenue records
func TotalRevenue(revenue []model.CustomerRevenueRecord) float64 {
	var total float64
	for _, rec := range revenue {
		total += rec.TotalAmount
	}
	return total
}
