// pkg/aggregate/aggregate_test.go
package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/David-Botos/retail-etl/pkg/model"
)

func day(value string) time.Time {
	t, err := time.Parse(model.DateLayout, value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAggregateSingleCustomer(t *testing.T) {
	agg := NewRevenueAggregator(zap.NewNop())

	customers := []model.CustomerRecord{
		{CustomerID: 1, RegistrationDate: day("2024-01-10"), HasRegistrationDate: true},
	}
	transactions := []model.TransactionRecord{
		{TransactionID: 1, CustomerID: 1, ProductID: 1, TransactionDate: day("2024-03-05"), Quantity: 2, Amount: 19.98},
	}

	revenue := agg.Aggregate(customers, transactions)
	require.Len(t, revenue, 1)

	rec := revenue[0]
	assert.Equal(t, int64(1), rec.CustomerID)
	assert.Equal(t, 19.98, rec.TotalAmount)
	assert.Equal(t, int64(1), rec.TransactionCount)
	assert.Equal(t, 19.98, rec.AvgTransactionAmount)
	assert.True(t, rec.FirstTransactionDate.Equal(day("2024-03-05")))
	assert.True(t, rec.LastTransactionDate.Equal(day("2024-03-05")))
	assert.Equal(t, model.SegmentLow, rec.Segment)
}

func TestAggregateZeroTransactionCustomer(t *testing.T) {
	agg := NewRevenueAggregator(zap.NewNop())

	customers := []model.CustomerRecord{
		{CustomerID: 7, RegistrationDate: day("2023-06-01"), HasRegistrationDate: true},
	}

	revenue := agg.Aggregate(customers, nil)
	require.Len(t, revenue, 1)

	rec := revenue[0]
	assert.Equal(t, 0.0, rec.TotalAmount)
	assert.Equal(t, int64(0), rec.TransactionCount)
	assert.Equal(t, 0.0, rec.AvgTransactionAmount)
	assert.True(t, rec.FirstTransactionDate.Equal(day("2023-06-01")))
	assert.True(t, rec.LastTransactionDate.Equal(day("2023-06-01")))
	assert.Equal(t, model.SegmentLow, rec.Segment)
}

func TestAggregateZeroTransactionCustomerWithoutRegistrationDate(t *testing.T) {
	agg := NewRevenueAggregator(zap.NewNop())

	customers := []model.CustomerRecord{{CustomerID: 9}}

	revenue := agg.Aggregate(customers, nil)
	require.Len(t, revenue, 1)
	assert.True(t, revenue[0].FirstTransactionDate.IsZero())
	assert.True(t, revenue[0].LastTransactionDate.IsZero())
}

func TestAggregateDateRangeAndOrdering(t *testing.T) {
	agg := NewRevenueAggregator(zap.NewNop())

	customers := []model.CustomerRecord{
		{CustomerID: 3, RegistrationDate: day("2024-01-01"), HasRegistrationDate: true},
		{CustomerID: 1, RegistrationDate: day("2024-01-02"), HasRegistrationDate: true},
		{CustomerID: 2, RegistrationDate: day("2024-01-03"), HasRegistrationDate: true},
	}
	transactions := []model.TransactionRecord{
		{TransactionID: 1, CustomerID: 2, ProductID: 1, TransactionDate: day("2024-05-20"), Quantity: 1, Amount: 50},
		{TransactionID: 2, CustomerID: 2, ProductID: 1, TransactionDate: day("2024-02-01"), Quantity: 1, Amount: 75},
		{TransactionID: 3, CustomerID: 2, ProductID: 2, TransactionDate: day("2024-08-15"), Quantity: 1, Amount: 100},
	}

	revenue := agg.Aggregate(customers, transactions)
	require.Len(t, revenue, 3)

	// ordered by customer_id regardless of input order
	assert.Equal(t, int64(1), revenue[0].CustomerID)
	assert.Equal(t, int64(2), revenue[1].CustomerID)
	assert.Equal(t, int64(3), revenue[2].CustomerID)

	rec := revenue[1]
	assert.Equal(t, 225.0, rec.TotalAmount)
	assert.Equal(t, int64(3), rec.TransactionCount)
	assert.Equal(t, 75.0, rec.AvgTransactionAmount)
	assert.True(t, rec.FirstTransactionDate.Equal(day("2024-02-01")))
	assert.True(t, rec.LastTransactionDate.Equal(day("2024-08-15")))
	assert.Equal(t, model.SegmentHigh, rec.Segment)
}

func TestSegmentThresholds(t *testing.T) {
	tests := []struct {
		total float64
		want  model.Segment
	}{
		{0, model.SegmentLow},
		{99.99, model.SegmentLow},
		{100, model.SegmentMedium},
		{150, model.SegmentMedium},
		{199.99, model.SegmentMedium},
		{200, model.SegmentHigh},
		{1250.5, model.SegmentHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SegmentFor(tt.total), "total %v", tt.total)
	}
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 10.0, RoundCents(10.004))
	assert.Equal(t, 10.01, RoundCents(10.006))
	assert.Equal(t, -10.01, RoundCents(-10.006))
	assert.Equal(t, 33.33, RoundCents(99.99/3))
}

func TestTotalRevenue(t *testing.T) {
	revenue := []model.CustomerRevenueRecord{
		{CustomerID: 1, TotalAmount: 10.5},
		{CustomerID: 2, TotalAmount: 20.25},
	}
	assert.Equal(t, 30.75, TotalRevenue(revenue))
	assert.Equal(t, 0.0, TotalRevenue(nil))
}
