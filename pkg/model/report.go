// pkg/model/report.go
package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// TableReport accumulates cleaning counters for one entity table.
// Pure bookkeeping: per-row problems are counted here, never raised.
type TableReport struct {
	Table           string
	RowsIn          int
	RowsOut         int
	DroppedByReason map[Reason]int
	FlaggedByReason map[Reason]int
}

// NewTableReport initializes an empty report for a table
func NewTableReport(table string) *TableReport {
	return &TableReport{
		Table:           table,
		DroppedByReason: make(map[Reason]int),
		FlaggedByReason: make(map[Reason]int),
	}
}

// Drop counts one dropped row under the given reason
func (r *TableReport) Drop(reason Reason) {
	r.DroppedByReason[reason]++
}

// Flag counts one kept-but-flagged field under the given reason
func (r *TableReport) Flag(reason Reason) {
	r.FlaggedByReason[reason]++
}

// RowsDropped returns the total number of dropped rows
func (r *TableReport) RowsDropped() int {
	total := 0
	for _, n := range r.DroppedByReason {
		total += n
	}
	return total
}

// String renders the report in a stable, loggable form
func (r *TableReport) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: in=%d out=%d dropped=%d", r.Table, r.RowsIn, r.RowsOut, r.RowsDropped())
	for _, reason := range sortedReasons(r.DroppedByReason) {
		fmt.Fprintf(&sb, " %s=%d", reason, r.DroppedByReason[reason])
	}
	for _, reason := range sortedReasons(r.FlaggedByReason) {
		fmt.Fprintf(&sb, " flagged/%s=%d", reason, r.FlaggedByReason[reason])
	}
	return sb.String()
}

func sortedReasons(m map[Reason]int) []Reason {
	reasons := make([]Reason, 0, len(m))
	for reason := range m {
		reasons = append(reasons, reason)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	return reasons
}

// StoreSummary holds row counts and revenue statistics read back from the
// destination store after loading.
type StoreSummary struct {
	CustomersCount     int64   `db:"customers_count"`
	ProductsCount      int64   `db:"products_count"`
	TransactionsCount  int64   `db:"transactions_count"`
	RevenueRecordCount int64   `db:"revenue_records_count"`
	TotalRevenue       float64 `db:"total_revenue"`
	AvgCustomerRevenue float64 `db:"avg_customer_revenue"`
	MaxCustomerRevenue float64 `db:"max_customer_revenue"`
	MinCustomerRevenue float64 `db:"min_customer_revenue"`
}

// PipelineSummary is the final artifact of one run.
type PipelineSummary struct {
	RunID        string
	Customers    *TableReport
	Products     *TableReport
	Transactions *TableReport
	Store        StoreSummary
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}

// Complete stamps the end time and computes the duration
func (s *PipelineSummary) Complete() {
	s.EndTime = time.Now()
	s.Duration = s.EndTime.Sub(s.StartTime)
}
