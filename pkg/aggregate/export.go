// pkg/aggregate/export.go
package aggregate

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/David-Botos/retail-etl/pkg/model"
)

// exportHeader matches the customer_revenue table's column set.
var exportHeader = []string{
	"customer_id", "total_amount", "transaction_count", "avg_transaction_amount",
	"first_transaction_date", "last_transaction_date", "customer_segment",
}

// ExportCSV writes the revenue records to a comma-separated file with a
// header row. Absent dates are written as empty fields.
func ExportCSV(path string, revenue []model.CustomerRevenueRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}

	for _, rec := range revenue {
		row := []string{
			strconv.FormatInt(rec.CustomerID, 10),
			strconv.FormatFloat(rec.TotalAmount, 'f', 2, 64),
			strconv.FormatInt(rec.TransactionCount, 10),
			strconv.FormatFloat(rec.AvgTransactionAmount, 'f', 2, 64),
			formatDate(rec.FirstTransactionDate),
			formatDate(rec.LastTransactionDate),
			string(rec.Segment),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}
	return f.Sync()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(model.DateLayout)
}
