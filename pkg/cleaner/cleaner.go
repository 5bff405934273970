// pkg/cleaner/cleaner.go
package cleaner

import (
	"go.uber.org/zap"

	"github.com/David-Botos/retail-etl/pkg/extract"
	"github.com/David-Botos/retail-etl/pkg/model"
)

// TableCleaner applies per-entity cleaning rules across whole tables.
// The three entities share one algorithm (parse -> validate -> de-dup ->
// referential check) and differ only in their rule tables.
type TableCleaner struct {
	logger *zap.Logger
}

// NewTableCleaner creates a new TableCleaner instance
func NewTableCleaner(logger *zap.Logger) *TableCleaner {
	return &TableCleaner{logger: logger.Named("cleaner")}
}

// parsedRow is the outcome of parsing and validating one raw row.
type parsedRow[T any] struct {
	record T
	drop   *model.Reason  // non-nil when the row must be removed
	flags  []model.Reason // kept-but-flagged findings
}

// rules parameterizes the generic cleaning pass for one entity.
type rules[T any] struct {
	table string
	parse func(extract.Row) parsedRow[T]
	key   func(T) int64
}

// clean runs the shared cleaning algorithm: parse and validate every row,
// then de-duplicate by primary key keeping the first occurrence in input
// order. Per-row problems only increment report counters.
func clean[T any](c *TableCleaner, raw *extract.RawTable, r rules[T]) ([]T, *model.TableReport) {
	report := model.NewTableReport(r.table)
	report.RowsIn = len(raw.Rows)

	out := make([]T, 0, len(raw.Rows))
	seen := make(map[int64]struct{}, len(raw.Rows))

	for _, row := range raw.Rows {
		parsed := r.parse(row)
		if parsed.drop != nil {
			report.Drop(*parsed.drop)
			continue
		}
		key := r.key(parsed.record)
		if _, dup := seen[key]; dup {
			report.Drop(model.ReasonDuplicateKey)
			continue
		}
		seen[key] = struct{}{}
		for _, flag := range parsed.flags {
			report.Flag(flag)
		}
		out = append(out, parsed.record)
	}

	report.RowsOut = len(out)
	c.logger.Info("Cleaned table",
		zap.String("table", r.table),
		zap.Int("rows_in", report.RowsIn),
		zap.Int("rows_out", report.RowsOut),
		zap.Int("rows_dropped", report.RowsDropped()))

	return out, report
}

func dropReason(reason model.Reason) *model.Reason {
	return &reason
}
