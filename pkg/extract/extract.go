// pkg/extract/extract.go
package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Row is one unparsed CSV row keyed by canonical column name.
type Row map[string]string

// RawTable is the unparsed row-set of one input file.
type RawTable struct {
	Name    string
	Columns []string
	Rows    []Row
}

// Extractor reads the delimited input files. Any failure here is fatal for
// the run: a missing file or unrecognizable header aborts before cleaning.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates an extractor with a named logger
func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger.Named("extract")}
}

// ReadTable reads a comma-separated UTF-8 file with a header row and verifies
// that every expected column is present. Column order in the file does not
// matter; extra columns are ignored.
func (e *Extractor) ReadTable(path, name string, expectedColumns []string) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(stripBOM(col))] = i
	}

	var missing []string
	for _, col := range expectedColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: missing expected columns %v", path, missing)
	}

	table := &RawTable{Name: name, Columns: expectedColumns}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		row := make(Row, len(expectedColumns))
		for _, col := range expectedColumns {
			i := index[col]
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	e.logger.Info("Extracted table",
		zap.String("table", name),
		zap.String("path", path),
		zap.Int("rows", len(table.Rows)))

	return table, nil
}

// stripBOM removes a UTF-8 byte order mark from the first header cell
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
