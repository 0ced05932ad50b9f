package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Columns normalized to dateLayout at load time.
var dateColumns = []string{ColPeriodFrom, ColPeriodTo, ColApprovalDate}

// Layouts accepted in the source export. First match wins.
var sourceDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"1/2/2006",
	time.RFC3339,
}

// LoadTable reads a CSV export into an immutable Table.
//
// Header names are trimmed (the source sheet has a leading space on the
// reductions column), date columns are normalized to YYYY-MM-DD, and
// malformed rows are skipped. Each record gets a stable ID for the API.
func LoadTable(path string, logger *zap.Logger) (*Table, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	table, err := ParseTable(f)
	if err != nil {
		return nil, err
	}

	logger.Info("table loaded",
		zap.String("path", path),
		zap.Int("rows", table.Len()),
		zap.Int("columns", len(table.Columns)),
		zap.Duration("elapsed", time.Since(start)))
	return table, nil
}

// ParseTable reads CSV data from r into a Table.
func ParseTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rawHeader, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	columns := make([]string, len(rawHeader))
	for i, h := range rawHeader {
		columns[i] = strings.TrimSpace(h)
	}

	isDate := make(map[string]bool, len(dateColumns))
	for _, c := range dateColumns {
		isDate[c] = true
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}

		cells := make(map[string]string, len(columns))
		empty := true
		for i, val := range row {
			if i >= len(columns) {
				break
			}
			val = strings.TrimSpace(val)
			if val == "" {
				continue
			}
			empty = false
			if isDate[columns[i]] {
				val = normalizeDate(val)
			}
			cells[columns[i]] = val
		}
		if empty {
			continue
		}

		records = append(records, Record{ID: uuid.NewString(), cells: cells})
	}

	return &Table{Columns: columns, Records: records}, nil
}

// normalizeDate rewrites a source date to dateLayout. Values that match
// no known layout are kept as-is and coerce to missing on read.
func normalizeDate(val string) string {
	for _, layout := range sourceDateLayouts {
		if t, err := time.Parse(layout, val); err == nil {
			return t.Format(dateLayout)
		}
	}
	return val
}
