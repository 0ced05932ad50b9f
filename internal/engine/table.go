package engine

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Column names recognized in the CDM export. Every consumer checks for
// presence before use; a missing column degrades to a neutral default.
const (
	ColRegion            = "Region"
	ColSubRegion         = "Sub-region"
	ColHostCountry       = "Host country"
	ColTitle             = "Title"
	ColType              = "Type"
	ColTechType          = "Type.1"
	ColTransitionRequest = "Transition Request"
	ColMethodology       = "Methodology after transition"
	ColApprovedByHost    = "Approved by Host Party"
	ColReductions        = "Reductions (ktCO2e/yr)"
	ColPeriodFrom        = "A6 relevant period from"
	ColPeriodTo          = "A6 relevant period to"
	ColApprovalDate      = "Approval Date"
	ColSectoralScope     = "Sectoral Scope"
)

// dateLayout is the canonical form date cells are normalized to at load.
const dateLayout = "2006-01-02"

// Record is one row of the source table. Cells are immutable after load;
// the accessors coerce on read and return a zero value instead of failing
// when a column is absent or a value does not parse.
type Record struct {
	ID    string
	cells map[string]string
}

// NewRecord copies the given cells into an immutable record.
func NewRecord(id string, cells map[string]string) Record {
	copied := make(map[string]string, len(cells))
	for k, v := range cells {
		copied[k] = v
	}
	return Record{ID: id, cells: copied}
}

// Has reports whether the record carries a non-empty cell for col.
func (r Record) Has(col string) bool {
	return r.cells[col] != ""
}

// Text returns the cell value, or "" when the column is absent.
func (r Record) Text(col string) string {
	return r.cells[col]
}

// Number coerces the cell to a float64. Missing or non-numeric cells
// contribute zero.
func (r Record) Number(col string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.cells[col]), 64)
	if err != nil {
		return 0
	}
	return v
}

// Date parses a normalized date cell. ok is false for missing or
// unparseable values.
func (r Record) Date(col string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, r.cells[col])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Yes reports whether the cell equals "yes", compared case-insensitively
// after trimming. Absent columns are never yes.
func (r Record) Yes(col string) bool {
	return strings.EqualFold(strings.TrimSpace(r.cells[col]), "yes")
}

// Table is a fully materialized, immutable dataset. Filtering produces
// subset tables sharing the same record values; the base table is never
// mutated.
type Table struct {
	Columns []string
	Records []Record
}

// Len returns the row count.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// HasColumn reports whether col exists in the table schema.
func (t *Table) HasColumn(col string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Subset returns a table over the given records, sharing this table's
// schema. Records must come from this table; no rows are synthesized.
func (t *Table) Subset(records []Record) *Table {
	return &Table{Columns: t.Columns, Records: records}
}

// DistinctValues returns the sorted distinct non-empty values of a
// column, for building filter options. Nil when the column is absent.
func (t *Table) DistinctValues(col string) []string {
	if !t.HasColumn(col) {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, rec := range t.Records {
		v := rec.Text(col)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
