package engine

import "strings"

// FilterSpec selects a subset of the table. Columns maps a column name
// to its allowed values (OR within a column, AND across columns); an
// empty value set imposes no constraint, matching the UI default of
// nothing selected. Search is a case-insensitive substring match over
// the Title column.
type FilterSpec struct {
	Columns map[string][]string
	Search  string
}

// IsEmpty reports whether the spec imposes no constraint at all.
func (s FilterSpec) IsEmpty() bool {
	if s.Search != "" {
		return false
	}
	for _, vals := range s.Columns {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// Apply returns the subset of t matching all active predicates. Columns
// absent from the table impose no constraint. The result always shares
// record values with t; no row is ever synthesized or mutated.
func Apply(t *Table, spec FilterSpec) *Table {
	// Pre-build lookup sets for the active column predicates.
	sets := make(map[string]map[string]bool)
	for col, allowed := range spec.Columns {
		if len(allowed) == 0 || !t.HasColumn(col) {
			continue
		}
		set := make(map[string]bool, len(allowed))
		for _, v := range allowed {
			set[v] = true
		}
		sets[col] = set
	}

	query := strings.ToLower(spec.Search)
	searchActive := query != "" && t.HasColumn(ColTitle)

	if len(sets) == 0 && !searchActive {
		return t
	}

	kept := make([]Record, 0, len(t.Records))
	for _, rec := range t.Records {
		pass := true
		for col, set := range sets {
			if !set[rec.Text(col)] {
				pass = false
				break
			}
		}
		if pass && searchActive && !strings.Contains(strings.ToLower(rec.Text(ColTitle)), query) {
			pass = false
		}
		if pass {
			kept = append(kept, rec)
		}
	}
	return t.Subset(kept)
}
