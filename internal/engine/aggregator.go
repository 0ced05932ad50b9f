package engine

import "sort"

// Summary holds the KPI scalars shown in the dashboard header.
type Summary struct {
	Count               int
	RequestedTransition int
	ApprovedByHost      int
	ReductionsSum       float64
}

// LabelCount is one bar of the host-party chart.
type LabelCount struct {
	Label string
	Count int
}

// CountRows returns the row count of t.
func CountRows(t *Table) int {
	return t.Len()
}

// CountYes counts rows whose cell in col equals "yes" case-insensitively.
// An absent column counts zero.
func CountYes(t *Table, col string) int {
	if !t.HasColumn(col) {
		return 0
	}
	n := 0
	for _, rec := range t.Records {
		if rec.Yes(col) {
			n++
		}
	}
	return n
}

// SumNumber sums the numeric values of col. Missing and non-coercible
// cells contribute zero; an absent column sums to zero.
func SumNumber(t *Table, col string) float64 {
	if !t.HasColumn(col) {
		return 0
	}
	var sum float64
	for _, rec := range t.Records {
		sum += rec.Number(col)
	}
	return sum
}

// Summarize computes the CDM KPI set over a (usually filtered) table.
func Summarize(t *Table) Summary {
	return Summary{
		Count:               CountRows(t),
		RequestedTransition: CountYes(t, ColTransitionRequest),
		ApprovedByHost:      CountYes(t, ColApprovedByHost),
		ReductionsSum:       SumNumber(t, ColReductions),
	}
}

// CountByLabel groups attributions by their cleaned source label and
// returns the topN largest counts. Ties keep first-seen order (stable
// sort over the grouping order).
func CountByLabel(attrs []Attribution, topN int) []LabelCount {
	counts := make(map[string]int)
	var order []string
	for _, a := range attrs {
		if _, seen := counts[a.Label]; !seen {
			order = append(order, a.Label)
		}
		counts[a.Label]++
	}

	out := make([]LabelCount, 0, len(order))
	for _, label := range order {
		out = append(out, LabelCount{Label: label, Count: counts[label]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// CountByISO3 groups attributions by ISO3 code for the choropleth.
func CountByISO3(attrs []Attribution) map[string]int {
	counts := make(map[string]int, len(attrs))
	for _, a := range attrs {
		counts[a.ISO3]++
	}
	return counts
}
