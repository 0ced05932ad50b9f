package engine

import "strings"

// Attribution ties a record to one resolved host country. A record
// hosted by N countries yields N attributions. Attributions feed only
// the geographic aggregations — never the KPI totals or detail table.
type Attribution struct {
	Record *Record
	Label  string // cleaned source token, groups the bar chart
	ISO3   string // groups the choropleth
}

// SplitHostTokens extracts country tokens from a host-country cell.
// A semicolon marks a multi-country record: pieces are trimmed and the
// "multiple" placeholder and empty pieces are discarded. Without a
// semicolon the whole trimmed cell is the single token.
func SplitHostTokens(cell string) []string {
	if !strings.Contains(cell, ";") {
		tok := strings.TrimSpace(cell)
		if tok == "" {
			return nil
		}
		return []string{tok}
	}
	var toks []string
	for _, piece := range strings.Split(cell, ";") {
		p := strings.TrimSpace(piece)
		if p == "" || strings.EqualFold(p, "multiple") {
			continue
		}
		toks = append(toks, p)
	}
	return toks
}

// Expand produces one attribution per resolvable host-country token in
// the table. Records without a host-country cell and tokens that do not
// resolve contribute nothing.
func Expand(t *Table) []Attribution {
	if !t.HasColumn(ColHostCountry) {
		return nil
	}
	var out []Attribution
	for i := range t.Records {
		rec := &t.Records[i]
		if !rec.Has(ColHostCountry) {
			continue
		}
		for _, tok := range SplitHostTokens(rec.Text(ColHostCountry)) {
			iso3, ok := ResolveISO3(tok)
			if !ok {
				continue
			}
			out = append(out, Attribution{Record: rec, Label: tok, ISO3: iso3})
		}
	}
	return out
}
