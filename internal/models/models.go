package models

// DashboardData is the render-ready payload for one filter cycle:
// KPIs, bar-chart counts, choropleth counts, and the detail table.
type DashboardData struct {
	KPIs     KPISet      `json:"kpis"`
	TopHosts []HostCount `json:"top_hosts"`
	Map      []MapEntry  `json:"map"`
	Columns  []string    `json:"columns"`
	Rows     []TableRow  `json:"rows"`
	Total    int         `json:"total"`
}

// KPISet holds the header metrics.
type KPISet struct {
	Selected            int     `json:"selected"`
	RequestedTransition int     `json:"requested_transition"`
	ApprovedByHostParty int     `json:"approved_by_host_party"`
	ReductionsSum       float64 `json:"reductions_sum_ktco2e_yr"`
}

// HostCount is one bar of the host-party chart, grouped by the raw
// cleaned label rather than ISO3.
type HostCount struct {
	HostParty  string `json:"host_party"`
	Activities int    `json:"activities"`
}

// MapEntry is one shaded country of the choropleth.
type MapEntry struct {
	ISO3       string `json:"iso3"`
	Activities int    `json:"activities"`
}

// TableRow is one detail-table row.
type TableRow struct {
	ID    string            `json:"id"`
	Cells map[string]string `json:"cells"`
}

// RecordsPage is a paginated slice of filtered records.
type RecordsPage struct {
	Data   []TableRow `json:"data"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

// Health reports load status.
type Health struct {
	Status string `json:"status"`
	Loaded bool   `json:"loaded"`
	Rows   int    `json:"rows"`
}
