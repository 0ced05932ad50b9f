package api

import (
	"net/http"
	"strconv"
	"sync"

	"cdmboard/internal/engine"
	"cdmboard/internal/models"

	"github.com/labstack/echo/v4"
)

// Query parameter → table column for the multiselect filter dimensions.
var filterParams = map[string]string{
	"region":      engine.ColRegion,
	"subregion":   engine.ColSubRegion,
	"host":        engine.ColHostCountry,
	"type":        engine.ColType,
	"tech":        engine.ColTechType,
	"transition":  engine.ColTransitionRequest,
	"methodology": engine.ColMethodology,
	"approved":    engine.ColApprovedByHost,
}

// Detail-table column order, restricted to columns actually present.
var preferredColumns = []string{
	engine.ColRegion,
	engine.ColSubRegion,
	engine.ColHostCountry,
	engine.ColTitle,
	engine.ColType,
	engine.ColTechType,
	engine.ColReductions,
	engine.ColPeriodFrom,
	engine.ColPeriodTo,
	engine.ColTransitionRequest,
	engine.ColMethodology,
	engine.ColSectoralScope,
	engine.ColApprovedByHost,
	engine.ColApprovalDate,
}

const (
	minTopN = 5
	maxTopN = 30
)

// Handler serves the dashboard API. The table is installed by a
// background loader after startup; data endpoints answer 503 until then.
type Handler struct {
	mu          sync.RWMutex
	table       *engine.Table
	defaultTopN int
}

func NewHandler(table *engine.Table, defaultTopN int) *Handler {
	return &Handler{table: table, defaultTopN: defaultTopN}
}

// SetTable swaps in a freshly loaded table.
func (h *Handler) SetTable(t *engine.Table) {
	h.mu.Lock()
	h.table = t
	h.mu.Unlock()
}

func (h *Handler) snapshot() *engine.Table {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.table
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/health", h.GetHealth)
	api.GET("/dashboard", h.GetDashboard)
	api.GET("/records", h.GetRecords)
	api.GET("/filters/options", h.GetFilterOptions)
}

// --- HANDLERS ---

func (h *Handler) GetHealth(c echo.Context) error {
	table := h.snapshot()
	return c.JSON(http.StatusOK, models.Health{
		Status: "ok",
		Loaded: table != nil,
		Rows:   table.Len(),
	})
}

func (h *Handler) GetDashboard(c echo.Context) error {
	table := h.snapshot()
	if table == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "dataset is still loading")
	}

	filtered := engine.Apply(table, filterSpecFromQuery(c))
	summary := engine.Summarize(filtered)
	attrs := engine.Expand(filtered)

	topHosts := make([]models.HostCount, 0)
	for _, lc := range engine.CountByLabel(attrs, h.topNParam(c)) {
		topHosts = append(topHosts, models.HostCount{HostParty: lc.Label, Activities: lc.Count})
	}

	geo := engine.CountByISO3(attrs)
	mapData := make([]models.MapEntry, 0, len(geo))
	for iso3, n := range geo {
		mapData = append(mapData, models.MapEntry{ISO3: iso3, Activities: n})
	}

	columns := displayColumns(table)
	return c.JSON(http.StatusOK, models.DashboardData{
		KPIs: models.KPISet{
			Selected:            summary.Count,
			RequestedTransition: summary.RequestedTransition,
			ApprovedByHostParty: summary.ApprovedByHost,
			ReductionsSum:       summary.ReductionsSum,
		},
		TopHosts: topHosts,
		Map:      mapData,
		Columns:  columns,
		Rows:     rowsFor(filtered, columns),
		Total:    filtered.Len(),
	})
}

func (h *Handler) GetRecords(c echo.Context) error {
	table := h.snapshot()
	if table == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "dataset is still loading")
	}

	filtered := engine.Apply(table, filterSpecFromQuery(c))
	total := filtered.Len()
	limit, offset := getPaginationParams(c, total)

	if offset >= total {
		return c.JSON(http.StatusOK, models.RecordsPage{
			Data: []models.TableRow{}, Total: total, Limit: limit, Offset: offset,
		})
	}

	end := offset + limit
	if end > total {
		end = total
	}

	page := filtered.Subset(filtered.Records[offset:end])
	return c.JSON(http.StatusOK, models.RecordsPage{
		Data:   rowsFor(page, displayColumns(table)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *Handler) GetFilterOptions(c echo.Context) error {
	table := h.snapshot()
	if table == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "dataset is still loading")
	}

	options := make(map[string][]string, len(filterParams))
	for param, col := range filterParams {
		vals := table.DistinctValues(col)
		if vals == nil {
			vals = []string{}
		}
		options[param] = vals
	}
	return c.JSON(http.StatusOK, options)
}

// --- HELPERS ---

func filterSpecFromQuery(c echo.Context) engine.FilterSpec {
	spec := engine.FilterSpec{Columns: make(map[string][]string)}
	params := c.QueryParams()
	for param, col := range filterParams {
		if vals := params[param]; len(vals) > 0 {
			spec.Columns[col] = vals
		}
	}
	spec.Search = c.QueryParam("q")
	return spec
}

// topNParam reads top_n, clamped to [minTopN, maxTopN]. Missing or bad
// values fall back to the configured default.
func (h *Handler) topNParam(c echo.Context) int {
	n, err := strconv.Atoi(c.QueryParam("top_n"))
	if err != nil {
		return h.defaultTopN
	}
	if n < minTopN {
		n = minTopN
	}
	if n > maxTopN {
		n = maxTopN
	}
	return n
}

func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// displayColumns returns the preferred detail columns present in the
// table, or all columns when none of the preferred ones exist.
func displayColumns(t *engine.Table) []string {
	var cols []string
	for _, c := range preferredColumns {
		if t.HasColumn(c) {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		cols = t.Columns
	}
	return cols
}

func rowsFor(t *engine.Table, columns []string) []models.TableRow {
	rows := make([]models.TableRow, 0, t.Len())
	for _, rec := range t.Records {
		cells := make(map[string]string, len(columns))
		for _, col := range columns {
			if rec.Has(col) {
				cells[col] = rec.Text(col)
			}
		}
		rows = append(rows, models.TableRow{ID: rec.ID, Cells: cells})
	}
	return rows
}
