package analytics

import (
	"github.com/waste-analytics/internal/domain"
)

// Column описывает колонку таблицы данных
type Column struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Numeric bool   `json:"numeric"`
}

// TableColumns - колонки таблицы в порядке полей датасета
var TableColumns = []Column{
	{Key: "city", Label: "City"},
	{Key: "WasteType", Label: "Waste Type"},
	{Key: "WasteGenerated", Label: "Waste Generated (Tons)", Numeric: true},
	{Key: "RecyclingRate", Label: "Recycling Rate (%)", Numeric: true},
	{Key: "MES", Label: "Municipal Efficiency Score", Numeric: true},
	{Key: "disposal_method", Label: "Disposal Method"},
	{Key: "CostofWasteManagement", Label: "Cost (₹/Ton)", Numeric: true},
	{Key: "AwarenessCampaignsCount", Label: "Awareness Campaigns", Numeric: true},
	{Key: "PopulationDensity", Label: "Population Density (People/km²)", Numeric: true},
	{Key: "LandfillCapacity", Label: "Landfill Capacity (Tons)", Numeric: true},
	{Key: "Year", Label: "Year", Numeric: true},
}

// TableParams - фильтры таблицы и окно страницы. Limit <= 0 отдаёт все строки.
type TableParams struct {
	Predicates PredicateSet
	Page       int
	Limit      int
}

// TableOutput - страница строк таблицы
type TableOutput struct {
	Columns  []Column        `json:"columns"`
	Rows     []domain.Record `json:"rows"`
	Total    int             `json:"total"`
	Filtered int             `json:"filtered"`
	Page     int             `json:"page"`
	Limit    int             `json:"limit"`
}

// Table filters the records by every predicate and returns one page of rows.
// Missing values were defaulted at load time, so rows are emitted as-is.
func Table(records []domain.Record, params TableParams) TableOutput {
	matched := Apply(records, params.Predicates)

	page := params.Page
	if page < 1 {
		page = 1
	}

	rows := matched
	if params.Limit > 0 {
		start := (page - 1) * params.Limit
		if start > len(matched) {
			start = len(matched)
		}
		end := start + params.Limit
		if end > len(matched) {
			end = len(matched)
		}
		rows = matched[start:end]
	}

	out := make([]domain.Record, len(rows))
	copy(out, rows)

	return TableOutput{
		Columns:  TableColumns,
		Rows:     out,
		Total:    len(records),
		Filtered: len(matched),
		Page:     page,
		Limit:    params.Limit,
	}
}
