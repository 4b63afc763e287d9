package analytics

import (
	"sort"

	"github.com/waste-analytics/internal/domain"
)

// LandfillParams - выбранные города; ShowAll отменяет выбор
type LandfillParams struct {
	Cities  []string
	ShowAll bool
}

// LandfillOutput - ёмкость полигонов относительно плотности населения
type LandfillOutput struct {
	Scatter   ScatterChart `json:"scatter"`
	ByDensity BarChart     `json:"by_density"`
}

// Landfill takes, per city, the population density and landfill capacity of
// the first record seen for that city. The scatter keeps first-seen order;
// the bar chart is sorted by density descending.
func Landfill(records []domain.Record, params LandfillParams) LandfillOutput {
	selected := records
	if !params.ShowAll {
		selected = Apply(records, PredicateSet{Cities: params.Cities})
	}

	firsts := FirstSeen(selected, func(r domain.Record) string { return r.City },
		domain.FieldPopulationDensity, domain.FieldLandfillCapacity)

	points := make([]ScatterPoint, 0, len(firsts))
	for _, f := range firsts {
		points = append(points, ScatterPoint{
			Label: f.Key,
			X:     f.Value(domain.FieldPopulationDensity),
			Y:     f.Value(domain.FieldLandfillCapacity),
		})
	}

	sorted := make([]FirstValue, len(firsts))
	copy(sorted, firsts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value(domain.FieldPopulationDensity) > sorted[j].Value(domain.FieldPopulationDensity)
	})

	cities := make([]string, 0, len(sorted))
	capacities := make([]float64, 0, len(sorted))
	for _, f := range sorted {
		cities = append(cities, f.Key)
		capacities = append(capacities, f.Value(domain.FieldLandfillCapacity))
	}

	return LandfillOutput{
		Scatter: ScatterChart{
			XLabel: "Population Density (People/km²)",
			YLabel: "Landfill Capacity (Tons)",
			Points: points,
		},
		ByDensity: newBarChart("Landfill Capacity (Tons)", cities, capacities),
	}
}
