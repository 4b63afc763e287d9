package analytics

import (
	"sort"

	"github.com/waste-analytics/internal/domain"
)

// DefaultTopCities - сколько городов показывает рейтинг переработки
const DefaultTopCities = 10

// OverviewParams - параметры обзорного экрана
type OverviewParams struct {
	Top int
}

// OverviewOutput - рейтинг городов по переработке и объём отходов по типам
type OverviewOutput struct {
	TopRecycling BarChart `json:"top_recycling"`
	WasteByType  BarChart `json:"waste_by_type"`
}

// Overview builds the top-N cities by average recycling rate (descending,
// ties keep first-seen order) and total waste generated per waste type.
func Overview(records []domain.Record, params OverviewParams) OverviewOutput {
	top := params.Top
	if top <= 0 {
		top = DefaultTopCities
	}

	byCity := GroupBy(records, ByCity, domain.FieldRecyclingRate)
	ranked := make([]*Bucket, 0, byCity.Len())
	byCity.Each(func(b *Bucket) { ranked = append(ranked, b) })

	sort.SliceStable(ranked, func(i, j int) bool {
		return Average(ranked[i], domain.FieldRecyclingRate) > Average(ranked[j], domain.FieldRecyclingRate)
	})
	if len(ranked) > top {
		ranked = ranked[:top]
	}

	cities := make([]string, 0, len(ranked))
	rates := make([]float64, 0, len(ranked))
	for _, b := range ranked {
		cities = append(cities, b.Key.Primary)
		rates = append(rates, Average(b, domain.FieldRecyclingRate))
	}

	byType := GroupBy(records, ByWasteType, domain.FieldWasteGenerated)
	types := make([]string, 0, byType.Len())
	totals := make([]float64, 0, byType.Len())
	byType.Each(func(b *Bucket) {
		types = append(types, b.Key.Primary)
		totals = append(totals, b.Sum(domain.FieldWasteGenerated))
	})

	return OverviewOutput{
		TopRecycling: newBarChart("Average Recycling Rate (%)", cities, rates),
		WasteByType:  newBarChart("Total Waste Generated (Tons)", types, totals),
	}
}
