package analytics

import (
	"sort"

	"github.com/waste-analytics/internal/domain"
)

// CostParams - выбранные города и типы отходов
type CostParams struct {
	Cities     []string
	WasteTypes []string
}

// CostOutput - стоимость обращения с отходами по городам и переработка по типам
type CostOutput struct {
	CostByCity      BarChart `json:"cost_by_city"`
	RecyclingByType BarChart `json:"recycling_by_type"`
}

// Cost restricts records to the city and waste-type selections, then returns
// average cost per city sorted descending and average recycling rate per
// waste type in first-seen order.
func Cost(records []domain.Record, params CostParams) CostOutput {
	selected := Apply(records, PredicateSet{Cities: params.Cities, WasteTypes: params.WasteTypes})

	byCity := GroupBy(selected, ByCity, domain.FieldCostOfWasteManagement)
	ranked := make([]*Bucket, 0, byCity.Len())
	byCity.Each(func(b *Bucket) { ranked = append(ranked, b) })
	sort.SliceStable(ranked, func(i, j int) bool {
		return Average(ranked[i], domain.FieldCostOfWasteManagement) > Average(ranked[j], domain.FieldCostOfWasteManagement)
	})

	cities := make([]string, 0, len(ranked))
	costs := make([]float64, 0, len(ranked))
	for _, b := range ranked {
		cities = append(cities, b.Key.Primary)
		costs = append(costs, Average(b, domain.FieldCostOfWasteManagement))
	}

	byType := GroupBy(selected, ByWasteType, domain.FieldRecyclingRate)
	types := make([]string, 0, byType.Len())
	rates := make([]float64, 0, byType.Len())
	byType.Each(func(b *Bucket) {
		types = append(types, b.Key.Primary)
		rates = append(rates, Average(b, domain.FieldRecyclingRate))
	})

	return CostOutput{
		CostByCity:      newBarChart("Average Cost (₹/Ton)", cities, costs),
		RecyclingByType: newBarChart("Average Recycling Rate (%)", types, rates),
	}
}
