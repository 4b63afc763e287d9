package analytics

import (
	"math"

	"github.com/waste-analytics/internal/domain"
)

// AllWasteTypes - значение селектора типа отходов без ограничения
const AllWasteTypes = "All"

// GeographicParams - выбранные города и тип отходов ("All" или пусто - все)
type GeographicParams struct {
	Cities    []string
	WasteType string
}

// Marker - город на карте с агрегатами для всплывающей подсказки
type Marker struct {
	City              string  `json:"city"`
	Lat               float64 `json:"lat"`
	Lon               float64 `json:"lon"`
	TotalWaste        float64 `json:"total_waste"`
	PopulationDensity float64 `json:"population_density"`
	LandfillCapacity  float64 `json:"landfill_capacity"`
	Radius            float64 `json:"radius"`
}

// GeographicOutput - маркеры и начальный вид карты
type GeographicOutput struct {
	Center  domain.Point `json:"center"`
	Zoom    int          `json:"zoom"`
	Markers []Marker     `json:"markers"`
}

// Geographic aggregates the selected records per city and places one marker
// per city that has known coordinates. Cities without coordinates are left
// off the map.
func Geographic(records []domain.Record, params GeographicParams) GeographicOutput {
	predicates := PredicateSet{Cities: params.Cities}
	if params.WasteType != "" && params.WasteType != AllWasteTypes {
		predicates.WasteTypes = []string{params.WasteType}
	}
	selected := Apply(records, predicates)

	totals := GroupBy(selected, ByCity, domain.FieldWasteGenerated)
	firsts := FirstSeen(selected, func(r domain.Record) string { return r.City },
		domain.FieldPopulationDensity, domain.FieldLandfillCapacity)

	markers := make([]Marker, 0, len(firsts))
	for _, f := range firsts {
		pos, ok := domain.LookupCity(f.Key)
		if !ok {
			continue
		}
		bucket, _ := totals.Get(GroupKey{Primary: f.Key})
		total := bucket.Sum(domain.FieldWasteGenerated)

		markers = append(markers, Marker{
			City:              f.Key,
			Lat:               pos.Lat,
			Lon:               pos.Lon,
			TotalWaste:        total,
			PopulationDensity: f.Value(domain.FieldPopulationDensity),
			LandfillCapacity:  f.Value(domain.FieldLandfillCapacity),
			Radius:            MarkerRadius(total),
		})
	}

	return GeographicOutput{
		Center:  domain.MapCenter,
		Zoom:    domain.MapZoom,
		Markers: markers,
	}
}

// MarkerRadius scales a marker by the square root of the city's total waste.
func MarkerRadius(totalWaste float64) float64 {
	if totalWaste <= 0 {
		return 0
	}
	return math.Sqrt(totalWaste) / 50
}
