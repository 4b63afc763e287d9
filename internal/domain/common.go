package domain

import "time"

type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

// DatasetSummary - сводные показатели по всему датасету
type DatasetSummary struct {
	TotalRecords     int     `json:"total_records"`
	TotalCities      int     `json:"total_cities"`
	TotalWaste       float64 `json:"total_waste"`
	AvgRecyclingRate float64 `json:"avg_recycling_rate"`
	AvgMES           float64 `json:"avg_mes"`
}

// FilterOptions - отсортированные уникальные значения для фильтров UI
type FilterOptions struct {
	Cities          []string `json:"cities"`
	WasteTypes      []string `json:"waste_types"`
	DisposalMethods []string `json:"disposal_methods"`
}

// DatasetInfo - состояние загруженного датасета
type DatasetInfo struct {
	Source   string    `json:"source"`
	Loaded   bool      `json:"loaded"`
	Records  int       `json:"records"`
	Filtered int       `json:"filtered"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
}
