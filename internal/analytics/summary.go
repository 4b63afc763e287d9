package analytics

import (
	"sort"

	"github.com/waste-analytics/internal/domain"
)

// Summarize computes the headline statistics of a record set.
func Summarize(records []domain.Record) domain.DatasetSummary {
	cities := make(map[string]struct{})
	for _, r := range records {
		cities[r.City] = struct{}{}
	}

	return domain.DatasetSummary{
		TotalRecords:     len(records),
		TotalCities:      len(cities),
		TotalWaste:       Sum(records, domain.FieldWasteGenerated),
		AvgRecyclingRate: Mean(records, domain.FieldRecyclingRate),
		AvgMES:           Mean(records, domain.FieldMES),
	}
}

// Options returns the sorted distinct values for each selection control.
func Options(records []domain.Record) domain.FilterOptions {
	return domain.FilterOptions{
		Cities:          distinctSorted(records, func(r domain.Record) string { return r.City }),
		WasteTypes:      distinctSorted(records, func(r domain.Record) string { return r.WasteType }),
		DisposalMethods: distinctSorted(records, func(r domain.Record) string { return r.DisposalMethod }),
	}
}

func distinctSorted(records []domain.Record, get func(domain.Record) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range records {
		v := get(r)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
