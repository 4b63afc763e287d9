// Package analytics turns the flat record set into the shapes each dashboard
// view needs. Every function here is pure: inputs are never mutated and no
// aggregate state survives a call.
package analytics

import (
	"strings"

	"github.com/waste-analytics/internal/domain"
)

// PredicateSet is the combined filter configuration coming from the UI.
// An empty selection means "no restriction", not "match nothing".
type PredicateSet struct {
	Cities          []string `json:"cities,omitempty"`
	WasteTypes      []string `json:"waste_types,omitempty"`
	DisposalMethods []string `json:"disposal_methods,omitempty"`
	SearchText      string   `json:"search_text,omitempty"`
}

// IsEmpty reports whether the set restricts nothing.
func (p PredicateSet) IsEmpty() bool {
	return len(p.Cities) == 0 &&
		len(p.WasteTypes) == 0 &&
		len(p.DisposalMethods) == 0 &&
		p.SearchText == ""
}

// Apply returns the records matching every predicate, in input order.
// An empty predicate set returns the input unchanged.
func Apply(records []domain.Record, p PredicateSet) []domain.Record {
	if p.IsEmpty() {
		return records
	}

	cities := toSet(p.Cities)
	wasteTypes := toSet(p.WasteTypes)
	methods := toSet(p.DisposalMethods)
	term := strings.ToLower(p.SearchText)

	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if !allowed(cities, r.City) ||
			!allowed(wasteTypes, r.WasteType) ||
			!allowed(methods, r.DisposalMethod) {
			continue
		}
		if term != "" && !matchesText(r, term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// matchesText checks every field's string form separately so a term never
// matches across a field boundary.
func matchesText(r domain.Record, lowerTerm string) bool {
	for _, s := range r.Strings() {
		if strings.Contains(strings.ToLower(s), lowerTerm) {
			return true
		}
	}
	return false
}

// toSet returns nil for an empty selection.
func toSet(items []string) map[string]struct{} {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

func allowed(set map[string]struct{}, value string) bool {
	if set == nil {
		return true
	}
	_, ok := set[value]
	return ok
}
