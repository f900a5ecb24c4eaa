package pipeline

import (
	"astrodash/internal"
	"astrodash/internal/dataset"
)

// Filters restricts the loaded table before aggregation. The year range is
// inclusive on both ends; a zero range means unrestricted. A nil Genders or
// Nationalities slice means unrestricted, while a non-nil empty slice means
// "none selected" and yields an empty result.
type Filters struct {
	YearFrom      int      `json:"year_from"`
	YearTo        int      `json:"year_to"`
	Genders       []string `json:"genders"`
	Nationalities []string `json:"nationalities"`
}

// DefaultFilters covers everything present in the data.
func DefaultFilters(idx *dataset.Index) Filters {
	return Filters{YearFrom: idx.YearMin, YearTo: idx.YearMax}
}

// Apply returns the subsequence of records matching all three predicates,
// preserving input order. The input slice is never mutated.
func Apply(records []internal.Record, f Filters) []internal.Record {
	genders := toSet(f.Genders)
	nationalities := toSet(f.Nationalities)
	unboundedYears := f.YearFrom == 0 && f.YearTo == 0

	out := make([]internal.Record, 0, len(records))
	for _, r := range records {
		if !unboundedYears && (r.Year < f.YearFrom || r.Year > f.YearTo) {
			continue
		}
		if genders != nil {
			if _, ok := genders[r.Gender]; !ok {
				continue
			}
		}
		if nationalities != nil {
			if _, ok := nationalities[r.Nationality]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	if values == nil {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
