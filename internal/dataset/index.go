package dataset

import (
	"sort"

	"astrodash/internal"
)

// Index holds the distinct filterable values of a loaded table. The serving
// layer uses it to populate filter controls and to default unrestricted
// filters to "everything present in the data".
type Index struct {
	Years         []int
	YearMin       int
	YearMax       int
	Genders       []string
	Nationalities []string
}

// BuildIndex scans records once. Genders and nationalities keep
// first-encounter order; years are sorted ascending.
func BuildIndex(records []internal.Record) *Index {
	idx := &Index{}

	seenYears := map[int]struct{}{}
	seenGenders := map[string]struct{}{}
	seenNats := map[string]struct{}{}

	for _, r := range records {
		if _, ok := seenYears[r.Year]; !ok {
			seenYears[r.Year] = struct{}{}
			idx.Years = append(idx.Years, r.Year)
		}
		if _, ok := seenGenders[r.Gender]; !ok {
			seenGenders[r.Gender] = struct{}{}
			idx.Genders = append(idx.Genders, r.Gender)
		}
		if _, ok := seenNats[r.Nationality]; !ok {
			seenNats[r.Nationality] = struct{}{}
			idx.Nationalities = append(idx.Nationalities, r.Nationality)
		}
	}

	sort.Ints(idx.Years)
	if len(idx.Years) > 0 {
		idx.YearMin = idx.Years[0]
		idx.YearMax = idx.Years[len(idx.Years)-1]
	}

	return idx
}
