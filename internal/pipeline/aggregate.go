package pipeline

import (
	"sort"

	"astrodash/internal"
)

// CumulativeByYear groups filtered rows by year and keeps the maximum of
// the overall cumulative counter per group. The counter is non-decreasing
// in natural record order, so the maximum is the latest value for that
// year. Output is ordered by year ascending; empty input yields an empty
// series.
func CumulativeByYear(rows []internal.Record) []internal.YearCount {
	max := map[int]int{}
	for _, r := range rows {
		if v, ok := max[r.Year]; !ok || r.OverallNumber > v {
			max[r.Year] = r.OverallNumber
		}
	}

	years := make([]int, 0, len(max))
	for year := range max {
		years = append(years, year)
	}
	sort.Ints(years)

	out := make([]internal.YearCount, 0, len(years))
	for _, year := range years {
		out = append(out, internal.YearCount{Year: year, Total: max[year]})
	}
	return out
}

// TopNationalitiesByGender selects the n most frequent nationalities in the
// filtered rows and counts every observed (nationality, gender) pair among
// them. Nationalities are emitted in descending total-count order; at equal
// counts the first-encountered nationality wins. Genders keep
// first-encounter order within each nationality.
func TopNationalitiesByGender(rows []internal.Record, n int) []internal.NationalityGenderCount {
	counts := map[string]int{}
	var order []string
	for _, r := range rows {
		if _, ok := counts[r.Nationality]; !ok {
			order = append(order, r.Nationality)
		}
		counts[r.Nationality]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	top := make(map[string]struct{}, len(order))
	for _, nat := range order {
		top[nat] = struct{}{}
	}

	pairCounts := map[string]map[string]int{}
	genderOrder := map[string][]string{}
	for _, r := range rows {
		if _, ok := top[r.Nationality]; !ok {
			continue
		}
		if pairCounts[r.Nationality] == nil {
			pairCounts[r.Nationality] = map[string]int{}
		}
		if _, ok := pairCounts[r.Nationality][r.Gender]; !ok {
			genderOrder[r.Nationality] = append(genderOrder[r.Nationality], r.Gender)
		}
		pairCounts[r.Nationality][r.Gender]++
	}

	out := make([]internal.NationalityGenderCount, 0, len(order)*2)
	for _, nat := range order {
		for _, gender := range genderOrder[nat] {
			out = append(out, internal.NationalityGenderCount{
				Nationality: nat,
				Gender:      gender,
				Count:       pairCounts[nat][gender],
			})
		}
	}
	return out
}

// CountByPerson deduplicates rows by name (first occurrence wins, so a
// person flying several missions counts once) and tallies the selected
// category among the deduplicated rows. Values keep first-encounter order.
func CountByPerson(rows []internal.Record, category func(internal.Record) string) []internal.CategoryCount {
	seen := map[string]struct{}{}
	counts := map[string]int{}
	var order []string

	for _, r := range rows {
		if _, ok := seen[r.Name]; ok {
			continue
		}
		seen[r.Name] = struct{}{}

		value := category(r)
		if _, ok := counts[value]; !ok {
			order = append(order, value)
		}
		counts[value]++
	}

	out := make([]internal.CategoryCount, 0, len(order))
	for _, value := range order {
		out = append(out, internal.CategoryCount{Value: value, Count: counts[value]})
	}
	return out
}

// GenderSplit is the per-person gender breakdown.
func GenderSplit(rows []internal.Record) []internal.CategoryCount {
	return CountByPerson(rows, func(r internal.Record) string { return r.Gender })
}

// EVASplit is the per-person EVA-activity breakdown.
func EVASplit(rows []internal.Record) []internal.CategoryCount {
	return CountByPerson(rows, func(r internal.Record) string { return r.EVAActivity })
}

// NationalTotals groups filtered rows by nationality and keeps the maximum
// of the nationwide cumulative counter per group. Output is ordered by
// descending total; at equal totals the first-encountered nationality wins.
func NationalTotals(rows []internal.Record) []internal.CountryCount {
	max := map[string]int{}
	var order []string
	for _, r := range rows {
		if v, ok := max[r.Nationality]; !ok {
			order = append(order, r.Nationality)
			max[r.Nationality] = r.NationwideNumber
		} else if r.NationwideNumber > v {
			max[r.Nationality] = r.NationwideNumber
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return max[order[i]] > max[order[j]]
	})

	out := make([]internal.CountryCount, 0, len(order))
	for _, nat := range order {
		out = append(out, internal.CountryCount{Nationality: nat, Total: max[nat]})
	}
	return out
}
