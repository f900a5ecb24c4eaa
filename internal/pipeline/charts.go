package pipeline

import "astrodash/internal"

// BuildChartSet applies the filters and derives the four chart tables from
// the filtered view. Each aggregate is a pure function of the filtered rows;
// recomputing on the same input yields identical output.
func BuildChartSet(records []internal.Record, f Filters, topN int) internal.ChartSet {
	filtered := Apply(records, f)
	return internal.ChartSet{
		CumulativeByYear: CumulativeByYear(filtered),
		TopNationalities: TopNationalitiesByGender(filtered, topN),
		GenderSplit:      GenderSplit(filtered),
		EVASplit:         EVASplit(filtered),
		NationalTotals:   NationalTotals(filtered),
	}
}
