package internal

// EVA activity flag values derived from the lifetime EVA duration.
const (
	EVAYes = "yes"
	EVANo  = "no"
)

// Record is one mission-participation event. A person appears once per
// mission, so Name is not unique across rows; per-person statistics dedup
// on it.
type Record struct {
	Name             string `json:"name"`
	Year             int    `json:"year"`
	Gender           string `json:"gender"`
	Nationality      string `json:"nationality"`
	MissionRole      string `json:"mission_role"`
	EVAActivity      string `json:"eva_activity"`
	OverallNumber    int    `json:"overall_number"`
	NationwideNumber int    `json:"nationwide_number"`
}

// YearCount is one point of the cumulative-overall-by-year series.
type YearCount struct {
	Year  int `json:"year"`
	Total int `json:"total"`
}

// NationalityGenderCount is one bar of the top-nationalities chart.
type NationalityGenderCount struct {
	Nationality string `json:"nationality"`
	Gender      string `json:"gender"`
	Count       int    `json:"count"`
}

// CategoryCount is one slice of a per-person breakdown (gender or EVA).
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CountryCount is one country of the choropleth table. Total carries the
// maximum nationwide cumulative counter seen for that nationality.
type CountryCount struct {
	Nationality string `json:"nationality"`
	Total       int    `json:"total"`
}

// ChartSet bundles the four chart-ready tables produced from one filtered
// view of the dataset.
type ChartSet struct {
	CumulativeByYear []YearCount              `json:"cumulative_by_year"`
	TopNationalities []NationalityGenderCount `json:"top_nationalities"`
	GenderSplit      []CategoryCount          `json:"gender_split"`
	EVASplit         []CategoryCount          `json:"eva_split"`
	NationalTotals   []CountryCount           `json:"national_totals"`
}

// DatasetMeta describes the snapshot currently held in storage.
type DatasetMeta struct {
	SourcePath  string `json:"sourcePath"`
	IngestedAt  string `json:"ingestedAt"`
	RecordCount int    `json:"recordCount"`
}
