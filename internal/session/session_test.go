package session

import (
	"reflect"
	"testing"

	"astrodash/internal"
	"astrodash/internal/pipeline"
)

func testRecords() []internal.Record {
	return []internal.Record{
		{Name: "A", Year: 1965, Gender: "male", Nationality: "U.S.", EVAActivity: internal.EVANo, OverallNumber: 2, NationwideNumber: 2},
		{Name: "B", Year: 1965, Gender: "female", Nationality: "U.S.S.R.", EVAActivity: internal.EVAYes, OverallNumber: 3, NationwideNumber: 1},
		{Name: "C", Year: 1970, Gender: "male", Nationality: "U.S.", EVAActivity: internal.EVANo, OverallNumber: 10, NationwideNumber: 7},
	}
}

func TestChartsMemoized(t *testing.T) {
	s := New(testRecords(), 10)
	f := pipeline.Filters{YearFrom: 1961, YearTo: 1969}

	first := s.Charts(f)
	second := s.Charts(f)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical filters produced different chart sets")
	}

	want := []internal.YearCount{{Year: 1965, Total: 3}}
	if !reflect.DeepEqual(first.CumulativeByYear, want) {
		t.Fatalf("got %v want %v", first.CumulativeByYear, want)
	}
}

func TestChartsAfterFilterChange(t *testing.T) {
	s := New(testRecords(), 10)

	narrow := s.Charts(pipeline.Filters{YearFrom: 1961, YearTo: 1969})
	wide := s.Charts(pipeline.Filters{YearFrom: 1961, YearTo: 1975})
	if len(narrow.CumulativeByYear) != 1 || len(wide.CumulativeByYear) != 2 {
		t.Fatalf("narrow=%v wide=%v", narrow.CumulativeByYear, wide.CumulativeByYear)
	}
}

func TestChartsMemoDistinguishesSelections(t *testing.T) {
	// Nationality labels can contain commas; a one-element selection
	// holding "Korea, South" must never share a memo entry with the
	// two-element selection {"Korea", "South"}.
	records := []internal.Record{
		{Name: "A", Year: 1965, Gender: "male", Nationality: "Korea, South", EVAActivity: internal.EVANo, OverallNumber: 1, NationwideNumber: 1},
		{Name: "B", Year: 1966, Gender: "female", Nationality: "Korea", EVAActivity: internal.EVANo, OverallNumber: 2, NationwideNumber: 1},
	}
	s := New(records, 10)

	joined := s.Charts(pipeline.Filters{YearFrom: 1961, YearTo: 1970, Nationalities: []string{"Korea, South"}})
	split := s.Charts(pipeline.Filters{YearFrom: 1961, YearTo: 1970, Nationalities: []string{"Korea", "South"}})

	wantJoined := []internal.CategoryCount{{Value: "male", Count: 1}}
	if !reflect.DeepEqual(joined.GenderSplit, wantJoined) {
		t.Fatalf("joined selection: got %v want %v", joined.GenderSplit, wantJoined)
	}
	wantSplit := []internal.CategoryCount{{Value: "female", Count: 1}}
	if !reflect.DeepEqual(split.GenderSplit, wantSplit) {
		t.Fatalf("split selection served stale charts: got %v want %v", split.GenderSplit, wantSplit)
	}
}

func TestDefaultFilters(t *testing.T) {
	s := New(testRecords(), 10)
	f := s.DefaultFilters()
	if f.YearFrom != 1965 || f.YearTo != 1970 {
		t.Fatalf("year bounds: %+v", f)
	}
	if f.Genders != nil || f.Nationalities != nil {
		t.Fatalf("default sets must be unrestricted: %+v", f)
	}

	set := s.Charts(f)
	if len(set.GenderSplit) != 2 {
		t.Fatalf("gender split: %v", set.GenderSplit)
	}
}

func TestReplaceDropsMemo(t *testing.T) {
	s := New(testRecords(), 10)
	f := pipeline.Filters{YearFrom: 1961, YearTo: 1975}

	before := s.Charts(f)
	s.Replace(testRecords()[:1])
	after := s.Charts(f)

	if reflect.DeepEqual(before, after) {
		t.Fatal("replaced table still served memoized charts")
	}
	if len(after.CumulativeByYear) != 1 {
		t.Fatalf("after replace: %v", after.CumulativeByYear)
	}
}
