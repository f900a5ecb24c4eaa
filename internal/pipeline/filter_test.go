package pipeline

import (
	"reflect"
	"testing"

	"astrodash/internal"
)

func sampleRecords() []internal.Record {
	return []internal.Record{
		{Name: "Yuri Gagarin", Year: 1961, Gender: "male", Nationality: "U.S.S.R/Russia", OverallNumber: 1, NationwideNumber: 1},
		{Name: "Alan Shepard", Year: 1961, Gender: "male", Nationality: "U.S.", OverallNumber: 2, NationwideNumber: 1},
		{Name: "Valentina Tereshkova", Year: 1963, Gender: "female", Nationality: "U.S.S.R/Russia", OverallNumber: 6, NationwideNumber: 6},
		{Name: "Neil Armstrong", Year: 1966, Gender: "male", Nationality: "U.S.", EVAActivity: internal.EVAYes, OverallNumber: 24, NationwideNumber: 14},
		{Name: "Neil Armstrong", Year: 1969, Gender: "male", Nationality: "U.S.", EVAActivity: internal.EVAYes, OverallNumber: 40, NationwideNumber: 22},
		{Name: "Sally Ride", Year: 1983, Gender: "female", Nationality: "U.S.", OverallNumber: 120, NationwideNumber: 79},
		{Name: "Ulf Merbold", Year: 1983, Gender: "male", Nationality: "Germany", OverallNumber: 115, NationwideNumber: 1},
	}
}

func TestApplyYearRange(t *testing.T) {
	records := sampleRecords()
	got := Apply(records, Filters{YearFrom: 1961, YearTo: 1966})
	if len(got) != 4 {
		t.Fatalf("got %d rows, want 4", len(got))
	}
	for _, r := range got {
		if r.Year < 1961 || r.Year > 1966 {
			t.Fatalf("row outside range: %+v", r)
		}
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	records := sampleRecords()
	got := Apply(records, Filters{YearFrom: 1961, YearTo: 1990})
	if !reflect.DeepEqual(got, records) {
		t.Fatal("unrestricted filter changed row order or content")
	}
}

func TestApplyIdempotent(t *testing.T) {
	records := sampleRecords()
	f := Filters{YearFrom: 1961, YearTo: 1983, Genders: []string{"male"}}
	once := Apply(records, f)
	twice := Apply(once, f)
	if !reflect.DeepEqual(once, twice) {
		t.Fatal("filtering an already-filtered table changed it")
	}
}

func TestApplySetSemantics(t *testing.T) {
	records := sampleRecords()

	// Nil slices are unrestricted.
	if got := Apply(records, Filters{YearFrom: 1961, YearTo: 1990}); len(got) != len(records) {
		t.Fatalf("nil sets: got %d rows", len(got))
	}

	// An explicitly empty selection matches nothing.
	if got := Apply(records, Filters{YearFrom: 1961, YearTo: 1990, Genders: []string{}}); len(got) != 0 {
		t.Fatalf("empty gender set: got %d rows, want 0", len(got))
	}

	got := Apply(records, Filters{YearFrom: 1961, YearTo: 1990, Nationalities: []string{"Germany"}})
	if len(got) != 1 || got[0].Name != "Ulf Merbold" {
		t.Fatalf("nationality set: %+v", got)
	}
}

func TestApplyEndToEndExample(t *testing.T) {
	records := []internal.Record{
		{Name: "A", Year: 1965, Gender: "male", Nationality: "U.S.", OverallNumber: 2},
		{Name: "B", Year: 1965, Gender: "female", Nationality: "U.S.S.R.", OverallNumber: 3},
	}
	f := Filters{
		YearFrom:      1961,
		YearTo:        2019,
		Genders:       []string{"male", "female"},
		Nationalities: []string{"U.S.", "U.S.S.R."},
	}

	filtered := Apply(records, f)
	if len(filtered) != 2 {
		t.Fatalf("got %d rows, want 2", len(filtered))
	}

	series := CumulativeByYear(filtered)
	want := []internal.YearCount{{Year: 1965, Total: 3}}
	if !reflect.DeepEqual(series, want) {
		t.Fatalf("got %v want %v", series, want)
	}
}
