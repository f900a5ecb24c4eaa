package storage

import (
	"path/filepath"
	"testing"

	"astrodash/internal"
)

func TestReplaceRecordsAndMeta(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	records := []internal.Record{
		{Name: "A", Year: 1965, Gender: "male", Nationality: "U.S.", MissionRole: "commander", EVAActivity: internal.EVANo, OverallNumber: 2, NationwideNumber: 2},
		{Name: "B", Year: 1963, Gender: "female", Nationality: "U.S.S.R.", MissionRole: "pilot", EVAActivity: internal.EVAYes, OverallNumber: 6, NationwideNumber: 6},
	}
	if err := db.ReplaceRecords(records, "data/astronauts.csv"); err != nil {
		t.Fatal(err)
	}

	restored, err := db.ListRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(restored) != 2 {
		t.Fatalf("got %d records", len(restored))
	}
	// Natural order survives even though years are not sorted.
	if restored[0].Name != "A" || restored[1].Name != "B" {
		t.Fatalf("order not preserved: %+v", restored)
	}

	meta, err := db.Meta()
	if err != nil {
		t.Fatal(err)
	}
	if meta.SourcePath != "data/astronauts.csv" || meta.RecordCount != 2 || meta.IngestedAt == "" {
		t.Fatalf("meta: %+v", meta)
	}

	// A second ingest fully replaces the snapshot.
	if err := db.ReplaceRecords(records[:1], "data/astronauts.csv"); err != nil {
		t.Fatal(err)
	}
	restored, err = db.ListRecords()
	if err != nil {
		t.Fatal(err)
	}
	if len(restored) != 1 {
		t.Fatalf("replace kept stale rows: %+v", restored)
	}
}
