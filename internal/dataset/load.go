package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"astrodash/internal"
	"astrodash/internal/util"
)

// Canonical column identifiers after header canonicalization.
const (
	colName        = "profile_name"
	colGender      = "profile_gender"
	colNationality = "profile_nationality"
	colRole        = "mission_role"
	colYear        = "mission_year"
	colEVADuration = "profile_lifetime_statistics_eva_duration"
	colOverall     = "profile_astronaut_numbers_overall"
	colNationwide  = "profile_astronaut_numbers_nationwide"
)

var requiredColumns = []string{
	colName, colGender, colNationality, colRole, colYear,
	colEVADuration, colOverall, colNationwide,
}

var yearLayouts = []string{"2006-01-02", "2006-01-02T15:04:05", "01/02/2006"}

// Load reads and normalizes the participant table from path.
// Supported formats: csv, xlsx, html.
func Load(format, path string) ([]internal.Record, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return LoadCSV(path)
	case "xlsx":
		return LoadXLSX(path)
	case "html":
		return LoadHTMLTable(path)
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

func LoadCSV(path string) ([]internal.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty csv: %s", path)
	}
	return buildRecords(rows[0], rows[1:])
}

func LoadXLSX(path string) ([]internal.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets in %s", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty sheet %s in %s", sheets[0], path)
	}
	return buildRecords(rows[0], rows[1:])
}

// LoadHTMLTable reads the first <table> with a header row plus data rows.
func LoadHTMLTable(path string) ([]internal.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, err
	}

	var header []string
	var rows [][]string
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		trs := table.Find("tr")
		if trs.Length() < 2 {
			return true
		}
		trs.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			header = append(header, strings.TrimSpace(cell.Text()))
		})
		trs.Slice(1, trs.Length()).Each(func(_ int, tr *goquery.Selection) {
			var cells []string
			tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(cell.Text()))
			})
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
		})
		return false
	})

	if len(header) == 0 {
		return nil, fmt.Errorf("no usable table in %s", path)
	}
	return buildRecords(header, rows)
}

// buildRecords canonicalizes the header, validates the required column set
// and converts raw cells into normalized records. The raw table is never
// mutated; the result is a fresh slice in input row order.
func buildRecords(header []string, rows [][]string) ([]internal.Record, error) {
	colIdx := map[string]int{}
	for i, raw := range header {
		canonical := util.CanonicalizeHeader(raw)
		if _, ok := colIdx[canonical]; !ok {
			colIdx[canonical] = i
		}
	}
	for _, required := range requiredColumns {
		if _, ok := colIdx[required]; !ok {
			return nil, &SchemaError{Column: required}
		}
	}

	cell := func(row []string, column string) string {
		idx := colIdx[column]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	out := make([]internal.Record, 0, len(rows))
	for i, row := range rows {
		rowNo := i + 2 // 1-based, counting the header row

		year, ok := parseYear(cell(row, colYear))
		if !ok {
			return nil, &DataFormatError{Column: colYear, Value: cell(row, colYear), Row: rowNo}
		}
		overall, ok := parseCounter(cell(row, colOverall))
		if !ok {
			return nil, &DataFormatError{Column: colOverall, Value: cell(row, colOverall), Row: rowNo}
		}
		nationwide, ok := parseCounter(cell(row, colNationwide))
		if !ok {
			return nil, &DataFormatError{Column: colNationwide, Value: cell(row, colNationwide), Row: rowNo}
		}
		eva, ok := parseDuration(cell(row, colEVADuration))
		if !ok {
			return nil, &DataFormatError{Column: colEVADuration, Value: cell(row, colEVADuration), Row: rowNo}
		}

		record := internal.Record{
			Name:             cell(row, colName),
			Year:             year,
			Gender:           cell(row, colGender),
			Nationality:      cell(row, colNationality),
			MissionRole:      util.NormalizeRole(cell(row, colRole)),
			EVAActivity:      internal.EVANo,
			OverallNumber:    overall,
			NationwideNumber: nationwide,
		}
		if eva != 0 {
			record.EVAActivity = internal.EVAYes
		}
		out = append(out, record)
	}

	return out, nil
}

// parseYear accepts a bare calendar year or a full date and keeps the year
// component.
func parseYear(value string) (int, bool) {
	if value == "" {
		return 0, false
	}
	if year, err := strconv.Atoi(value); err == nil {
		return year, true
	}
	for _, layout := range yearLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.Year(), true
		}
	}
	return 0, false
}

func parseCounter(value string) (int, bool) {
	if value == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n, true
	}
	// Spreadsheet exports render integer counters as "32.0".
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

// parseDuration treats an empty EVA cell as zero time outside a spacecraft,
// so a record with no recorded duration carries the "no" activity flag.
// Non-empty cells must parse as numbers.
func parseDuration(value string) (float64, bool) {
	if value == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
