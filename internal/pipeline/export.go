package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"astrodash/internal"
)

// ExportChartsToXLSX writes one workbook with one sheet per chart table.
func ExportChartsToXLSX(set internal.ChartSet, outputPath string) error {
	f := excelize.NewFile()

	writeSheet := func(name string, headers []string, rows [][]any) error {
		index, err := f.GetSheetIndex(name)
		if err != nil {
			return err
		}
		if index < 0 {
			if _, err := f.NewSheet(name); err != nil {
				return err
			}
		}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			if err := f.SetCellValue(name, cell, h); err != nil {
				return err
			}
		}
		for r, row := range rows {
			for c, value := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
				if err := f.SetCellValue(name, cell, value); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := f.SetSheetName(f.GetSheetName(0), "Cumulative"); err != nil {
		return err
	}

	cumulative := make([][]any, 0, len(set.CumulativeByYear))
	for _, p := range set.CumulativeByYear {
		cumulative = append(cumulative, []any{p.Year, p.Total})
	}
	if err := writeSheet("Cumulative", []string{"year", "total"}, cumulative); err != nil {
		return err
	}

	topNats := make([][]any, 0, len(set.TopNationalities))
	for _, p := range set.TopNationalities {
		topNats = append(topNats, []any{p.Nationality, p.Gender, p.Count})
	}
	if err := writeSheet("Top Nationalities", []string{"nationality", "gender", "count"}, topNats); err != nil {
		return err
	}

	genders := make([][]any, 0, len(set.GenderSplit))
	for _, p := range set.GenderSplit {
		genders = append(genders, []any{p.Value, p.Count})
	}
	if err := writeSheet("Gender Split", []string{"gender", "count"}, genders); err != nil {
		return err
	}

	eva := make([][]any, 0, len(set.EVASplit))
	for _, p := range set.EVASplit {
		eva = append(eva, []any{p.Value, p.Count})
	}
	if err := writeSheet("EVA Split", []string{"eva_activity", "count"}, eva); err != nil {
		return err
	}

	national := make([][]any, 0, len(set.NationalTotals))
	for _, p := range set.NationalTotals {
		national = append(national, []any{p.Nationality, p.Total})
	}
	if err := writeSheet("National Totals", []string{"nationality", "total"}, national); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
