package util

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"park-server/models"
)

const RECOMMENDATIONS_SHEET = "Recommendations"

// ErrNoSegments is returned when a report has no segment recommendations.
var ErrNoSegments = errors.New("report has no segment recommendations")

var recommendationHeaders = []string{"Time Segment", "Recommended Units", "Avg Wait (min)", "Guests Carried"}

// WriteRecommendationsXLSX writes the segment table of a daily report as a
// single-sheet workbook. The busiest segment and the suggestion, if any,
// follow the table.
func WriteRecommendationsXLSX(w io.Writer, report *models.DashboardReport) error {
	if report == nil || report.Segments == nil {
		return ErrNoSegments
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RECOMMENDATIONS_SHEET); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, name := range recommendationHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(RECOMMENDATIONS_SHEET, cell, name)
	}

	row := 2
	for _, s := range report.Segments.Segments {
		values := []interface{}{s.Label, s.RecommendedUnits, s.AvgWait, s.GuestsCarried}
		for colIdx, val := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
			f.SetCellValue(RECOMMENDATIONS_SHEET, cell, val)
		}
		row++
	}

	if b := report.Segments.Busiest; b != nil {
		row++
		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetCellValue(RECOMMENDATIONS_SHEET, cell, "Busiest segment")
		cell, _ = excelize.CoordinatesToCellName(2, row)
		f.SetCellValue(RECOMMENDATIONS_SHEET, cell, b.Label)
	}
	if report.Segments.Suggestion != "" {
		row++
		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetCellValue(RECOMMENDATIONS_SHEET, cell, report.Segments.Suggestion)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
