package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"itemize/internal/domain"
)

const sheetName = "Line Items"

// WriteXLSX renders a result as a single-sheet workbook: one header row,
// one row per candidate, and a validation summary block below the items.
func WriteXLSX(w io.Writer, r *domain.ExtractionResult) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	for col, name := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return err
		}
	}

	for i := range r.Candidates {
		row := candidateRow(&r.Candidates[i])
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
	}

	summary := r.Summarize()
	base := len(r.Candidates) + 3
	rows := []struct {
		label string
		value any
	}{
		{"Total candidates", summary.Total},
		{"Validated", summary.Validated},
		{"Marked", summary.Marked},
		{"Needs review", summary.NeedsReview},
		{"Overall confidence", r.OverallConfidence},
	}
	if r.TotalAmount != nil {
		rows = append(rows, struct {
			label string
			value any
		}{"Total amount", r.TotalAmount.String()})
	}
	for i, row := range rows {
		labelCell, err := excelize.CoordinatesToCellName(1, base+i)
		if err != nil {
			return err
		}
		valueCell, err := excelize.CoordinatesToCellName(2, base+i)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, labelCell, row.label); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, valueCell, row.value); err != nil {
			return err
		}
	}

	return f.Write(w)
}
