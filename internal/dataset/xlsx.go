package dataset

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet the XLSX writer fills.
const SheetName = "Headlines"

// XLSXWriter writes records into a single-sheet workbook.
type XLSXWriter struct{}

// Format returns "xlsx".
func (XLSXWriter) Format() string {
	return FormatXLSX
}

// Write encodes records as an XLSX workbook.
func (XLSXWriter) Write(w io.Writer, records []Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := setRow(f, 1, dateColumn, headlinesColumn); err != nil {
		return err
	}

	for i, r := range records {
		if err := setRow(f, i+2, r.StartDate, FormatList(r.Headlines)); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

func setRow(f *excelize.File, row int, values ...string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("invalid cell: %w", err)
		}

		if err := f.SetCellValue(SheetName, cell, v); err != nil {
			return fmt.Errorf("failed to set %s: %w", cell, err)
		}
	}

	return nil
}

// ReadXLSX reads records back from a workbook written by XLSXWriter.
func ReadXLSX(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	var records []Record

	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}

		rec := Record{StartDate: row[0], Headlines: []string{}}

		if len(row) > 1 {
			if rec.Headlines, err = ParseList(row[1]); err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
		}

		records = append(records, rec)
	}

	return records, nil
}
