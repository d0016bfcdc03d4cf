package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVWriter writes a Date,Headlines table with the headlines of each
// record rendered by FormatList.
type CSVWriter struct{}

// Format returns "csv".
func (CSVWriter) Format() string {
	return FormatCSV
}

// Write encodes records as CSV.
func (CSVWriter) Write(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{dateColumn, headlinesColumn}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range records {
		if err := cw.Write([]string{r.StartDate, FormatList(r.Headlines)}); err != nil {
			return fmt.Errorf("failed to write csv row %s: %w", r.StartDate, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	return nil
}
