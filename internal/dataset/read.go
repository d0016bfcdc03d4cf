package dataset

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadFile reads a dataset file, choosing the decoder by extension.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	switch ext := strings.TrimPrefix(filepath.Ext(path), "."); ext {
	case FormatCSV:
		return ReadCSV(f)
	case FormatJSONL:
		return ReadJSONL(f)
	case FormatXLSX:
		return ReadXLSX(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// ReadJSONL reads records back from a file written by JSONLWriter.
func ReadJSONL(r io.Reader) ([]Record, error) {
	var records []Record

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jsonl: %w", err)
	}

	return records, nil
}

// ReadCSV reads records back from a file written by CSVWriter.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	if header[0] != dateColumn || header[1] != headlinesColumn {
		return nil, fmt.Errorf("unexpected csv header %v", header)
	}

	var records []Record

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		headlines, err := ParseList(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %s: %w", row[0], err)
		}

		records = append(records, Record{StartDate: row[0], Headlines: headlines})
	}

	return records, nil
}
