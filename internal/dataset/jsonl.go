package dataset

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONLWriter writes one JSON object per record.
type JSONLWriter struct{}

// Format returns "jsonl".
func (JSONLWriter) Format() string {
	return FormatJSONL
}

// Write encodes records as JSON Lines.
func (JSONLWriter) Write(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for _, r := range records {
		if r.Headlines == nil {
			r.Headlines = []string{}
		}

		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode record %s: %w", r.StartDate, err)
		}
	}

	return nil
}
