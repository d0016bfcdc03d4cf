package dataset

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Output formats.
const (
	FormatCSV   = "csv"
	FormatJSONL = "jsonl"
	FormatXLSX  = "xlsx"
)

// ErrUnknownFormat is returned for an output format with no writer.
var ErrUnknownFormat = errors.New("unknown output format")

// Column headers shared by the tabular formats.
const (
	dateColumn      = "Date"
	headlinesColumn = "Headlines"
)

// Writer encodes records into one output stream.
type Writer interface {
	Write(w io.Writer, records []Record) error
	Format() string
}

// NewWriter returns the writer for format.
func NewWriter(format string) (Writer, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return CSVWriter{}, nil
	case FormatJSONL:
		return JSONLWriter{}, nil
	case FormatXLSX:
		return XLSXWriter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// FormatList renders headlines as a bracketed list of quoted strings,
// e.g. ['acme win big', 'acme not_happy'].
func FormatList(headlines []string) string {
	var b strings.Builder

	b.WriteByte('[')

	for i, h := range headlines {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(quote(h))
	}

	b.WriteByte(']')

	return b.String()
}

// quote single-quotes s, switching to double quotes when s contains a
// single quote and no double quote.
func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var b strings.Builder

	b.WriteByte(q)

	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(q):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}

	b.WriteByte(q)

	return b.String()
}

// ErrMalformedList is returned by ParseList for text FormatList could not have produced.
var ErrMalformedList = errors.New("malformed headline list")

// ParseList is the inverse of FormatList.
func ParseList(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("%w: %q", ErrMalformedList, s)
	}

	body := []rune(s[1 : len(s)-1])
	items := []string{}

	for i := 0; i < len(body); {
		switch body[i] {
		case ' ', ',':
			i++

			continue
		case '\'', '"':
		default:
			return nil, fmt.Errorf("%w: unexpected %q", ErrMalformedList, body[i])
		}

		q := body[i]
		i++

		var b strings.Builder

		closed := false

		for i < len(body) {
			r := body[i]
			i++

			if r == q {
				closed = true

				break
			}

			if r == '\\' && i < len(body) {
				r = body[i]
				i++

				switch r {
				case 'n':
					r = '\n'
				case 't':
					r = '\t'
				}
			}

			b.WriteRune(r)
		}

		if !closed {
			return nil, fmt.Errorf("%w: unterminated string", ErrMalformedList)
		}

		items = append(items, b.String())
	}

	return items, nil
}
