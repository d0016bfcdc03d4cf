package crawler

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// ExtractHeadlines returns the text of up to limit elements matching
// selector, in document order. Text is returned exactly as found.
func ExtractHeadlines(markup []byte, selector string, limit int) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	var headlines []string

	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if limit > 0 && len(headlines) >= limit {
			return false
		}

		headlines = append(headlines, s.Text())

		return true
	})

	return headlines, nil
}
