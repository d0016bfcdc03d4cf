// Package roster extracts the list of companies to collect headlines for
// from an index constituents table.
package roster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newsharvest/internal/crawler"
	"newsharvest/internal/models"
)

// Roster errors.
var (
	ErrRosterUnavailable = errors.New("roster unavailable")
	ErrTableNotFound     = errors.New("constituents table not found")
)

// classSuffixLen is the rune length of a trailing share class marker such as " (Class A)".
const classSuffixLen = 10

// Parse reads ticker, name and sector from the first three cells of every
// body row of the table matched by selector. Rows are kept in table order
// and repeated names are dropped.
func Parse(markup []byte, selector string) ([]models.Company, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	table := doc.Find(selector).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, selector)
	}

	var companies []models.Company

	seen := make(map[string]bool)

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		name := CleanName(strings.TrimSpace(cells.Eq(1).Text()))
		if name == "" || seen[name] {
			return
		}

		seen[name] = true

		companies = append(companies, models.Company{
			Ticker: strings.TrimSpace(cells.Eq(0).Text()),
			Name:   name,
			Sector: strings.TrimSpace(cells.Eq(2).Text()),
		})
	})

	return companies, nil
}

// CleanName strips a share class suffix and moves a trailing
// parenthesized name to the front: "Alphabet Inc. (Class A)" becomes
// "Alphabet Inc." and "Meta Platforms (Facebook)" becomes
// "Facebook Meta Platforms".
func CleanName(name string) string {
	if strings.Contains(name, "Class") {
		runes := []rune(name)
		if len(runes) <= classSuffixLen {
			return ""
		}

		name = strings.TrimSpace(string(runes[:len(runes)-classSuffixLen]))
	}

	if strings.HasSuffix(name, ")") {
		if open := strings.LastIndex(name, "("); open >= 0 {
			inner := name[open+1 : len(name)-1]
			name = strings.TrimSpace(inner + " " + strings.TrimSpace(name[:open]))
		}
	}

	return name
}

// Fetch downloads the page at url and parses its constituents table.
func Fetch(ctx context.Context, fetcher crawler.Fetcher, url, selector, userAgent string) ([]models.Company, error) {
	header := http.Header{}
	if userAgent != "" {
		header.Set("User-Agent", userAgent)
	}

	page, err := fetcher.Fetch(ctx, url, header)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRosterUnavailable, err)
	}

	if !page.OK() {
		return nil, fmt.Errorf("%w: %w: %d", ErrRosterUnavailable, crawler.ErrUnexpectedStatusCode, page.StatusCode)
	}

	return Parse(page.Body, selector)
}

// Names returns the company names in order, at most limit of them when
// limit is positive.
func Names(companies []models.Company, limit int) []string {
	if limit > 0 && len(companies) > limit {
		companies = companies[:limit]
	}

	names := make([]string, 0, len(companies))
	for _, c := range companies {
		names = append(names, c.Name)
	}

	return names
}
