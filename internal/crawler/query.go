package crawler

import (
	"net/url"
	"strings"

	"newsharvest/internal/models"
)

// Locale selects the interface language and edition of the search index.
type Locale struct {
	Language string
	Country  string
	Edition  string
}

// DefaultLocale is the US English edition.
var DefaultLocale = Locale{Language: "en-US", Country: "US", Edition: "US:e"}

// escapeQueryTerm percent-escapes s for use inside the q parameter,
// encoding spaces as %20 rather than '+'.
func escapeQueryTerm(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// SearchTerms renders the q parameter: the entity name followed by the
// after:/before: date qualifiers, already percent-escaped.
func SearchTerms(q models.HeadlineQuery) string {
	var b strings.Builder

	b.WriteString(escapeQueryTerm(q.Entity()))

	if start := q.StartDate(); start != "" {
		b.WriteString("%20after%3A")
		b.WriteString(start)
	}

	if end := q.EndDate(); end != "" {
		b.WriteString("%20before%3A")
		b.WriteString(end)
	}

	return b.String()
}

// BuildSearchURL returns the result page URL for q against baseURL.
func BuildSearchURL(baseURL string, q models.HeadlineQuery, locale Locale) string {
	var b strings.Builder

	b.WriteString(baseURL)
	b.WriteString("?q=")
	b.WriteString(SearchTerms(q))
	b.WriteString("&hl=")
	b.WriteString(url.QueryEscape(locale.Language))
	b.WriteString("&gl=")
	b.WriteString(url.QueryEscape(locale.Country))
	b.WriteString("&ceid=")
	b.WriteString(url.QueryEscape(locale.Edition))

	return b.String()
}
