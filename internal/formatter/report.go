package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"newsharvest/internal/collector"
	"newsharvest/internal/crawler"
	"newsharvest/internal/models"
)

// DefaultHeadlineWidth is the display width sample headlines are cut to.
const DefaultHeadlineWidth = 48

// EntityReport summarizes each entity's run in one row.
func EntityReport(results []collector.Result) string {
	rows := make([][]string, 0, len(results))

	for _, r := range results {
		rows = append(rows, []string{
			r.Entity,
			strconv.Itoa(len(r.Windows)),
			strconv.Itoa(len(r.Windows) - r.Empty()),
			strconv.Itoa(r.Empty()),
			strconv.Itoa(r.Headlines()),
		})
	}

	return Table([]string{"Entity", "Windows", "Collected", "Empty", "Headlines"}, rows)
}

// WindowTable lists windows with their status and first headline, cut
// to width display columns.
func WindowTable(windows []models.CollectionWindow, width int) string {
	if width <= 0 {
		width = DefaultHeadlineWidth
	}

	rows := make([][]string, 0, len(windows))

	for _, w := range windows {
		sample := ""
		if len(w.Headlines) > 0 {
			sample = runewidth.Truncate(w.Headlines[0], width, "…")
		}

		rows = append(rows, []string{
			w.StartDate(),
			w.EndDate(),
			string(w.Status),
			strconv.Itoa(w.Attempts),
			strconv.Itoa(len(w.Headlines)),
			sample,
		})
	}

	return Table([]string{"Start", "End", "Status", "Attempts", "Headlines", "Sample"}, rows)
}

// AttemptReport summarizes page fetches.
func AttemptReport(s crawler.AttemptSummary) string {
	return Table(
		[]string{"Fetches", "Succeeded", "Empty", "Failed", "Time"},
		[][]string{{
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Succeeded),
			strconv.Itoa(s.Empty),
			strconv.Itoa(s.Failed),
			s.Duration.Round(time.Millisecond).String(),
		}},
	)
}

// Section is one titled block of a report document.
type Section struct {
	Title string
	Body  string
}

// Document joins sections under a title and aligns their tables.
func Document(title string, sections ...Section) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", title)

	for _, s := range sections {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", s.Title, s.Body)
	}

	return FormatMarkdown(b.String())
}
