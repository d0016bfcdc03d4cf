// Package main provides the formatter command that prints a saved dataset
// as an aligned markdown table.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/mattn/go-runewidth"

	"newsharvest/internal/dataset"
	"newsharvest/internal/formatter"
)

func main() {
	inputPath := flag.String("input", "", "Path to a dataset file (headlines.csv, .jsonl or .xlsx)")
	width := flag.Int("width", formatter.DefaultHeadlineWidth, "Display width of the sample headline column")
	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Usage: formatter -input <headlines.csv>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	records, err := dataset.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("❌ %v\n", err)
	}

	rows := make([][]string, 0, len(records))
	empty := 0

	for _, r := range records {
		sample := ""
		if len(r.Headlines) > 0 {
			sample = runewidth.Truncate(r.Headlines[0], *width, "…")
		} else {
			empty++
		}

		rows = append(rows, []string{r.StartDate, strconv.Itoa(len(r.Headlines)), sample})
	}

	fmt.Println(formatter.Table([]string{"Date", "Headlines", "Sample"}, rows))
	fmt.Printf("\n%d records, %d empty\n", len(records), empty)
}
