// Package main provides the roster command that lists the companies the
// collector would process.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"newsharvest/internal/config"
	"newsharvest/internal/crawler"
	"newsharvest/internal/formatter"
	"newsharvest/internal/models"
	"newsharvest/internal/roster"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	url := flag.String("url", "", "Roster page URL (overrides config)")
	file := flag.String("file", "", "Parse a saved roster page instead of fetching")
	limit := flag.Int("limit", -1, "Maximum companies to list (0 for all; overrides config)")
	flag.Parse()

	cfg := config.Default()

	if *configFile != "" {
		var err error

		cfg, err = config.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("❌ Failed to load config: %v\n", err)
		}
	}

	if *url != "" {
		cfg.Roster.URL = *url
	}

	if *limit >= 0 {
		cfg.Roster.Limit = *limit
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var (
		companies []models.Company
		err       error
	)

	if *file != "" {
		markup, readErr := os.ReadFile(*file)
		if readErr != nil {
			log.Fatalf("❌ Error reading file: %v\n", readErr)
		}

		companies, err = roster.Parse(markup, cfg.Roster.TableSelector)
	} else {
		fetcher := crawler.NewHTTPFetcher(cfg.Collector.Retry.GetTimeout(), 0, 1, cfg.Source.BufferSizeKb)
		agent := crawler.NewRandomUserAgents(cfg.Source.UserAgents).UserAgent()
		companies, err = roster.Fetch(ctx, fetcher, cfg.Roster.URL, cfg.Roster.TableSelector, agent)
	}

	if err != nil {
		log.Fatalf("❌ %v\n", err)
	}

	if cfg.Roster.Limit > 0 && len(companies) > cfg.Roster.Limit {
		companies = companies[:cfg.Roster.Limit]
	}

	rows := make([][]string, 0, len(companies))
	for _, c := range companies {
		rows = append(rows, []string{c.Ticker, c.Name, c.Sector})
	}

	fmt.Println(formatter.Table([]string{"Ticker", "Name", "Sector"}, rows))
	fmt.Printf("\n%d companies\n", len(companies))
}
