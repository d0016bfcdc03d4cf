// Package main provides the collector command that gathers weekly headline
// windows for each company and writes one dataset per company.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"newsharvest/internal/collector"
	"newsharvest/internal/config"
	"newsharvest/internal/crawler"
	"newsharvest/internal/dataset"
	"newsharvest/internal/formatter"
	"newsharvest/internal/logger"
	"newsharvest/internal/models"
	"newsharvest/internal/normalizer"
	"newsharvest/internal/roster"
)

const defaultConfigPath = "configs/collector.yaml"

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	envFile := flag.String("env", ".env", "Path to .env file (ignored when missing)")
	entities := flag.String("entities", "", "Comma-separated entity names (overrides config and roster)")
	from := flag.Int("from", 0, "First year to collect (overrides config)")
	to := flag.Int("to", 0, "Last year to collect (overrides config)")
	output := flag.String("output", "", "Output base directory (overrides config)")
	format := flag.String("format", "", "Output format: csv, jsonl or xlsx (overrides config)")
	reportPath := flag.String("report", "", "Write a markdown run report to this path")
	showUsage := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *showUsage {
		flag.PrintDefaults()
		os.Exit(0)
	}

	if err := config.LoadDotEnv(*envFile); err != nil {
		log.Fatalf("❌ %v\n", err)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v\n", err)
	}

	if *entities != "" {
		cfg.Collector.Entities = splitList(*entities)
	}

	if *from != 0 {
		cfg.Collector.StartYear = *from
	}

	if *to != 0 {
		cfg.Collector.EndYear = *to
	}

	if *output != "" {
		cfg.Output.BasePath = *output
	}

	if *format != "" {
		cfg.Output.Format = strings.ToLower(*format)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v\n", err)
	}

	lg := logger.NewLogger(cfg.Logging.Level)
	lg.Info("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	adapter := crawler.NewAdapterFromConfig(cfg, crawler.WithLogger(lg))

	names, err := resolveEntities(ctx, cfg, lg)
	if err != nil {
		log.Fatalf("❌ %v\n", err)
	}

	store, err := dataset.NewStore(cfg.Output.BasePath, cfg.Output.Format, cfg.Output.Manifest, lg)
	if err != nil {
		log.Fatalf("❌ %v\n", err)
	}

	sets := dataset.NewSet()
	opts := []collector.Option{
		collector.WithLogger(lg),
		collector.WithResultLimit(cfg.Collector.ResultLimit),
		collector.WithObserver(sets),
	}

	if cfg.Logging.ShowProgress {
		opts = append(opts, collector.WithObserver(collector.ObserverFunc(printProgress)))
	}

	c := collector.NewCollector(adapter, normalizer.NewProcessor(), cfg.Collector.Retry, opts...)

	first, last := cfg.YearRange()
	startTime := time.Now()

	fmt.Printf("🚀 Collecting %d entities, %d-%d\n", len(names), first, last)

	results := c.Run(ctx, names, collector.YearRange{First: first, Last: last})

	failed := 0

	for _, a := range sets.Assemblers() {
		path, saveErr := store.SaveAssembler(a)
		if saveErr != nil {
			failed++

			lg.Error("failed to save dataset", "entity", a.Entity(), "error", saveErr)

			continue
		}

		fmt.Printf("💾 %s: %d records → %s\n", a.Entity(), a.Len(), path)
	}

	report := formatter.Document("Headline collection",
		formatter.Section{Title: "Entities", Body: formatter.EntityReport(results)},
		formatter.Section{Title: "Fetches", Body: formatter.AttemptReport(adapter.Attempts().Summary())},
	)

	fmt.Println()
	fmt.Print(report)
	fmt.Printf("\nTotal Duration: %v\n", time.Since(startTime).Round(time.Second))

	if *reportPath != "" {
		if err := os.WriteFile(*reportPath, []byte(report), 0o600); err != nil {
			lg.Error("failed to write report", "path", *reportPath, "error", err)
		}
	}

	if ctx.Err() != nil {
		fmt.Println("⚠️  Interrupted, partial datasets were written")
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// loadConfig reads path, or the default config file when present, or
// falls back to built-in defaults with environment overrides.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}

	if path != "" {
		return config.LoadConfig(path)
	}

	cfg := config.Default()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func resolveEntities(ctx context.Context, cfg *config.Config, lg *logger.Logger) ([]string, error) {
	if len(cfg.Collector.Entities) > 0 {
		return cfg.Collector.Entities, nil
	}

	fetcher := crawler.NewHTTPFetcher(cfg.Collector.Retry.GetTimeout(), 0, 1, cfg.Source.BufferSizeKb)
	agent := crawler.NewRandomUserAgents(cfg.Source.UserAgents).UserAgent()

	companies, err := roster.Fetch(ctx, fetcher, cfg.Roster.URL, cfg.Roster.TableSelector, agent)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	var names []string

	for _, name := range roster.Names(companies, cfg.Roster.Limit) {
		if err := dataset.ValidateEntity(name); err != nil {
			lg.Warn("skipping roster entry", "error", err)

			continue
		}

		names = append(names, name)
	}

	lg.Info("roster loaded", "companies", len(companies), "selected", len(names))

	return names, nil
}

func printProgress(w models.CollectionWindow) {
	mark := "✅"
	if w.Failed() {
		mark = "⚠️ "
	}

	fmt.Printf("%s %s %s..%s %d headlines (%d attempts)\n",
		mark, w.Entity, w.StartDate(), w.EndDate(), len(w.Headlines), w.Attempts)
}

func splitList(s string) []string {
	var out []string

	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
