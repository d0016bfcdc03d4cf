// Package config provides configuration management for the headline collector.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoEntities               = errors.New("at least one entity or an enabled roster is required")
	ErrInvalidYearRange         = errors.New("collector.start_year must not exceed collector.end_year")
	ErrInvalidResultLimit       = errors.New("collector.result_limit must be at least 1")
	ErrInvalidMaxAttempts       = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidMaxDelay          = errors.New("retry.max_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("retry.timeout_sec must be at least 1")
	ErrMissingBaseURL           = errors.New("source.base_url is required")
	ErrMissingSelector          = errors.New("source.selector is required")
	ErrNoUserAgents             = errors.New("source.user_agents must not be empty")
	ErrInvalidRate              = errors.New("source.requests_per_second must be non-negative")
	ErrMissingRosterURL         = errors.New("roster.url is required when the roster is enabled")
	ErrMissingOutputPath        = errors.New("output.base_path is required")
	ErrInvalidOutputFormat      = errors.New("output.format must be 'csv', 'jsonl' or 'xlsx'")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete collector configuration.
type Config struct {
	Collector CollectorConfig `yaml:"collector"`
	Source    SourceConfig    `yaml:"source"`
	Roster    RosterConfig    `yaml:"roster"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// CollectorConfig controls which entities and years are collected.
type CollectorConfig struct {
	Entities    []string    `yaml:"entities"`
	Retry       RetryPolicy `yaml:"retry"`
	StartYear   int         `yaml:"start_year"`
	EndYear     int         `yaml:"end_year"`
	ResultLimit int         `yaml:"result_limit"`
}

// RetryPolicy defines how often and how long to wait before re-querying an empty window.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// SourceConfig describes the search index queried for headlines.
type SourceConfig struct {
	BaseURL           string   `yaml:"base_url"`
	Language          string   `yaml:"language"`
	Country           string   `yaml:"country"`
	Edition           string   `yaml:"edition"`
	Selector          string   `yaml:"selector"`
	UserAgents        []string `yaml:"user_agents"`
	RequestsPerSecond float64  `yaml:"requests_per_second"`
	Burst             int      `yaml:"burst"`
	BufferSizeKb      int      `yaml:"buffer_size_kb"`
}

// RosterConfig describes where the company roster is scraped from.
type RosterConfig struct {
	URL           string `yaml:"url"`
	TableSelector string `yaml:"table_selector"`
	Limit         int    `yaml:"limit"`
	Enabled       bool   `yaml:"enabled"`
}

// OutputConfig defines dataset persistence.
type OutputConfig struct {
	BasePath string `yaml:"base_path"`
	Format   string `yaml:"format"`
	Manifest bool   `yaml:"manifest"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level"`
	ShowProgress bool   `yaml:"show_progress"`
}

// DefaultUserAgents is the browser User-Agent pool requests are sent with.
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:102.0) Gecko/20100101 Firefox/102.0",
}

// Default returns the configuration the collector runs with when no file is given:
// 2019 through 2023, 50 headlines per window, one retry after five minutes.
func Default() *Config {
	return &Config{
		Collector: CollectorConfig{
			StartYear:   2019,
			EndYear:     2023,
			ResultLimit: 50,
			Retry: RetryPolicy{
				MaxAttempts:       2,
				InitialDelayMs:    300000,
				MaxDelayMs:        300000,
				BackoffMultiplier: 1.0,
				TimeoutSec:        30,
			},
		},
		Source: SourceConfig{
			BaseURL:           "https://news.google.com/search",
			Language:          "en-US",
			Country:           "US",
			Edition:           "US:e",
			Selector:          ".JtKRv",
			UserAgents:        append([]string(nil), DefaultUserAgents...),
			RequestsPerSecond: 1,
			Burst:             1,
			BufferSizeKb:      4096,
		},
		Roster: RosterConfig{
			URL:           "https://en.wikipedia.org/wiki/S%26P_100",
			TableSelector: "table.wikitable.sortable#constituents",
			Limit:         1,
			Enabled:       true,
		},
		Output: OutputConfig{
			BasePath: "data",
			Format:   "csv",
			Manifest: true,
		},
		Logging: LoggingConfig{
			Level:        "info",
			ShowProgress: true,
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of Default,
// then applies environment overrides.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Collector.Entities) == 0 && !c.Roster.Enabled {
		return ErrNoEntities
	}

	for i, e := range c.Collector.Entities {
		if strings.TrimSpace(e) == "" {
			return fmt.Errorf("%w: entities[%d] is blank", ErrNoEntities, i)
		}
	}

	if c.Collector.StartYear > c.Collector.EndYear {
		return fmt.Errorf("%w: %d > %d", ErrInvalidYearRange, c.Collector.StartYear, c.Collector.EndYear)
	}

	if c.Collector.ResultLimit < 1 {
		return ErrInvalidResultLimit
	}

	if err := c.Collector.Retry.Validate(); err != nil {
		return err
	}

	if err := c.Source.Validate(); err != nil {
		return err
	}

	if c.Roster.Enabled && c.Roster.URL == "" {
		return ErrMissingRosterURL
	}

	if c.Roster.TableSelector != "" {
		if err := compileSelector(c.Roster.TableSelector); err != nil {
			return fmt.Errorf("roster.table_selector is invalid: %w", err)
		}
	}

	if c.Output.BasePath == "" {
		return ErrMissingOutputPath
	}

	switch c.Output.Format {
	case "csv", "jsonl", "xlsx":
	default:
		return ErrInvalidOutputFormat
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// Validate checks the retry policy bounds.
func (rp *RetryPolicy) Validate() error {
	if rp.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if rp.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if rp.MaxDelayMs < 0 {
		return ErrInvalidMaxDelay
	}

	if rp.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	if rp.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	return nil
}

// Validate checks the search source settings.
func (s *SourceConfig) Validate() error {
	if s.BaseURL == "" {
		return ErrMissingBaseURL
	}

	if s.Selector == "" {
		return ErrMissingSelector
	}

	if err := compileSelector(s.Selector); err != nil {
		return fmt.Errorf("source.selector is invalid: %w", err)
	}

	if len(s.UserAgents) == 0 {
		return ErrNoUserAgents
	}

	if s.RequestsPerSecond < 0 {
		return ErrInvalidRate
	}

	return nil
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
// The first attempt never waits.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if rp.MaxDelayMs > 0 && delayMs > float64(rp.MaxDelayMs) {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int64(delayMs)) * time.Millisecond
}

// GetTimeout returns the per-request timeout.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// YearRange returns the inclusive collection years.
func (c *Config) YearRange() (int, int) {
	return c.Collector.StartYear, c.Collector.EndYear
}

// GetOutputPath follows structure: {base_path}/{entity}/headlines.{format}.
func (c *Config) GetOutputPath(entity string) string {
	return filepath.Join(c.Output.BasePath, entity, "headlines."+c.Output.Format)
}

// compileSelector rejects CSS selectors goquery would not be able to match.
func compileSelector(sel string) error {
	_, err := cascadia.Compile(sel)

	return err
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Entities: %d, Years: %d-%d, MaxAttempts: %d, Output: %s (%s)}",
		len(c.Collector.Entities),
		c.Collector.StartYear,
		c.Collector.EndYear,
		c.Collector.Retry.MaxAttempts,
		c.Output.BasePath,
		c.Output.Format,
	)
}
