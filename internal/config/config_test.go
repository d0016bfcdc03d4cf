package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// validConfigYAML is a minimal valid configuration.
const validConfigYAML = `
collector:
  entities: ["Acme Corp", "Globex"]
  start_year: 2021
  end_year: 2022
  result_limit: 25
  retry:
    max_attempts: 3
    initial_delay_ms: 100
    max_delay_ms: 5000
    backoff_multiplier: 2.0
    timeout_sec: 30
source:
  selector: "a.headline"
roster:
  enabled: false
output:
  base_path: "./output"
  format: "jsonl"
logging:
  level: "debug"
`

func TestLoadConfig_Valid(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if len(cfg.Collector.Entities) != 2 {
		t.Errorf("Expected 2 entities, got %d", len(cfg.Collector.Entities))
	}

	if cfg.Collector.ResultLimit != 25 {
		t.Errorf("Expected result limit 25, got %d", cfg.Collector.ResultLimit)
	}

	if cfg.Source.Selector != "a.headline" {
		t.Errorf("Expected selector override, got %q", cfg.Source.Selector)
	}

	// Fields absent from the file keep their defaults.
	if cfg.Source.BaseURL != "https://news.google.com/search" {
		t.Errorf("Expected default base URL, got %q", cfg.Source.BaseURL)
	}

	if len(cfg.Source.UserAgents) != len(DefaultUserAgents) {
		t.Errorf("Expected %d default user agents, got %d", len(DefaultUserAgents), len(cfg.Source.UserAgents))
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := createTempConfigFile(t, "invalid: yaml: content: [}")

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvOutputDir, "/tmp/headlines")
	t.Setenv(EnvRetryDelayMs, "0")
	t.Setenv(EnvEntities, " Initech , ,Hooli")

	cfg, err := LoadConfig(createTempConfigFile(t, validConfigYAML))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Output.BasePath != "/tmp/headlines" {
		t.Errorf("BasePath = %q, want /tmp/headlines", cfg.Output.BasePath)
	}

	if cfg.Collector.Retry.InitialDelayMs != 0 {
		t.Errorf("InitialDelayMs = %d, want 0", cfg.Collector.Retry.InitialDelayMs)
	}

	if len(cfg.Collector.Entities) != 2 || cfg.Collector.Entities[0] != "Initech" || cfg.Collector.Entities[1] != "Hooli" {
		t.Errorf("Entities = %v, want [Initech Hooli]", cfg.Collector.Entities)
	}
}

func TestLoadConfig_InvalidEnv(t *testing.T) {
	t.Setenv(EnvMaxAttempts, "twice")

	if _, err := LoadConfig(createTempConfigFile(t, validConfigYAML)); err == nil {
		t.Fatal("Expected error for non-numeric max attempts")
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(EnvLogLevel+"=WARN\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvLogLevel, "")
	os.Unsetenv(EnvLogLevel)

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}

	if cfg.Collector.Retry.MaxAttempts != 2 {
		t.Errorf("Default MaxAttempts = %d, want 2", cfg.Collector.Retry.MaxAttempts)
	}

	if got := cfg.Collector.Retry.GetRetryDelay(2); got != 5*time.Minute {
		t.Errorf("Default retry delay = %v, want 5m", got)
	}
}

func TestConfig_Validate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"no entities without roster", func(c *Config) { c.Roster.Enabled = false; c.Collector.Entities = nil }, ErrNoEntities},
		{"blank entity", func(c *Config) { c.Collector.Entities = []string{"Acme", " "} }, ErrNoEntities},
		{"inverted years", func(c *Config) { c.Collector.StartYear = 2024 }, ErrInvalidYearRange},
		{"zero limit", func(c *Config) { c.Collector.ResultLimit = 0 }, ErrInvalidResultLimit},
		{"zero attempts", func(c *Config) { c.Collector.Retry.MaxAttempts = 0 }, ErrInvalidMaxAttempts},
		{"negative delay", func(c *Config) { c.Collector.Retry.InitialDelayMs = -1 }, ErrInvalidInitialDelay},
		{"negative max delay", func(c *Config) { c.Collector.Retry.MaxDelayMs = -1 }, ErrInvalidMaxDelay},
		{"shrinking backoff", func(c *Config) { c.Collector.Retry.BackoffMultiplier = 0.5 }, ErrInvalidBackoffMultiplier},
		{"zero timeout", func(c *Config) { c.Collector.Retry.TimeoutSec = 0 }, ErrInvalidTimeout},
		{"missing base url", func(c *Config) { c.Source.BaseURL = "" }, ErrMissingBaseURL},
		{"missing selector", func(c *Config) { c.Source.Selector = "" }, ErrMissingSelector},
		{"no user agents", func(c *Config) { c.Source.UserAgents = nil }, ErrNoUserAgents},
		{"negative rate", func(c *Config) { c.Source.RequestsPerSecond = -1 }, ErrInvalidRate},
		{"roster without url", func(c *Config) { c.Roster.URL = "" }, ErrMissingRosterURL},
		{"missing output path", func(c *Config) { c.Output.BasePath = "" }, ErrMissingOutputPath},
		{"bad output format", func(c *Config) { c.Output.Format = "xml" }, ErrInvalidOutputFormat},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_InvalidSelector(t *testing.T) {
	cfg := Default()
	cfg.Source.Selector = "div[["

	if err := cfg.Validate(); err == nil {
		t.Fatal("Expected validation error for invalid selector")
	}
}

// --- RetryPolicy Tests ---

func TestRetryPolicy_GetRetryDelay(t *testing.T) {
	rp := RetryPolicy{
		InitialDelayMs:    100,
		MaxDelayMs:        1000,
		BackoffMultiplier: 2.0,
	}

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 0},                        // First attempt, no delay
		{2, 200 * time.Millisecond},   // 100 * 2
		{3, 400 * time.Millisecond},   // 100 * 2 * 2
		{4, 800 * time.Millisecond},   // 100 * 2 * 2 * 2
		{5, 1000 * time.Millisecond},  // Capped at max
		{10, 1000 * time.Millisecond}, // Still capped
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			got := rp.GetRetryDelay(tt.attempt)
			if got != tt.expected {
				t.Errorf("GetRetryDelay(%d) = %v, want %v", tt.attempt, got, tt.expected)
			}
		})
	}
}

func TestRetryPolicy_GetRetryDelay_Fixed(t *testing.T) {
	rp := RetryPolicy{InitialDelayMs: 250, BackoffMultiplier: 1.0}

	for attempt := 2; attempt <= 5; attempt++ {
		if got := rp.GetRetryDelay(attempt); got != 250*time.Millisecond {
			t.Errorf("GetRetryDelay(%d) = %v, want 250ms", attempt, got)
		}
	}
}

func TestRetryPolicy_GetTimeout(t *testing.T) {
	rp := RetryPolicy{TimeoutSec: 30}
	expected := 30 * time.Second

	if got := rp.GetTimeout(); got != expected {
		t.Errorf("GetTimeout() = %v, want %v", got, expected)
	}
}

// --- Config Helper Method Tests ---

func TestConfig_GetOutputPath(t *testing.T) {
	cfg := &Config{Output: OutputConfig{BasePath: "data", Format: "csv"}}

	path := cfg.GetOutputPath("Acme Corp")
	expected := filepath.Join("data", "Acme Corp", "headlines.csv")

	if path != expected {
		t.Errorf("GetOutputPath() = %v, want %v", path, expected)
	}
}

func TestConfig_String(t *testing.T) {
	if str := Default().String(); str == "" {
		t.Error("Expected non-empty string representation")
	}
}

func TestConfig_SaveConfig(t *testing.T) {
	cfg := Default()
	cfg.Collector.Entities = []string{"Acme Corp"}

	savePath := filepath.Join(t.TempDir(), "saved_config.yaml")

	if err := cfg.SaveConfig(savePath); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(savePath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if len(loaded.Collector.Entities) != 1 || loaded.Collector.Entities[0] != "Acme Corp" {
		t.Error("Loaded config does not match saved config")
	}
}

func TestLoadConfig_ShippedFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "collector.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	def := Default()
	if cfg.Source.Selector != def.Source.Selector || cfg.Roster.TableSelector != def.Roster.TableSelector {
		t.Errorf("selectors = %q, %q", cfg.Source.Selector, cfg.Roster.TableSelector)
	}

	if cfg.Collector.Retry != def.Collector.Retry {
		t.Errorf("Retry = %+v, want %+v", cfg.Collector.Retry, def.Collector.Retry)
	}

	if len(cfg.Source.UserAgents) != len(DefaultUserAgents) {
		t.Errorf("UserAgents = %d, want default pool", len(cfg.Source.UserAgents))
	}
}
