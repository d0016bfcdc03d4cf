package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override file configuration.
const (
	EnvLogLevel     = "NEWSHARVEST_LOG_LEVEL"
	EnvOutputDir    = "NEWSHARVEST_OUTPUT_DIR"
	EnvOutputFormat = "NEWSHARVEST_OUTPUT_FORMAT"
	EnvRetryDelayMs = "NEWSHARVEST_RETRY_DELAY_MS"
	EnvMaxAttempts  = "NEWSHARVEST_MAX_ATTEMPTS"
	EnvEntities     = "NEWSHARVEST_ENTITIES"
)

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; existing variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}

	return nil
}

// ApplyEnv overrides configuration values from NEWSHARVEST_* variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}

	if v := os.Getenv(EnvOutputDir); v != "" {
		c.Output.BasePath = v
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.Format = strings.ToLower(v)
	}

	if v := os.Getenv(EnvRetryDelayMs); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRetryDelayMs, err)
		}

		c.Collector.Retry.InitialDelayMs = ms
		if c.Collector.Retry.MaxDelayMs < ms {
			c.Collector.Retry.MaxDelayMs = ms
		}
	}

	if v := os.Getenv(EnvMaxAttempts); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMaxAttempts, err)
		}

		c.Collector.Retry.MaxAttempts = n
	}

	if v := os.Getenv(EnvEntities); v != "" {
		var entities []string

		for _, e := range strings.Split(v, ",") {
			if e = strings.TrimSpace(e); e != "" {
				entities = append(entities, e)
			}
		}

		c.Collector.Entities = entities
	}

	return nil
}
