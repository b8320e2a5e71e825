// Package config loads server settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/kataras/figma-mcp/pkg/figma"
	"github.com/kataras/figma-mcp/pkg/formatter"
)

// Environment variables read by Load.
const (
	EnvAPIKey      = "FIGMA_API_KEY"
	EnvAPIBase     = "FIGMA_API_BASE"
	EnvOutput      = "OUTPUT_FORMAT"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogsDir     = "FIGMA_LOGS_DIR"
	EnvHTTPTimeout = "FIGMA_HTTP_TIMEOUT"
)

// Config holds the settings of the server and the CLI.
type Config struct {
	APIKey       string
	APIBase      string
	OutputFormat formatter.Format
	LogLevel     string
	LogsDir      string
	HTTPTimeout  time.Duration
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		APIBase:      figma.DefaultBaseURL,
		OutputFormat: formatter.YAML,
		LogLevel:     "info",
		HTTPTimeout:  120 * time.Second,
	}
}

// Load reads envFile when it exists, then the environment. Variables already set in the
// environment take precedence over the file. An empty envFile skips the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, errors.Wrapf(err, "load %s", envFile)
		}
	}

	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a variable lookup function.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvAPIKey); ok {
		cfg.APIKey = v
	}
	if v, ok := lookup(EnvAPIBase); ok && v != "" {
		cfg.APIBase = v
	}
	if v, ok := lookup(EnvOutput); ok && v != "" {
		format, err := formatter.ParseFormat(v)
		if err != nil {
			return Config{}, errors.Wrap(err, EnvOutput)
		}
		cfg.OutputFormat = format
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvLogsDir); ok {
		cfg.LogsDir = v
	}
	if v, ok := lookup(EnvHTTPTimeout); ok && v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, errors.Wrap(err, EnvHTTPTimeout)
		}
		cfg.HTTPTimeout = timeout
	}

	return cfg, nil
}

// Validate reports settings that would make every request fail.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("figma access token is required: set %s or pass --token", EnvAPIKey)
	}
	if _, err := formatter.ParseFormat(string(c.OutputFormat)); err != nil {
		return err
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}
