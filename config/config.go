// Package config contains everything related to configuration of the
// tripstats tool. Values are resolved in precedence order: built-in defaults,
// then the YAML config file, then TRIPSTATS_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/ridereport/tripstats/csv"
	"github.com/ridereport/tripstats/report"
	"gopkg.in/yaml.v3"
)

const defaultDebounce = 100 * time.Millisecond

// Duration is a time.Duration that unmarshals from YAML strings like "100ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// InputConfig describes the trip record input and its CSV dialect.
type InputConfig struct {
	// Path is the trip record file read by commands that take no path
	// argument.
	Path string `yaml:"path"`
	// Separator is the field separator, a single character.
	Separator string `yaml:"separator"`
	// Quote is the field quote, a single character.
	Quote string `yaml:"quote"`
}

// ReportConfig controls the rankings.
type ReportConfig struct {
	// K is the number of entries per ranking. Non-positive values produce
	// empty rankings.
	K int `yaml:"k"`
	// Format is the report encoding, "text" or "json".
	Format string `yaml:"format"`
}

// APIConfig controls the HTTP query API.
type APIConfig struct {
	Addr string `yaml:"addr"`
}

// DashboardConfig controls the live dashboard.
type DashboardConfig struct {
	// Debounce is how long the dashboard waits after an input file change
	// before re-ingesting, so that editors and download tools that write in
	// bursts trigger one reload instead of many.
	Debounce Duration `yaml:"debounce"`
}

// Config is the top-level configuration for the tripstats tool.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Report    ReportConfig    `yaml:"report"`
	API       APIConfig       `yaml:"api"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input:     InputConfig{Separator: ",", Quote: `"`},
		Report:    ReportConfig{K: report.DefaultK, Format: report.FormatText.String()},
		API:       APIConfig{Addr: ":8080"},
		Dashboard: DashboardConfig{Debounce: Duration(defaultDebounce)},
	}
}

// Load resolves the configuration. path names a YAML config file; an empty
// path means no file is read. A .env file in the working directory is loaded
// into the environment before TRIPSTATS_* variables are applied.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
		}
	}
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Input.Path = getEnvString("TRIPSTATS_INPUT", c.Input.Path)
	c.Input.Separator = getEnvString("TRIPSTATS_SEPARATOR", c.Input.Separator)
	c.Input.Quote = getEnvString("TRIPSTATS_QUOTE", c.Input.Quote)
	c.Report.K = getEnvInt("TRIPSTATS_K", c.Report.K)
	c.Report.Format = getEnvString("TRIPSTATS_FORMAT", c.Report.Format)
	c.API.Addr = getEnvString("TRIPSTATS_ADDR", c.API.Addr)
	c.Dashboard.Debounce = Duration(getEnvDuration("TRIPSTATS_DEBOUNCE", time.Duration(c.Dashboard.Debounce)))
}

// Validate reports the first problem with the configuration.
func (c *Config) Validate() error {
	if n := utf8.RuneCountInString(c.Input.Separator); n != 1 {
		return fmt.Errorf("input separator must be a single character, got %q", c.Input.Separator)
	}
	if n := utf8.RuneCountInString(c.Input.Quote); n != 1 {
		return fmt.Errorf("input quote must be a single character, got %q", c.Input.Quote)
	}
	if c.Input.Separator == c.Input.Quote {
		return fmt.Errorf("input separator and quote must differ, both are %q", c.Input.Quote)
	}
	if _, ok := report.ParseFormat(c.Report.Format); !ok {
		return fmt.Errorf("unknown report format %q", c.Report.Format)
	}
	if c.Dashboard.Debounce < 0 {
		return fmt.Errorf("dashboard debounce must not be negative, got %s", time.Duration(c.Dashboard.Debounce))
	}
	if c.API.Addr == "" {
		return fmt.Errorf("api addr must not be empty")
	}
	return nil
}

// Dialect is the CSV dialect described by the input configuration.
func (c *Config) Dialect() csv.Dialect {
	sep, _ := utf8.DecodeRuneInString(c.Input.Separator)
	quote, _ := utf8.DecodeRuneInString(c.Input.Quote)
	return csv.Dialect{Separator: sep, Quote: quote}
}

// Format is the report format described by the report configuration.
func (c *Config) Format() report.Format {
	f, _ := report.ParseFormat(c.Report.Format)
	return f
}

// Debounce is the dashboard debounce as a time.Duration, never zero.
func (c *Config) Debounce() time.Duration {
	if c.Dashboard.Debounce == 0 {
		return defaultDebounce
	}
	return time.Duration(c.Dashboard.Debounce)
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the
// default. Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
