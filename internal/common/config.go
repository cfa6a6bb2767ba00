package common

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"

	"github.com/ternarybob/conflux/internal/interfaces"
)

// Config represents the application configuration
type Config struct {
	Environment string           `toml:"environment"` // "development" or "production"
	Server      ServerConfig     `toml:"server"`
	Storage     StorageConfig    `toml:"storage"`
	Logging     LoggingConfig    `toml:"logging"`
	MarketData  MarketDataConfig `toml:"marketdata"`
	History     HistoryConfig    `toml:"history"`
	Thesis      ThesisConfig     `toml:"thesis"`
	Scheduler   SchedulerConfig  `toml:"scheduler"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Format     string   `toml:"format"`      // "json" or "text"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05.000")
}

// MarketDataConfig contains provider and acquisition-layer configuration
type MarketDataConfig struct {
	AlphaVantageKey string `toml:"alpha_vantage_key"` // Alpha Vantage API key (empty = mock data)
	FinnhubKey      string `toml:"finnhub_key"`       // Finnhub API key (empty = mock insider data)
	CacheTTL        string `toml:"cache_ttl"`         // Response cache lifetime, e.g. "15m"
	MinuteLimit     int    `toml:"minute_limit"`      // Provider calls allowed per minute
	DayLimit        int    `toml:"day_limit"`         // Provider calls allowed per day
}

// HistoryConfig contains score history persistence configuration
type HistoryConfig struct {
	Dir string `toml:"dir"` // Directory for per-ticker history JSON files
}

// ThesisConfig contains investment thesis configuration
type ThesisConfig struct {
	File string `toml:"file"` // Path to thesis tiers YAML (empty = built-in thesis)
}

// SchedulerConfig contains watchlist snapshot scheduling configuration
type SchedulerConfig struct {
	Enabled  bool   `toml:"enabled"`  // Run the daily watchlist snapshot job
	Schedule string `toml:"schedule"` // Cron schedule format
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings are exposed in conflux.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 3000,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout", "file"},
		},
		MarketData: MarketDataConfig{
			CacheTTL:    "15m",
			MinuteLimit: 5,  // Alpha Vantage free tier
			DayLimit:    25, // Alpha Vantage free tier
		},
		History: HistoryConfig{
			Dir: "./data/history",
		},
		Thesis: ThesisConfig{
			File: "",
		},
		Scheduler: SchedulerConfig{
			Enabled:  false,           // Disabled by default - user must explicitly opt-in
			Schedule: "0 30 16 * * *", // 16:30 daily, after market close (cron format with seconds)
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env -> CLI
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files.
// Later files override earlier files; environment variables override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	// Environment configuration (highest priority: CONFLUX_ENV, fallback: GO_ENV)
	if env := os.Getenv("CONFLUX_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("CONFLUX_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("CONFLUX_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Storage configuration
	if badgerPath := os.Getenv("CONFLUX_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Logging configuration
	if level := os.Getenv("CONFLUX_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("CONFLUX_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if output := os.Getenv("CONFLUX_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			trimmed := strings.TrimSpace(o)
			if trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Market data configuration
	if key := os.Getenv("CONFLUX_ALPHA_VANTAGE_KEY"); key != "" {
		config.MarketData.AlphaVantageKey = key
	} else if key := os.Getenv("ALPHA_VANTAGE_KEY"); key != "" {
		config.MarketData.AlphaVantageKey = key
	}
	if key := os.Getenv("CONFLUX_FINNHUB_KEY"); key != "" {
		config.MarketData.FinnhubKey = key
	} else if key := os.Getenv("FINNHUB_KEY"); key != "" {
		config.MarketData.FinnhubKey = key
	}
	if ttl := os.Getenv("CONFLUX_MARKETDATA_CACHE_TTL"); ttl != "" {
		if _, err := time.ParseDuration(ttl); err == nil {
			config.MarketData.CacheTTL = ttl
		}
	}
	if minuteLimit := os.Getenv("CONFLUX_MARKETDATA_MINUTE_LIMIT"); minuteLimit != "" {
		if ml, err := strconv.Atoi(minuteLimit); err == nil {
			config.MarketData.MinuteLimit = ml
		}
	}
	if dayLimit := os.Getenv("CONFLUX_MARKETDATA_DAY_LIMIT"); dayLimit != "" {
		if dl, err := strconv.Atoi(dayLimit); err == nil {
			config.MarketData.DayLimit = dl
		}
	}

	// History configuration
	if historyDir := os.Getenv("CONFLUX_HISTORY_DIR"); historyDir != "" {
		config.History.Dir = historyDir
	}

	// Thesis configuration
	if thesisFile := os.Getenv("CONFLUX_THESIS_FILE"); thesisFile != "" {
		config.Thesis.File = thesisFile
	}

	// Scheduler configuration
	if enabled := os.Getenv("CONFLUX_SCHEDULER_ENABLED"); enabled != "" {
		if e, err := strconv.ParseBool(enabled); err == nil {
			config.Scheduler.Enabled = e
		}
	}
	if schedule := os.Getenv("CONFLUX_SCHEDULER_SCHEDULE"); schedule != "" {
		config.Scheduler.Schedule = schedule
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	// Command-line flags have highest priority
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// ResolveAPIKey resolves an API key by name with environment variable priority.
// Resolution order: environment variables -> KV store -> config fallback.
// An empty result is valid and means the provider runs in mock mode.
func ResolveAPIKey(ctx context.Context, kvStorage interfaces.KeyValueStorage, name string, configFallback string) string {
	keyToEnvMapping := map[string][]string{
		"alpha_vantage_key": {"CONFLUX_ALPHA_VANTAGE_KEY", "ALPHA_VANTAGE_KEY"},
		"finnhub_key":       {"CONFLUX_FINNHUB_KEY", "FINNHUB_KEY"},
	}

	if envVarNames, ok := keyToEnvMapping[name]; ok {
		for _, envVarName := range envVarNames {
			if envValue := os.Getenv(envVarName); envValue != "" {
				return envValue
			}
		}
	}

	if kvStorage != nil {
		apiKey, err := kvStorage.Get(ctx, name)
		if err == nil && apiKey != "" {
			return apiKey
		}
	}

	return configFallback
}

// ParsedCacheTTL parses the configured cache lifetime, falling back to 15
// minutes on an empty or malformed value.
func (c *MarketDataConfig) ParsedCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 15 * time.Minute
	}
	ttl, err := time.ParseDuration(c.CacheTTL)
	if err != nil || ttl <= 0 {
		return 15 * time.Minute
	}
	return ttl
}

// ValidateSchedule validates a cron schedule expression (with seconds field)
func ValidateSchedule(schedule string) error {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	_, err := parser.Parse(schedule)
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
