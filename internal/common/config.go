package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// Config represents the application configuration
type Config struct {
	Environment  string             `toml:"environment"` // "development" or "production"
	Server       ServerConfig       `toml:"server"`
	Storage      StorageConfig      `toml:"storage"`
	Logging      LoggingConfig      `toml:"logging"`
	Cache        CacheConfig        `toml:"cache"`
	Listing      ListingConfig      `toml:"listing"`
	Claude       ClaudeConfig       `toml:"claude"`
	Gemini       GeminiConfig       `toml:"gemini"`
	LLM          LLMConfig          `toml:"llm"`
	Reservations ReservationsConfig `toml:"reservations"`
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
	TimeFormat string   `toml:"time_format"` // Time format for logs
}

// CacheConfig controls TTLs for the two cache namespaces and the sweep job.
type CacheConfig struct {
	VenueTTL      time.Duration `toml:"venue_ttl"`      // venue detail records (default: 7 days)
	VibeTTL       time.Duration `toml:"vibe_ttl"`       // vibe analysis records (default: 30 days)
	SweepEnabled  bool          `toml:"sweep_enabled"`  // run the scheduled expiry sweep
	SweepSchedule string        `toml:"sweep_schedule"` // cron schedule for the sweep
}

// ListingConfig contains the venue listing provider configuration
type ListingConfig struct {
	APIKey          string        `toml:"api_key"`          // Listing provider API key
	BaseURL         string        `toml:"base_url"`         // Provider API base URL
	RateLimit       time.Duration `toml:"rate_limit"`       // Minimum time between API requests
	RequestTimeout  time.Duration `toml:"request_timeout"`  // HTTP request timeout
	MaxResults      int           `toml:"max_results"`      // Provider limit per search request
	DefaultLocation string        `toml:"default_location"` // Fallback search location
	DefaultRadius   int           `toml:"default_radius"`   // Search radius in meters
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key
	Model       string  `toml:"model"`       // Model for vibe operations
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 2048)
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string (default: "2m")
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.7)
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`     // Google Gemini API key
	Model       string  `toml:"model"`       // Model for vibe operations
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string (default: "2m")
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.7)
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig selects the provider used for vibe analysis and matching
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider"` // "gemini" or "claude" (default: "gemini")
}

// ReservationsConfig contains booking platform credentials and limits
type ReservationsConfig struct {
	OpenTableAPIKey  string        `toml:"opentable_api_key"`
	ResyAPIKey       string        `toml:"resy_api_key"`
	ResyAuthToken    string        `toml:"resy_auth_token"`
	SevenRoomsAPIKey string        `toml:"sevenrooms_api_key"`
	RequestTimeout   time.Duration `toml:"request_timeout"` // HTTP request timeout per probe
	MaxChecks        int           `toml:"max_checks"`      // Max venues probed per request
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings should be exposed in vibecheck.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
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
		Cache: CacheConfig{
			VenueTTL:      7 * 24 * time.Hour,
			VibeTTL:       30 * 24 * time.Hour,
			SweepEnabled:  true,
			SweepSchedule: "0 0 * * *", // daily at midnight
		},
		Listing: ListingConfig{
			APIKey:          "", // user must provide (VIBECHECK_LISTING_API_KEY or config)
			BaseURL:         "https://api.yelp.com/v3",
			RateLimit:       200 * time.Millisecond,
			RequestTimeout:  30 * time.Second,
			MaxResults:      20,
			DefaultLocation: "New York, NY",
			DefaultRadius:   5000,
		},
		Claude: ClaudeConfig{
			APIKey:      "",
			Model:       "claude-haiku-3-5-20241022",
			MaxTokens:   2048,
			Timeout:     "2m",
			Temperature: 0.7,
		},
		Gemini: GeminiConfig{
			APIKey:      "",
			Model:       "gemini-3-flash-preview",
			Timeout:     "2m",
			Temperature: 0.7,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderGemini,
		},
		Reservations: ReservationsConfig{
			RequestTimeout: 10 * time.Second,
			MaxChecks:      5,
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env. Later files override earlier
// files; environment variables override all files.
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

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("VIBECHECK_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("VIBECHECK_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("VIBECHECK_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if path := os.Getenv("VIBECHECK_BADGER_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}
	if level := os.Getenv("VIBECHECK_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	// API keys: provider-native variables are honored alongside the
	// VIBECHECK_-prefixed ones.
	if key := os.Getenv("VIBECHECK_LISTING_API_KEY"); key != "" {
		config.Listing.APIKey = key
	} else if key := os.Getenv("YELP_API_KEY"); key != "" {
		config.Listing.APIKey = key
	}
	if key := os.Getenv("VIBECHECK_CLAUDE_API_KEY"); key != "" {
		config.Claude.APIKey = key
	} else if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}
	if key := os.Getenv("VIBECHECK_GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
	if provider := os.Getenv("VIBECHECK_LLM_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(provider)
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks configuration invariants that would otherwise surface as
// confusing runtime failures.
func (c *Config) Validate() error {
	if c.LLM.DefaultProvider != LLMProviderGemini && c.LLM.DefaultProvider != LLMProviderClaude {
		return fmt.Errorf("invalid llm provider '%s': must be 'gemini' or 'claude'", c.LLM.DefaultProvider)
	}
	if c.Cache.VenueTTL <= 0 || c.Cache.VibeTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive (venue_ttl=%s, vibe_ttl=%s)", c.Cache.VenueTTL, c.Cache.VibeTTL)
	}
	if c.Cache.SweepEnabled {
		if _, err := cron.ParseStandard(c.Cache.SweepSchedule); err != nil {
			return fmt.Errorf("invalid sweep schedule '%s': %w", c.Cache.SweepSchedule, err)
		}
	}
	return nil
}

// IsProduction returns true when running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
