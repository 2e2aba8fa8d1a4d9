// Package config handles configuration loading for FinAssist.
// It supports YAML config files, a .env file and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/seenimoa/finassist/internal/datasource"
	"github.com/seenimoa/finassist/internal/market"
	"github.com/seenimoa/finassist/pkg/logger"
)

// EnvPrefix prefixes every environment override, e.g. FINASSIST_API_PORT.
const EnvPrefix = "FINASSIST"

// Conventional names for the secrets, read in addition to the prefixed keys.
const (
	EnvTwelveDataKey = "TWELVE_DATA_KEY"
	EnvGeminiKey     = "GEMINI_API_KEY"
)

// Config represents the complete application configuration.
type Config struct {
	API       APIConfig       `mapstructure:"api"       yaml:"api"`
	Providers ProvidersConfig `mapstructure:"providers" yaml:"providers"`
	Cache     CacheConfig     `mapstructure:"cache"     yaml:"cache"`
	News      NewsConfig      `mapstructure:"news"      yaml:"news"`
	Stream    StreamConfig    `mapstructure:"stream"    yaml:"stream"`
	Assistant AssistantConfig `mapstructure:"assistant" yaml:"assistant"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
}

// APIConfig holds HTTP server settings.
type APIConfig struct {
	Host           string        `mapstructure:"host"            yaml:"host"`
	Port           int           `mapstructure:"port"            yaml:"port"`
	CORSOrigins    []string      `mapstructure:"cors_origins"    yaml:"cors_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
}

// Addr returns host:port.
func (a APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// ProvidersConfig groups the upstream adapters.
type ProvidersConfig struct {
	NSE         NSEConfig        `mapstructure:"nse"         yaml:"nse"`
	TwelveData  TwelveDataConfig `mapstructure:"twelve_data" yaml:"twelve_data"`
	Yahoo       YahooConfig      `mapstructure:"yahoo"       yaml:"yahoo"`
	Frankfurter EndpointConfig   `mapstructure:"frankfurter" yaml:"frankfurter"`
	MFAPI       EndpointConfig   `mapstructure:"mfapi"       yaml:"mfapi"`
}

// NSEConfig configures the scraped exchange API.
type NSEConfig struct {
	BaseURL           string        `mapstructure:"base_url"            yaml:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"             yaml:"timeout"`
	CookieTTL         time.Duration `mapstructure:"cookie_ttl"          yaml:"cookie_ttl"`
	RequestsPerSecond int           `mapstructure:"requests_per_second" yaml:"requests_per_second"`
}

// TwelveDataConfig configures the licensed data API.
type TwelveDataConfig struct {
	APIKey            string        `mapstructure:"api_key"             yaml:"api_key"`
	BaseURL           string        `mapstructure:"base_url"            yaml:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"             yaml:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
}

// YahooConfig configures the key-less fallback.
type YahooConfig struct {
	BaseURL           string        `mapstructure:"base_url"            yaml:"base_url"`
	HardTimeout       time.Duration `mapstructure:"hard_timeout"        yaml:"hard_timeout"`
	RequestsPerSecond int           `mapstructure:"requests_per_second" yaml:"requests_per_second"`
}

// EndpointConfig holds an optional base URL override.
type EndpointConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// CacheConfig holds the TTL table. Zero entries fall back to the built-in
// lifetimes. An empty SweepSchedule leaves expiry lazy.
type CacheConfig struct {
	TTL           market.TTLPolicy `mapstructure:"ttl"            yaml:"ttl"`
	SweepSchedule string           `mapstructure:"sweep_schedule" yaml:"sweep_schedule"`
}

// NewsConfig configures the RSS headline aggregator.
type NewsConfig struct {
	Feeds   []datasource.FeedSource `mapstructure:"feeds"   yaml:"feeds"`
	Workers int                     `mapstructure:"workers" yaml:"workers"`
	Timeout time.Duration           `mapstructure:"timeout" yaml:"timeout"`
	MaxAge  time.Duration           `mapstructure:"max_age" yaml:"max_age"`
	Limit   int                     `mapstructure:"limit"   yaml:"limit"`
}

// StreamConfig configures the WebSocket quote stream.
type StreamConfig struct {
	Schedule string `mapstructure:"schedule" yaml:"schedule"`
}

// AssistantConfig configures the chat endpoint.
type AssistantConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" yaml:"gemini_api_key"`
	Model        string `mapstructure:"model"          yaml:"model"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "pretty" or "json"
}

// Pretty reports whether console output is requested.
func (l LoggingConfig) Pretty() bool { return !strings.EqualFold(l.Format, "json") }

// Load reads the configuration from .env, file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.finassist/config.yaml (home directory)
//  3. /etc/finassist/config.yaml (system)
//
// Environment variables override config file values.
// Format: FINASSIST_<SECTION>_<KEY>, e.g., FINASSIST_API_PORT
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".finassist"))
	v.AddConfigPath("/etc/finassist")

	// Config file is optional; defaults and env vars cover the rest.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets defaults for every key that has one. Secrets and base
// URLs stay empty so the adapters use their own.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"*"})
	v.SetDefault("api.request_timeout", 30*time.Second)

	v.SetDefault("providers.nse.timeout", 10*time.Second)
	v.SetDefault("providers.nse.cookie_ttl", 5*time.Minute)
	v.SetDefault("providers.nse.requests_per_second", 3)
	v.SetDefault("providers.twelve_data.api_key", "")
	v.SetDefault("providers.twelve_data.timeout", 10*time.Second)
	v.SetDefault("providers.twelve_data.requests_per_minute", 8)
	v.SetDefault("providers.yahoo.hard_timeout", datasource.DefaultHardTimeout)
	v.SetDefault("providers.yahoo.requests_per_second", 0)

	v.SetDefault("cache.sweep_schedule", "")

	v.SetDefault("news.workers", 6)
	v.SetDefault("news.timeout", 12*time.Second)
	v.SetDefault("news.max_age", 24*time.Hour)
	v.SetDefault("news.limit", 50)

	v.SetDefault("stream.schedule", "@every 15s")

	v.SetDefault("assistant.gemini_api_key", "")
	v.SetDefault("assistant.model", "gemini-2.5-flash")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "pretty")
}

// overrideFromEnv reads the secrets from their conventional variable names.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv(EnvTwelveDataKey); key != "" {
		cfg.Providers.TwelveData.APIKey = key
	}
	if key := os.Getenv(EnvGeminiKey); key != "" {
		cfg.Assistant.GeminiAPIKey = key
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.API.Port <= 0 || c.API.Port > 65535 {
		errs = append(errs, fmt.Errorf("api.port: invalid port %d", c.API.Port))
	}
	if c.Providers.Yahoo.HardTimeout <= 0 {
		errs = append(errs, fmt.Errorf("providers.yahoo.hard_timeout: must be positive, got %s", c.Providers.Yahoo.HardTimeout))
	}
	if c.News.Workers <= 0 {
		errs = append(errs, fmt.Errorf("news.workers: must be positive, got %d", c.News.Workers))
	}
	if !logger.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	return errors.Join(errs...)
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
