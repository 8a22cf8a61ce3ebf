package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	Promo     PromoConfig     `mapstructure:"promo"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig points at the catalog file. An empty path uses the bundled catalog.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// MatchingConfig tunes the matching engine
type MatchingConfig struct {
	Tolerance            float64 `mapstructure:"tolerance"`
	MaxResults           int     `mapstructure:"max_results"`
	DefaultTurnoverHours float64 `mapstructure:"default_turnover_hours"`
	EnableDebugLogging   bool    `mapstructure:"enable_debug_logging"`
}

// PromoConfig selects and configures the promo-code registry
type PromoConfig struct {
	Registry string        `mapstructure:"registry"` // "static", "http" or "sql"
	BaseURL  string        `mapstructure:"base_url"`
	APIKey   string        `mapstructure:"api_key"`
	DSN      string        `mapstructure:"dsn"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Promo int `mapstructure:"promo"`  // registry requests per hour
}

// Promo registry types
const (
	RegistryStatic = "static"
	RegistryHTTP   = "http"
	RegistrySQL    = "sql"
)

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/filterfinder/")

	// FILTERFINDER_PROMO_API_KEY -> promo.api_key
	v.SetEnvPrefix("FILTERFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values. Every key needs a default
// so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("catalog.path", "")

	v.SetDefault("matching.tolerance", 0.25)
	v.SetDefault("matching.max_results", 5)
	v.SetDefault("matching.default_turnover_hours", 8.0)
	v.SetDefault("matching.enable_debug_logging", false)

	v.SetDefault("promo.registry", RegistryStatic)
	v.SetDefault("promo.base_url", "")
	v.SetDefault("promo.api_key", "")
	v.SetDefault("promo.dsn", "")
	v.SetDefault("promo.cache_ttl", "5m")

	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.promo", 1000)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Matching.Tolerance < 0 {
		return fmt.Errorf("matching tolerance must not be negative, got: %v", config.Matching.Tolerance)
	}

	if config.Matching.MaxResults < 1 || config.Matching.MaxResults > 5 {
		return fmt.Errorf("matching max_results must be between 1 and 5, got: %d", config.Matching.MaxResults)
	}

	if config.Matching.DefaultTurnoverHours <= 0 {
		return fmt.Errorf("matching default_turnover_hours must be positive, got: %v", config.Matching.DefaultTurnoverHours)
	}

	switch config.Promo.Registry {
	case RegistryStatic:
	case RegistryHTTP:
		if config.Promo.BaseURL == "" {
			return fmt.Errorf("promo base URL is required when registry is 'http' (set FILTERFINDER_PROMO_BASE_URL)")
		}
		if config.Promo.APIKey == "" {
			return fmt.Errorf("promo API key is required when registry is 'http' (set FILTERFINDER_PROMO_API_KEY)")
		}
	case RegistrySQL:
		if config.Promo.DSN == "" {
			return fmt.Errorf("promo DSN is required when registry is 'sql' (set FILTERFINDER_PROMO_DSN)")
		}
	default:
		return fmt.Errorf("promo registry must be 'static', 'http' or 'sql', got: %s", config.Promo.Registry)
	}

	if config.Promo.CacheTTL < 0 {
		return fmt.Errorf("promo cache_ttl must not be negative, got: %v", config.Promo.CacheTTL)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("ratelimit per_ip must be positive, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
