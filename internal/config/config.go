package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the adapter and the application it wraps
type Config struct {
	Environment string
	Port        string
	Log         LogConfig
	Adapter     AdapterConfig
	RateLimit   RateLimitConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

// AdapterConfig holds the event translation settings
type AdapterConfig struct {
	Framework          string // "gin", "chi", "echo", "http" or "handler"
	StripBasePath      string
	BinaryContentTypes []string
	ExposeErrors       bool
}

// RateLimitConfig holds per-container rate limiting for the application
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8081")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("FRAMEWORK", "gin")
	v.SetDefault("STRIP_BASE_PATH", "")
	v.SetDefault("BINARY_CONTENT_TYPES", "")
	v.SetDefault("EXPOSE_ERRORS", false)
	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Adapter: AdapterConfig{
			Framework:          strings.ToLower(v.GetString("FRAMEWORK")),
			StripBasePath:      v.GetString("STRIP_BASE_PATH"),
			BinaryContentTypes: splitList(v.GetString("BINARY_CONTENT_TYPES")),
			ExposeErrors:       v.GetBool("EXPOSE_ERRORS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}

// IsProduction reports whether the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
