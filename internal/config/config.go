package config

import (
	"os"
	"strconv"
	"time"

	"govista/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	AI     AIConfig
	Server ServerConfig
	Cache  CacheConfig
	Data   DataConfig
}

// AIConfig holds AI/LLM related settings. An empty APIKey disables
// the AI collaborator; suggestions then come from the heuristic
// fallback only.
type AIConfig struct {
	APIKey        string
	Model         string
	BaseURL       string
	SystemContext string
	MaxTokens     int
	Temperature   float64
	Timeout       time.Duration
}

// Enabled reports whether the hosted AI collaborator is configured
func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// CacheConfig bounds the dataset cache
type CacheConfig struct {
	TTL     time.Duration
	MaxSize int
}

// DataConfig holds data processing settings
type DataConfig struct {
	// MaxSampleRows caps the rows forwarded to the AI collaborator
	MaxSampleRows int
	// MaxRenderRows caps the rows handed to a chart renderer
	MaxRenderRows int
	// Seed drives the injectable RNG for random sampling and
	// scatter synthesis
	Seed int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		AI:     loadAIConfig(),
		Server: loadServerConfig(),
		Cache:  loadCacheConfig(),
		Data:   loadDataConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadAIConfig() AIConfig {
	return AIConfig{
		APIKey:        os.Getenv("OPENAI_API_KEY"),
		Model:         getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
		BaseURL:       getEnvOrDefault("LLM_BASE_URL", ""),
		SystemContext: "You are a business-intelligence assistant for tabular data.",
		MaxTokens:     getEnvIntOrDefault("MAX_TOKENS", 2000),
		Temperature:   getEnvFloatOrDefault("TEMPERATURE", 0.2),
		Timeout:       getEnvDurationOrDefault("LLM_TIMEOUT", 60*time.Second),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:     getEnvDurationOrDefault("CACHE_TTL", 5*time.Minute),
		MaxSize: getEnvIntOrDefault("CACHE_MAX_SIZE", 100),
	}
}

func loadDataConfig() DataConfig {
	return DataConfig{
		MaxSampleRows: getEnvIntOrDefault("MAX_SAMPLE_ROWS", 50),
		MaxRenderRows: getEnvIntOrDefault("MAX_RENDER_ROWS", 500),
		Seed:          int64(getEnvIntOrDefault("SAMPLING_SEED", 42)),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Data.MaxSampleRows <= 0 {
		return errors.ConfigInvalid("MAX_SAMPLE_ROWS must be positive")
	}
	if config.Data.MaxRenderRows <= 0 {
		return errors.ConfigInvalid("MAX_RENDER_ROWS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
