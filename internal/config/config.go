package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/MixOptimizer_Go/internal/logger"
)

// Config holds the application configuration
type Config struct {
	CatalogPath string `validate:"required"`
	ProfileDir  string

	APIKey         string // empty disables authentication
	TrustedProxies []string

	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=json text"`
	Environment string `validate:"required"`
	ServiceName string `validate:"required"`
	Version     string

	SearchWorkers    int           `validate:"gte=0"`
	SearchCacheSize  int           `validate:"gte=1"`
	SearchCacheTTL   time.Duration `validate:"gte=0"`
	ProgressInterval time.Duration `validate:"gte=0"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		CatalogPath:      getEnv(EnvCatalogPath, DefaultCatalogPath),
		ProfileDir:       getEnv(EnvProfileDir, DefaultProfileDir),
		APIKey:           getEnv(EnvAPIKey, ""),
		TrustedProxies:   getEnvAsList(EnvTrustedProxies),
		LogLevel:         strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:        strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		Environment:      getEnv(EnvEnvironment, DefaultEnvironment),
		ServiceName:      getEnv(EnvServiceName, DefaultServiceName),
		Version:          getEnv(EnvVersion, DefaultVersion),
		SearchWorkers:    getEnvAsInt(EnvSearchWorkers, DefaultSearchWorkers),
		SearchCacheSize:  getEnvAsInt(EnvSearchCacheSize, DefaultSearchCacheSize),
		SearchCacheTTL:   getEnvAsDuration(EnvSearchCacheTTL, DefaultSearchCacheTTL),
		ProgressInterval: getEnvAsDuration(EnvProgressInterval, DefaultProgressInterval),
	}

	portStr := getEnv(EnvPort, strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoggerConfig derives the logger settings
func (c *Config) LoggerConfig() logger.Config {
	return logger.NewConfig(c.LogLevel, c.LogFormat, c.ServiceName, c.Version, c.Environment, c.Environment == logger.EnvironmentDev)
}

// Addr returns the HTTP listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable, dropping
// empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvAsInt retrieves an integer environment variable, falling back to the
// default when unset or unparsable
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsDuration retrieves a duration environment variable such as "90s",
// falling back to the default when unset or unparsable
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return d
}
