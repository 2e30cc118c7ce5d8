package config

import "time"

// Environment variable names
const (
	EnvCatalogPath      = "CATALOG_PATH"
	EnvProfileDir       = "PROFILE_DIR"
	EnvPort             = "PORT"
	EnvAPIKey           = "API_KEY"
	EnvTrustedProxies   = "TRUSTED_PROXIES"
	EnvLogLevel         = "LOG_LEVEL"
	EnvLogFormat        = "LOG_FORMAT"
	EnvEnvironment      = "ENVIRONMENT"
	EnvServiceName      = "SERVICE_NAME"
	EnvVersion          = "VERSION"
	EnvSearchWorkers    = "SEARCH_WORKERS"
	EnvSearchCacheSize  = "SEARCH_CACHE_SIZE"
	EnvSearchCacheTTL   = "SEARCH_CACHE_TTL"
	EnvProgressInterval = "PROGRESS_INTERVAL"
)

// Defaults
const (
	DefaultCatalogPath      = "configs/catalog.json"
	DefaultProfileDir       = "configs/profiles"
	DefaultPort             = 8080
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "text"
	DefaultEnvironment      = "dev"
	DefaultServiceName      = "mix-optimizer"
	DefaultVersion          = "dev"
	DefaultSearchWorkers    = 0 // one per CPU
	DefaultSearchCacheSize  = 256
	DefaultSearchCacheTTL   = 30 * time.Minute
	DefaultProgressInterval = 5 * time.Second
)
