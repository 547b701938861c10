// Package config provides configuration loading from environment
// variables.
package config

import (
	"os"
	"strconv"
)

// Output and processing defaults.
const (
	DefaultQueryLimitValue  = 100
	DefaultSearchLimitValue = 50
	StoreCacheMaxValue      = 16
)

// Config holds all configuration for the privlabel tool.
type Config struct {
	TrafficLogFile     string // TRAFFIC_LOG_FILE, default "traffic_log.jsonl"
	StoreCacheMaxItems int    // STORE_CACHE_MAX_ITEMS, default 16
	DefaultQueryLimit  int    // DEFAULT_QUERY_LIMIT, default 100
	DefaultSearchLimit int    // DEFAULT_SEARCH_LIMIT, default 50

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 14
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible
// defaults.
func Load() *Config {
	return &Config{
		TrafficLogFile:     getEnvString("TRAFFIC_LOG_FILE", "traffic_log.jsonl"),
		StoreCacheMaxItems: getEnvInt("STORE_CACHE_MAX_ITEMS", StoreCacheMaxValue),
		DefaultQueryLimit:  getEnvInt("DEFAULT_QUERY_LIMIT", DefaultQueryLimitValue),
		DefaultSearchLimit: getEnvInt("DEFAULT_SEARCH_LIMIT", DefaultSearchLimitValue),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 14),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
