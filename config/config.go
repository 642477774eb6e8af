package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Port         string
	LogLevel     string
	IsProduction bool

	CacheBackend    string
	RedisAddr       string
	CacheTTL        time.Duration
	CacheMaxEntries int

	StorageBackend string
	SQLiteDBPath   string

	// RateLimit uses the limiter format "<requests>-<S|M|H|D>", e.g. "60-M".
	RateLimit string

	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, after an optional .env file.
func Load() (*Config, error) {
	// Missing .env is fine
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("CACHE_BACKEND", BackendMemory)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("CACHE_TTL", "24h")
	v.SetDefault("CACHE_MAX_ENTRIES", 1000)
	v.SetDefault("STORAGE_BACKEND", BackendMemory)
	v.SetDefault("SQLITE_DB_PATH", "./data/mortgage.db")
	v.SetDefault("RATE_LIMIT", "60-M")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.AutomaticEnv()

	cfg := &Config{
		Port:            v.GetString("PORT"),
		LogLevel:        strings.ToLower(v.GetString("LOG_LEVEL")),
		IsProduction:    v.GetBool("IS_PRODUCTION"),
		CacheBackend:    strings.ToLower(v.GetString("CACHE_BACKEND")),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		CacheTTL:        v.GetDuration("CACHE_TTL"),
		CacheMaxEntries: v.GetInt("CACHE_MAX_ENTRIES"),
		StorageBackend:  strings.ToLower(v.GetString("STORAGE_BACKEND")),
		SQLiteDBPath:    v.GetString("SQLITE_DB_PATH"),
		RateLimit:       v.GetString("RATE_LIMIT"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}

	switch c.CacheBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisAddr == "" {
			problems = append(problems, "redis address cannot be empty when using redis cache backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid cache backend '%s': must be one of [%s %s]", c.CacheBackend, BackendMemory, BackendRedis))
	}
	if c.CacheTTL < 0 {
		problems = append(problems, fmt.Sprintf("invalid cache ttl %s: must not be negative", c.CacheTTL))
	}
	if c.CacheMaxEntries <= 0 {
		problems = append(problems, fmt.Sprintf("invalid cache max entries %d: must be positive", c.CacheMaxEntries))
	}

	switch c.StorageBackend {
	case BackendMemory:
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLite database path cannot be empty when using sqlite storage backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid storage backend '%s': must be one of [%s %s]", c.StorageBackend, BackendMemory, BackendSQLite))
	}

	if _, err := limiter.NewRateFromFormatted(c.RateLimit); err != nil {
		problems = append(problems, fmt.Sprintf("invalid rate limit '%s': %v", c.RateLimit, err))
	}

	if c.ShutdownTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid shutdown timeout %s: must be positive", c.ShutdownTimeout))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// ParseLogLevel maps debug, info, warn and error to slog levels.
func ParseLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level '%s': must be one of debug, info, warn, error", level)
	}
	return l, nil
}
