// Package config loads storefront client configuration from command-line flags, environment variables, and .env files.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Storage drivers.
const (
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	API     APIConfig
	Storage StorageConfig
	Catalog CatalogConfig
	Console ConsoleConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// APIConfig describes the remote storefront REST API.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration // default: 30s
	RateLimit float64       // requests per second per resource (default: 10)
	RateBurst int           // default: 20
}

// StorageConfig selects where the session is persisted between runs.
type StorageConfig struct {
	Driver    string // badger, sqlite, redis, or memory
	Path      string // directory for badger, file for sqlite
	RedisAddr string
	KeyPrefix string // namespaces keys in shared backends
}

// CatalogConfig holds resource store paging defaults.
type CatalogConfig struct {
	PageSize int // default page size for list fetches (default: 10)
	// FetchAllLimit is the page size used to approximate an unpaginated fetch (default: 1000).
	// Larger result sets are truncated.
	FetchAllLimit int
}

// ConsoleConfig holds the local admin console server configuration.
type ConsoleConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// Overrides carries values set on the command line. Empty fields fall through to env and defaults.
type Overrides struct {
	Environment   string
	LogLevel      string
	EnvFile       string
	APIBaseURL    string
	APITimeout    string
	StorageDriver string
	StoragePath   string
	RedisAddr     string
	ConsolePort   string
}

// Load loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(o Overrides) (*Config, error) {
	envFile := o.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// Missing .env files are fine.
	_ = loadEnvFile(envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(o.Environment, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(o.LogLevel, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL:   strings.TrimRight(getConfigValue(o.APIBaseURL, "API_BASE_URL", "http://localhost:8888"), "/"),
			RateLimit: getFloatConfigValue("", "API_RATE_LIMIT", 10),
			RateBurst: getIntConfigValue("", "API_RATE_BURST", 20),
		},
		Storage: StorageConfig{
			Driver:    strings.ToLower(getConfigValue(o.StorageDriver, "STORAGE_DRIVER", DriverBadger)),
			Path:      getConfigValue(o.StoragePath, "STORAGE_PATH", "~/.storefront"),
			RedisAddr: getConfigValue(o.RedisAddr, "REDIS_ADDR", "localhost:6379"),
			KeyPrefix: getConfigValue("", "STORAGE_KEY_PREFIX", "storefront:"),
		},
		Catalog: CatalogConfig{
			PageSize:      getIntConfigValue("", "CATALOG_PAGE_SIZE", 10),
			FetchAllLimit: getIntConfigValue("", "CATALOG_FETCH_ALL_LIMIT", 1000),
		},
		Console: ConsoleConfig{
			Port:           getConfigValue(o.ConsolePort, "CONSOLE_PORT", "8090"),
			AllowedOrigins: splitList(getConfigValue("", "CONSOLE_ALLOWED_ORIGINS", "http://localhost:5173")),
		},
	}

	var err error
	if cfg.API.Timeout, err = parseDuration(o.APITimeout, "API_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.Console.ReadTimeout, err = parseDuration("", "CONSOLE_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Console.WriteTimeout, err = parseDuration("", "CONSOLE_WRITE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	if cfg.Storage.Driver == DriverBadger || cfg.Storage.Driver == DriverSQLite {
		if cfg.Storage.Path, err = expandPath(cfg.Storage.Path); err != nil {
			return nil, fmt.Errorf("invalid storage path: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %q (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", c.Logger.Level)
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API base URL: %q", c.API.BaseURL)
	}
	if c.API.RateLimit <= 0 || c.API.RateBurst <= 0 {
		return errors.New("API rate limit and burst must be positive")
	}

	switch c.Storage.Driver {
	case DriverBadger, DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage path is required for the %s driver", c.Storage.Driver)
		}
	case DriverRedis:
		if c.Storage.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("invalid storage driver: %q (must be badger, sqlite, redis, or memory)", c.Storage.Driver)
	}

	if c.Catalog.PageSize <= 0 {
		return errors.New("catalog page size must be positive")
	}
	if c.Catalog.FetchAllLimit < c.Catalog.PageSize {
		return errors.New("catalog fetch-all limit must not be smaller than the page size")
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// getFloatConfigValue returns a float from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result float64
	if _, err := fmt.Sscanf(strValue, "%g", &result); err != nil {
		return defaultValue
	}
	return result
}

func parseDuration(flagValue, envKey, defaultValue string) (time.Duration, error) {
	raw := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, raw, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		// Real env vars win over the file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
