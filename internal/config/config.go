// Package config handles server configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the configuration for the minidb server.
type Config struct {
	Env        string // environment: "development" (default) or "production"
	ListenAddr string // HTTP listen address (default ":8080")
	LogLevel   string // log level: debug, info, warn, error (default "info")

	// Auth
	JWTSecret    string            // HS256 shared secret for bearer tokens
	APIKeys      map[string]string // principal name → API key
	AuthDisabled bool              // disable authentication entirely (development only)

	// Rate limiting
	RateLimitRPS   float64 // sustained requests per second per client (default 100)
	RateLimitBurst int     // burst capacity (default 200)

	// CORS
	CORSAllowedOrigins []string // allowed origins (default: ["*"])

	// Sessions
	SessionTTL   time.Duration // idle time before a session is reaped (default 30m)
	SessionSweep string        // cron spec for the reap job (default "@every 1m")
	SessionMax   int           // maximum live sessions, 0 = unlimited (default 100)

	HistorySize int    // retained history entries (default 1000)
	SeedFile    string // SQL script executed against the default session at startup

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// insecureDefaultSecret is the development fallback for MINIDB_JWT_SECRET.
const insecureDefaultSecret = "minidb-dev-secret"

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsProduction returns true when the server is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// LoadFromEnv loads configuration from MINIDB_* environment variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Env:          os.Getenv("MINIDB_ENV"),
		ListenAddr:   os.Getenv("MINIDB_LISTEN_ADDR"),
		LogLevel:     os.Getenv("MINIDB_LOG_LEVEL"),
		JWTSecret:    os.Getenv("MINIDB_JWT_SECRET"),
		AuthDisabled: parseBoolEnvDefault("MINIDB_AUTH_DISABLED", false),
		SessionSweep: os.Getenv("MINIDB_SESSION_SWEEP"),
		SeedFile:     os.Getenv("MINIDB_SEED_FILE"),
	}

	if v := os.Getenv("MINIDB_RATE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.RateLimitRPS = f
		} else {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("MINIDB_RATE_RPS %q is not a positive number, using default", v))
		}
	}
	if v := os.Getenv("MINIDB_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateLimitBurst = n
		} else {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("MINIDB_RATE_BURST %q is not a positive integer, using default", v))
		}
	}
	if v := os.Getenv("MINIDB_SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SessionTTL = d
		} else {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("MINIDB_SESSION_TTL %q is not a valid duration, using default", v))
		}
	}
	cfg.SessionMax = 100 // 0 disables the cap, so the default is set up front
	if v := os.Getenv("MINIDB_SESSION_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.SessionMax = n
		} else {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("MINIDB_SESSION_MAX %q is not a non-negative integer, using default", v))
		}
	}
	if v := os.Getenv("MINIDB_HISTORY_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistorySize = n
		} else {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("MINIDB_HISTORY_SIZE %q is not a positive integer, using default", v))
		}
	}

	if v := os.Getenv("MINIDB_CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORSAllowedOrigins = compactNonEmpty(origins)
	}

	keys, warnings := parseAPIKeys(os.Getenv("MINIDB_API_KEYS"))
	cfg.APIKeys = keys
	cfg.Warnings = append(cfg.Warnings, warnings...)

	// Defaults
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS = 100
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst = 200
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.SessionSweep == "" {
		cfg.SessionSweep = "@every 1m"
	}
	if cfg.HistorySize == 0 {
		cfg.HistorySize = 1000
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = insecureDefaultSecret
		cfg.Warnings = append(cfg.Warnings, "MINIDB_JWT_SECRET not set — using insecure default. Set MINIDB_JWT_SECRET in production!")
	}
	if cfg.AuthDisabled {
		cfg.Warnings = append(cfg.Warnings, "authentication is disabled — every request runs as the anonymous principal")
	}

	// Production mode: insecure defaults are fatal errors.
	if cfg.IsProduction() {
		if cfg.AuthDisabled {
			return nil, fmt.Errorf("MINIDB_AUTH_DISABLED is not allowed in production (MINIDB_ENV=production)")
		}
		if cfg.JWTSecret == insecureDefaultSecret {
			return nil, fmt.Errorf("MINIDB_JWT_SECRET must be set in production (MINIDB_ENV=production)")
		}
		if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
			return nil, fmt.Errorf("CORS wildcard (*) is not allowed in production (MINIDB_ENV=production)")
		}
	}

	return cfg, nil
}

// parseAPIKeys parses "name:key,name:key" into a map. Malformed pairs are
// skipped with a warning.
func parseAPIKeys(raw string) (map[string]string, []string) {
	if raw == "" {
		return nil, nil
	}
	keys := make(map[string]string)
	var warnings []string
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, key, ok := strings.Cut(pair, ":")
		name = strings.TrimSpace(name)
		key = strings.TrimSpace(key)
		if !ok || name == "" || key == "" {
			warnings = append(warnings, fmt.Sprintf("MINIDB_API_KEYS entry %q is not name:key, skipped", pair))
			continue
		}
		keys[name] = key
	}
	if len(keys) == 0 {
		return nil, warnings
	}
	return keys, warnings
}

func parseBoolEnvDefault(key string, defaultVal bool) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if v == "" {
		return defaultVal
	}
	if v == "0" || v == "false" || v == "no" || v == "off" {
		return false
	}
	if v == "1" || v == "true" || v == "yes" || v == "on" {
		return true
	}
	return defaultVal
}

func compactNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// LoadDotEnv reads a .env file and sets any variables not already in the
// environment. Lines must be in KEY=VALUE format. Comments (#) and blank
// lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = stripQuotes(strings.TrimSpace(value))
		// Real environment variables take precedence.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
// Only strips if both the first and last characters are matching quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
