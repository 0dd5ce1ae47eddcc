package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"

	devSessionSecret = "dev-secret-change-me"
)

type Config struct {
	ListenAddr      string        // ex: ":5000"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request budget for JSON endpoints
	WriteTimeout    time.Duration // 0 = no limit (long audio streams)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DataFile  string // path to the JSON document holding all persistent state
	MediaRoot string // directory scanned for playlists

	AccountsFile           string        // optional yaml file provisioning accounts (admins)
	AccountsReloadInterval time.Duration // interval to re-read AccountsFile

	// Sessions
	SessionSecret        string        // HMAC key signing the session cookie
	SessionTTL           time.Duration // lifetime of an issued session
	SessionCookie        string        // cookie name
	CookieSecure         bool          // mark the cookie Secure (HTTPS only)
	SessionBackend       string        // "memory" | "redis"
	SessionSweepInterval time.Duration // memory backend: interval between expiry sweeps

	// Redis (only used by the redis session backend)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict /readyz to specific IPs or CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers
}

func Load() *Config {
	loadEnvFile(os.Getenv("HOMEDECK_ENV_FILE"))

	cfg := &Config{
		// Server settings
		ListenAddr:      getenv("HOMEDECK_LISTEN_ADDR", ":5000"),
		ShutdownTimeout: mustDuration("HOMEDECK_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("HOMEDECK_REQUEST_TIMEOUT", 5*time.Second),
		WriteTimeout:    mustDuration("HOMEDECK_WRITE_TIMEOUT", 0),

		// Logging
		LogLevel:  getenv("HOMEDECK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("HOMEDECK_PRETTY_LOG", true),

		// Storage
		DataFile:  getenv("HOMEDECK_DATA_FILE", "data.json"),
		MediaRoot: getenv("HOMEDECK_MEDIA_ROOT", "music"),

		AccountsFile:           getenv("HOMEDECK_ACCOUNTS_FILE", ""),
		AccountsReloadInterval: mustDuration("HOMEDECK_ACCOUNTS_RELOAD_INTERVAL", time.Hour),

		// Sessions
		SessionSecret:        getenv("HOMEDECK_SESSION_SECRET", devSessionSecret),
		SessionTTL:           mustDuration("HOMEDECK_SESSION_TTL", 24*time.Hour),
		SessionCookie:        getenv("HOMEDECK_SESSION_COOKIE", "homedeck_session"),
		CookieSecure:         mustBool("HOMEDECK_COOKIE_SECURE", false),
		SessionBackend:       strings.ToLower(getenv("HOMEDECK_SESSION_BACKEND", SessionBackendMemory)),
		SessionSweepInterval: mustDuration("HOMEDECK_SESSION_SWEEP_INTERVAL", 10*time.Minute),

		// Redis settings
		RedisUser:           getenv("HOMEDECK_REDIS_USERNAME", ""),
		RedisPassword:       getenv("HOMEDECK_REDIS_PASSWORD", ""),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("HOMEDECK_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("HOMEDECK_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("HOMEDECK_TRUST_PROXY", false),
	}

	switch cfg.SessionBackend {
	case SessionBackendMemory:
	case SessionBackendRedis:
		cfg.RedisAddr = requireEnv("HOMEDECK_REDIS_ADDR")
		cfg.RedisDB = getenvInt("HOMEDECK_REDIS_DB", 0)
	default:
		panic(fmt.Sprintf("❌ FATAL: unsupported HOMEDECK_SESSION_BACKEND %q (memory|redis)", cfg.SessionBackend))
	}

	if cfg.SessionTTL <= 0 {
		panic("❌ FATAL: HOMEDECK_SESSION_TTL must be > 0")
	}

	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.SessionSecret = "***REDACTED***"
		cfgCopy.RedisPassword = "***REDACTED***"
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// UsesDevSecret reports whether the session secret was left at its default.
func (c *Config) UsesDevSecret() bool {
	return c.SessionSecret == devSessionSecret
}

// loadEnvFile loads KEY=VALUE pairs from path. Variables already present in
// the environment are not overridden.
func loadEnvFile(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil {
		panic(fmt.Sprintf("❌ FATAL: failed to load env file %s: %v", path, err))
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
