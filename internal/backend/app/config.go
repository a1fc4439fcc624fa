package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseFile string // Optional: path to SQLite database file (default: ./zerohunger.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	SessionSecret string        // Optional: HMAC secret for admin sessions, >= 32 bytes (default: random per process)
	SessionTTL    time.Duration // Admin session lifetime (default: 12h)

	SuperuserEmail    string // Optional: provisions the first superuser on an empty database
	SuperuserUsername string
	SuperuserPassword string

	TrustProxyHeaders bool // Rate limit on X-Forwarded-For / X-Real-IP; only behind a proxy that sets them (default: false)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadDotEnv reads KEY=value pairs from the given files (default ".env")
// into the environment. Variables already set win, and a missing file is
// not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func LoadConfig() Config {
	return Config{
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "zerohunger.db"),
		PepperFile:          getEnvOrDefault("PEPPER_FILE", "pepper"),
		SessionSecret:       os.Getenv("ADMIN_SESSION_SECRET"),
		SessionTTL:          getEnvDurationOrDefault("ADMIN_SESSION_TTL", 12*time.Hour),
		SuperuserEmail:      os.Getenv("SUPERUSER_EMAIL"),
		SuperuserUsername:   getEnvOrDefault("SUPERUSER_USERNAME", "admin"),
		SuperuserPassword:   os.Getenv("SUPERUSER_PASSWORD"),
		TrustProxyHeaders:   getEnvBoolOrDefault("TRUST_PROXY_HEADERS", false),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
