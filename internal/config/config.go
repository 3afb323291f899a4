package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Admin gate modes accepted by ADMIN_GATE.
const (
	GateToken = "token"
	GateOpen  = "open"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port string

	DatabaseURL      string
	CatalogEnabled   bool
	DBMaxConns       int32
	DBAcquireTimeout time.Duration
	DBAutoMigrate    bool

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	MongoURI string
	MongoDB  string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	PublicBaseURL  string

	AdminTokenHash string
	AdminGate      string

	LogLevel  string
	LogFormat string
}

// Load reads a .env file if one exists, then the process environment.
// Variables already set in the environment take precedence over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds and validates a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		DatabaseURL:    getenv("DATABASE_URL", ""),
		RedisAddr:      getenv("REDIS_ADDR", ""),
		RedisPassword:  getenv("REDIS_PASSWORD", ""),
		MongoURI:       getenv("MONGO_URI", ""),
		MongoDB:        getenv("MONGO_DB", "columbia"),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "columbia-images"),
		PublicBaseURL:  strings.TrimRight(getenv("PUBLIC_BASE_URL", ""), "/"),
		AdminTokenHash: getenv("ADMIN_TOKEN_HASH", ""),
		AdminGate:      strings.ToLower(getenv("ADMIN_GATE", GateToken)),
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(getenv("LOG_FORMAT", "json")),
	}

	var err error
	if cfg.CatalogEnabled, err = getbool("CATALOG_ENABLED", true); err != nil {
		return nil, err
	}
	if cfg.DBAutoMigrate, err = getbool("DB_AUTO_MIGRATE", true); err != nil {
		return nil, err
	}
	if cfg.MinioUseSSL, err = getbool("MINIO_USE_SSL", false); err != nil {
		return nil, err
	}
	if cfg.DBAcquireTimeout, err = getduration("DB_ACQUIRE_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getduration("CACHE_TTL", 30*time.Second); err != nil {
		return nil, err
	}

	maxConns, err := strconv.ParseInt(getenv("DB_MAX_CONNS", "5"), 10, 32)
	if err != nil || maxConns < 1 {
		return nil, fmt.Errorf("DB_MAX_CONNS must be a positive integer, got %q", os.Getenv("DB_MAX_CONNS"))
	}
	cfg.DBMaxConns = int32(maxConns)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be an integer between 1 and 65535, got %q", c.Port)
	}
	if c.CatalogEnabled && c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required when CATALOG_ENABLED is true")
	}
	if c.AdminGate != GateToken && c.AdminGate != GateOpen {
		return fmt.Errorf("ADMIN_GATE must be %q or %q, got %q", GateToken, GateOpen, c.AdminGate)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getbool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}

func getduration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	return d, nil
}
