package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	GinMode     string `env:"GIN_MODE" envDefault:"debug"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	DBUrl       string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"portfolio.db"`
	JWTSecret   string `env:"JWT_SECRET"`
	JWKSUrl     string `env:"JWKS_URL"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	// Redis Configuration
	RedisURL          string        `env:"REDIS_URL"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	PortfolioCacheTTL time.Duration `env:"PORTFOLIO_CACHE_TTL" envDefault:"5m"`
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int `env:"RATE_LIMIT_WINDOW_SECONDS" envDefault:"60"`
	RateLimitGlobalThreshold int `env:"RATE_LIMIT_GLOBAL_THRESHOLD" envDefault:"100"`
	RateLimitPublicThreshold int `env:"RATE_LIMIT_PUBLIC_THRESHOLD" envDefault:"60"`
	// Per-user daily quota for document import and workbook export
	QuotaDailyLimit int `env:"QUOTA_DAILY_LIMIT" envDefault:"50"`
	// Snapshot archive (disabled when bucket is empty)
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Bucket    string `env:"S3_BUCKET"`
	// Template catalog override; the embedded catalog is used when empty
	TemplateCatalogPath string `env:"TEMPLATE_CATALOG_PATH"`
}

// UseSQLite reports whether the local SQLite store replaces Postgres.
func (c *Config) UseSQLite() bool {
	return c.DBUrl == ""
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored when the file is missing)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// Strip trailing slash to avoid double slashes in CORS origin checks
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")

	if cfg.DBUrl == "" {
		log.Printf("WARNING: DATABASE_URL is missing. Falling back to SQLite at %s.", cfg.SQLitePath)
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback and portfolio cache is disabled.")
	}
	if cfg.JWTSecret == "" && cfg.JWKSUrl == "" {
		return nil, fmt.Errorf("JWT_SECRET or JWKS_URL is required")
	}

	return cfg, nil
}
