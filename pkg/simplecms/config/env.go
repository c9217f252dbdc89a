package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// WithEnv applies environment variable overrides. Variables that are unset
// leave the current value unchanged.
//
// Server:
//
//	CMS_PORT, CMS_ENVIRONMENT, CMS_LOG_LEVEL
//
// Database:
//
//	CMS_DATABASE_URL - "memory" or empty for the in-memory store, otherwise
//	                   a postgres:// or postgresql:// connection string
//	CMS_DB_SCHEMA, CMS_AUTO_MIGRATE
//
// Schema cache:
//
//	CMS_REDIS_URL, CMS_SCHEMA_CACHE_TTL (e.g. "5m")
//
// Media validation:
//
//	CMS_MEDIA_S3_BUCKET, CMS_MEDIA_S3_REGION, CMS_MEDIA_S3_ENDPOINT,
//	CMS_MEDIA_S3_PREFIX, CMS_MEDIA_S3_KEY_LAYOUT, CMS_MEDIA_S3_USE_PATH_STYLE,
//	AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY
//
// Access:
//
//	CMS_ACCESS_POLICY_FILE, CMS_JWT_SECRET, CMS_ENABLE_EVENT_LOGGING
func WithEnv() Option {
	return func(c *ServerConfig) error {
		if err := cleanenv.ReadEnv(c); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}
		return applyDatabaseURL(c)
	}
}

// WithDotEnv loads variables from the given .env files (default ".env")
// into the process environment and then applies WithEnv. Missing files
// are ignored.
func WithDotEnv(files ...string) Option {
	return func(c *ServerConfig) error {
		if len(files) == 0 {
			files = []string{".env"}
		}
		for _, f := range files {
			_ = godotenv.Load(f)
		}
		return WithEnv()(c)
	}
}

// applyDatabaseURL derives the database type from the URL
func applyDatabaseURL(c *ServerConfig) error {
	dbURL := c.DatabaseURL

	if dbURL == "" || dbURL == "memory" {
		c.DatabaseType = "memory"
		c.DatabaseURL = ""
		return nil
	}

	if strings.HasPrefix(dbURL, "postgresql://") || strings.HasPrefix(dbURL, "postgres://") {
		c.DatabaseType = "postgres"
		return nil
	}

	return fmt.Errorf("unsupported CMS_DATABASE_URL format: %s (use 'memory' or 'postgresql://...')", dbURL)
}
