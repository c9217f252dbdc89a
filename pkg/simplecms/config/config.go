package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-cms/pkg/logger"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/access"
	"github.com/tendant/simple-cms/pkg/simplecms/cache"
	"github.com/tendant/simple-cms/pkg/simplecms/media"
	"github.com/tendant/simple-cms/pkg/simplecms/repo/memory"
	repopg "github.com/tendant/simple-cms/pkg/simplecms/repo/postgres"
	"go.uber.org/zap"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:               "8080",
		Environment:        "development",
		LogLevel:           "info",
		DatabaseType:       "memory",
		DBSchema:           "cms",
		SchemaCacheTTL:     cache.TTLDefault,
		EnableEventLogging: true,
		Media: MediaConfig{
			Region: "us-east-1",
		},
	}
}

// ServerConfig represents configuration for the cms service. Env tags are
// read by WithEnv; unset variables leave the current value unchanged.
type ServerConfig struct {
	Port        string `env:"CMS_PORT"`
	Environment string `env:"CMS_ENVIRONMENT"` // development, production, testing
	LogLevel    string `env:"CMS_LOG_LEVEL"`

	// Database configuration
	DatabaseURL  string `env:"CMS_DATABASE_URL"`
	DatabaseType string // "memory", "postgres"; derived from DatabaseURL by WithEnv
	DBSchema     string `env:"CMS_DB_SCHEMA"` // Postgres schema to use (default: cms)
	AutoMigrate  bool   `env:"CMS_AUTO_MIGRATE"`

	// Schema cache; memory when RedisURL is empty
	RedisURL       string        `env:"CMS_REDIS_URL"`
	SchemaCacheTTL time.Duration `env:"CMS_SCHEMA_CACHE_TTL"`

	Media MediaConfig

	// Access control
	AccessPolicyFile string `env:"CMS_ACCESS_POLICY_FILE"`
	JWTSecret        string `env:"CMS_JWT_SECRET"`

	EnableEventLogging bool `env:"CMS_ENABLE_EVENT_LOGGING"`
}

// MediaConfig configures media id validation. Validation is disabled when
// Bucket is empty.
type MediaConfig struct {
	Bucket          string `env:"CMS_MEDIA_S3_BUCKET"`
	Region          string `env:"CMS_MEDIA_S3_REGION"`
	Endpoint        string `env:"CMS_MEDIA_S3_ENDPOINT"`
	Prefix          string `env:"CMS_MEDIA_S3_PREFIX"`
	KeyLayout       string `env:"CMS_MEDIA_S3_KEY_LAYOUT" env-default:"flat"`
	UsePathStyle    bool   `env:"CMS_MEDIA_S3_USE_PATH_STYLE"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}

	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if _, err := media.ParseLayout(c.Media.KeyLayout, c.Media.Prefix); err != nil {
		return err
	}

	if c.SchemaCacheTTL < 0 {
		return errors.New("schema_cache_ttl cannot be negative")
	}

	if c.IsProduction() && c.JWTSecret == "" {
		return errors.New("jwt_secret is required in production")
	}

	return nil
}

// IsProduction reports whether the environment is production.
func (c *ServerConfig) IsProduction() bool {
	switch strings.ToLower(c.Environment) {
	case "prod", "production":
		return true
	}
	return false
}

// BuildLogger creates the zap logger for the configured environment and level
func (c *ServerConfig) BuildLogger() (*zap.Logger, error) {
	return logger.New(c.Environment, c.LogLevel)
}

// BuildService creates a Service instance from the server configuration.
// The returned cleanup func releases database and cache connections.
func (c *ServerConfig) BuildService(ctx context.Context, log *zap.Logger) (simplecms.Service, func(), error) {
	if log == nil {
		log = zap.NewNop()
	}
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	options := []simplecms.Option{simplecms.WithLogger(log)}

	// Set up repository
	repo, closeRepo, err := c.buildRepository(ctx, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build repository: %w", err)
	}
	closers = append(closers, closeRepo)
	options = append(options, simplecms.WithRepository(repo))

	// Set up schema cache
	schemaCache, closeCache, err := c.buildSchemaCache(ctx)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to build schema cache: %w", err)
	}
	closers = append(closers, closeCache)
	options = append(options, simplecms.WithSchemaCache(schemaCache))

	// Set up media resolver
	if c.Media.Bucket != "" {
		resolver, err := media.NewS3(ctx, media.Config{
			Region:          c.Media.Region,
			Bucket:          c.Media.Bucket,
			Prefix:          c.Media.Prefix,
			Layout:          c.Media.KeyLayout,
			AccessKeyID:     c.Media.AccessKeyID,
			SecretAccessKey: c.Media.SecretAccessKey,
			Endpoint:        c.Media.Endpoint,
			UsePathStyle:    c.Media.UsePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to build media resolver: %w", err)
		}
		options = append(options, simplecms.WithMediaResolver(resolver))
	}

	// Set up access guard
	guard, err := c.buildAccessGuard(log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	options = append(options, simplecms.WithAccessGuard(guard))

	// Set up event sink
	if c.EnableEventLogging {
		options = append(options, simplecms.WithEventSink(simplecms.NewLoggingEventSink(log)))
	}
	if !c.IsProduction() {
		options = append(options, simplecms.WithHooks(simplecms.LoggingHook(log)))
	}

	svc, err := simplecms.New(options...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}

// buildRepository creates a Repository based on the configuration
func (c *ServerConfig) buildRepository(ctx context.Context, log *zap.Logger) (simplecms.Repository, func(), error) {
	switch c.DatabaseType {
	case "memory":
		return memory.New(), func() {}, nil
	case "postgres":
		pool, err := NewPool(ctx, c.DatabaseURL, c.DBSchema)
		if err != nil {
			return nil, nil, err
		}
		if err := PingPostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		if c.AutoMigrate {
			if err := EnsureSchema(ctx, pool, c.DBSchema); err != nil {
				pool.Close()
				return nil, nil, err
			}
			if err := repopg.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, nil, err
			}
			log.Info("database migrations applied", zap.String("schema", c.DBSchema))
		}
		return repopg.NewWithPool(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

func (c *ServerConfig) buildSchemaCache(ctx context.Context) (simplecms.SchemaCache, func(), error) {
	if c.RedisURL == "" {
		return cache.NewMemory(c.SchemaCacheTTL), func() {}, nil
	}
	rc, err := cache.NewRedisFromURL(c.RedisURL, cache.WithTTL(c.SchemaCacheTTL))
	if err != nil {
		return nil, nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		_ = rc.Close()
		return nil, nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rc, func() { _ = rc.Close() }, nil
}

func (c *ServerConfig) buildAccessGuard(log *zap.Logger) (simplecms.AccessGuard, error) {
	policy := access.DefaultPolicy()
	if c.AccessPolicyFile != "" {
		p, err := access.LoadPolicy(c.AccessPolicyFile)
		if err != nil {
			return nil, err
		}
		policy = p
	}
	return access.NewGuard(policy, access.WithLogger(log)), nil
}

// NewPool creates a pgx pool whose sessions use schema as search_path.
func NewPool(ctx context.Context, databaseURL, schema string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, errors.New("database_url is required")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	if schema != "" {
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			_, err := conn.Exec(ctx, "SET search_path TO "+pgx.Identifier{schema}.Sanitize())
			return err
		}
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the Postgres schema if it does not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, schema string) error {
	if schema == "" {
		return nil
	}
	if _, err := pool.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+pgx.Identifier{schema}.Sanitize()); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", schema, err)
	}
	return nil
}

// PingPostgres verifies that pool can reach Postgres within five seconds.
func PingPostgres(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
