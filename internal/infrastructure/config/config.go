// Package config loads process configuration from environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	EnvProduction = "production"

	StoreMongo    = "mongo"
	StorePostgres = "postgres"

	minProductionSecret = 32
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Auth      AuthConfig
	Store     StoreConfig
	Mongo     MongoConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Jobs      JobsConfig
}

type AuthConfig struct {
	JWTSecret    string        `env:"JWT_SECRET, required"`
	TokenTTL     time.Duration `env:"TOKEN_TTL,          default=24h"`
	CookieDomain string        `env:"COOKIE_DOMAIN"`
	BcryptCost   int           `env:"BCRYPT_COST,        default=10"`
	MaxFailures  int           `env:"LOGIN_MAX_FAILURES, default=10"`
	Lockout      time.Duration `env:"LOGIN_LOCKOUT,      default=15m"`
}

type StoreConfig struct {
	Driver string `env:"STORE_DRIVER, default=mongo"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=tenant_admin"`
}

type PostgresConfig struct {
	DSN string `env:"POSTGRES_DSN, default=postgres://localhost:5432/tenant_admin?sslmode=disable"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,      default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,        default=0"`
	PoolSize int           `env:"REDIS_POOL_SIZE, default=10"`
	Timeout  time.Duration `env:"REDIS_TIMEOUT,   default=2s"`
}

type CORSConfig struct {
	Origins   []string `env:"CORS_ORIGINS, default=http://localhost:3000,http://localhost:3001"`
	AppDomain string   `env:"APP_DOMAIN,   default=appname.com"`
}

type RateLimitConfig struct {
	LoginPerSecond float64 `env:"LOGIN_RATE_PER_SECOND, default=5"`
	LoginBurst     int     `env:"LOGIN_RATE_BURST,      default=10"`
}

type JobsConfig struct {
	RoleReconcileSchedule string `env:"ROLE_RECONCILE_SCHEDULE, default=@every 5m"`
}

// IsProduction reports whether production-only behaviour (secure cookies,
// shared cookie domain) applies.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreMongo, StorePostgres:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.IsProduction() && len(c.Auth.JWTSecret) < minProductionSecret {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes in production", minProductionSecret)
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}
