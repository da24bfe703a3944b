package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "dev-secret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.IsProduction() {
		t.Fatalf("unexpected base config: %+v", cfg)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h ttl, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Fatalf("expected bcrypt cost 10, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Store.Driver != StoreMongo {
		t.Fatalf("expected mongo store, got %q", cfg.Store.Driver)
	}
	if len(cfg.CORS.Origins) != 2 || cfg.CORS.Origins[1] != "http://localhost:3001" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORS.Origins)
	}
	if cfg.Jobs.RoleReconcileSchedule != "@every 5m" {
		t.Fatalf("unexpected schedule %q", cfg.Jobs.RoleReconcileSchedule)
	}
	if cfg.Redis.PoolSize != 10 || cfg.Redis.Timeout != 2*time.Second {
		t.Fatalf("unexpected redis pool settings: %+v", cfg.Redis)
	}
}

func TestLoad_RequiresSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err == nil {
		t.Fatalf("expected error when JWT_SECRET is missing")
	}
}

func TestLoad_ProductionRejectsShortSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":        "production",
		"JWT_SECRET": "short",
	}))
	if err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected secret length error, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":           "production",
		"JWT_SECRET":    strings.Repeat("s", 32),
		"TOKEN_TTL":     "2h",
		"COOKIE_DOMAIN": ".appname.com",
		"STORE_DRIVER":  "postgres",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.IsProduction() || cfg.Auth.TokenTTL != 2*time.Hour || cfg.Auth.CookieDomain != ".appname.com" {
		t.Fatalf("overrides not applied: %+v", cfg.Auth)
	}
	if cfg.Store.Driver != StorePostgres {
		t.Fatalf("expected postgres store, got %q", cfg.Store.Driver)
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "dev-secret",
		"STORE_DRIVER": "sqlite",
	}))
	if err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
