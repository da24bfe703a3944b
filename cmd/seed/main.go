// Command seed loads the demo tenant, users and roles into the configured
// store. Running it twice leaves the store unchanged.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/tenantry/admin-api/internal/core/service"
	"github.com/tenantry/admin-api/internal/infrastructure/config"
	"github.com/tenantry/admin-api/internal/infrastructure/db"
	"github.com/tenantry/admin-api/internal/seed"
	"github.com/tenantry/admin-api/pkg/logger"
)

func main() {
	fixturesPath := flag.String("fixtures", "", "path to a fixtures YAML file (defaults to the embedded demo data)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline for the seed run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:       cfg.LogLevel,
		Pretty:      cfg.LogPretty,
		Service:     "tenant-admin-seed",
		Environment: cfg.Env,
	})

	fx, err := loadFixtures(*fixturesPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *fixturesPath).Msg("failed to load fixtures")
	}

	store, err := db.Open(ctx, cfg, logger.Component("store"))
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open store")
	}

	report, err := run(ctx, cfg, store, fx)
	if cerr := store.Close(context.Background()); cerr != nil {
		log.Error().Err(cerr).Msg("store close error")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	log.Info().
		Str("tenant_id", report.TenantID).
		Int("users", report.Users).
		Int("roles_created", report.RolesCreated).
		Int("roles_kept", report.RolesKept).
		Msg("seed complete")
}

func run(ctx context.Context, cfg *config.Config, store *db.Store, fx *seed.Fixtures) (*seed.Report, error) {
	seeder := seed.NewSeeder(
		store.Tenants,
		store.Users,
		service.NewRoleService(store.Roles, store.Users, logger.Component("roles")),
		service.NewCredentials(cfg.Auth.BcryptCost),
		logger.Component("seed"),
	)

	return seeder.Run(ctx, fx)
}

func loadFixtures(path string) (*seed.Fixtures, error) {
	if path == "" {
		return seed.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return seed.Parse(data)
}
