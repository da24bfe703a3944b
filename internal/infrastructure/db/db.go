// Package db selects and opens the configured store.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tenantry/admin-api/internal/core/ports"
	"github.com/tenantry/admin-api/internal/infrastructure/config"
	"github.com/tenantry/admin-api/internal/infrastructure/db/mongo"
	"github.com/tenantry/admin-api/internal/infrastructure/db/postgres"
)

// Store bundles the repositories of one backend.
type Store struct {
	Driver  string
	Users   ports.UserRepository
	Tenants ports.TenantRepository
	Roles   ports.RoleRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func (s *Store) Ping(ctx context.Context) error  { return s.ping(ctx) }
func (s *Store) Close(ctx context.Context) error { return s.close(ctx) }

// Open connects to the backend named by cfg.Store.Driver and prepares its
// schema: unique indexes on MongoDB, tables on PostgreSQL.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case config.StoreMongo:
		return openMongo(ctx, cfg.Mongo, log)
	case config.StorePostgres:
		return openPostgres(ctx, cfg.Postgres, log)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func openMongo(ctx context.Context, cfg config.MongoConfig, log zerolog.Logger) (*Store, error) {
	client, database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.URI, Database: cfg.Database})
	if err != nil {
		return nil, err
	}

	users := mongo.NewUserRepository(database)
	tenants := mongo.NewTenantRepository(database)
	roles := mongo.NewRoleRepository(database)
	if err := mongo.EnsureIndexes(ctx, users, tenants, roles); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo indexes: %w", err)
	}

	log.Info().Str("database", cfg.Database).Msg("mongodb store ready")
	return &Store{
		Driver:  config.StoreMongo,
		Users:   users,
		Tenants: tenants,
		Roles:   roles,
		ping:    func(ctx context.Context) error { return client.Ping(ctx, nil) },
		close:   client.Disconnect,
	}, nil
}

func openPostgres(ctx context.Context, cfg config.PostgresConfig, log zerolog.Logger) (*Store, error) {
	pg, err := postgres.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := pg.Ping(ctx); err != nil {
		_ = pg.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if err := pg.Migrate(ctx); err != nil {
		_ = pg.Close()
		return nil, err
	}

	log.Info().Msg("postgres store ready")
	return &Store{
		Driver:  config.StorePostgres,
		Users:   pg.Users(),
		Tenants: pg.Tenants(),
		Roles:   pg.Roles(),
		ping:    pg.Ping,
		close:   func(context.Context) error { return pg.Close() },
	}, nil
}
