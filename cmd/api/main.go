// @title           Tenant Admin API
// @version         1.0
// @description     Authentication, role management and tenant directory for the admin and customer surfaces.
// @BasePath        /
// @securityDefinitions.apikey CookieAuth
// @in              cookie
// @name            session-token
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	_ "github.com/tenantry/admin-api/docs"
	"github.com/tenantry/admin-api/internal/api"
	"github.com/tenantry/admin-api/internal/api/cookie"
	"github.com/tenantry/admin-api/internal/api/handler"
	"github.com/tenantry/admin-api/internal/api/middleware"
	"github.com/tenantry/admin-api/internal/core/service"
	"github.com/tenantry/admin-api/internal/infrastructure/config"
	"github.com/tenantry/admin-api/internal/infrastructure/db"
	"github.com/tenantry/admin-api/internal/infrastructure/db/redis"
	"github.com/tenantry/admin-api/internal/infrastructure/jobs"
	"github.com/tenantry/admin-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:       cfg.LogLevel,
		Pretty:      cfg.LogPretty,
		Service:     "tenant-admin-api",
		Environment: cfg.Env,
	})

	store, err := db.Open(ctx, cfg, logger.Component("store"))
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open store")
	}

	redisClient, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
		Timeout:  cfg.Redis.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect redis")
	}

	codec, err := service.NewJWTCodec(cfg.Auth.JWTSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init token codec")
	}

	authService := service.NewAuthService(
		store.Users,
		service.NewCredentials(cfg.Auth.BcryptCost),
		codec,
		service.AuthOptions{
			TokenTTL: cfg.Auth.TokenTTL,
			Throttle: redis.NewLoginLockout(redisClient, cfg.Auth.MaxFailures, cfg.Auth.Lockout),
		},
		logger.Component("auth"),
	)
	roleService := service.NewRoleService(store.Roles, store.Users, logger.Component("roles"))
	directoryService := service.NewDirectoryService(store.Users, store.Tenants)

	router := api.NewRouter(api.Deps{
		Auth:      authService,
		Roles:     roleService,
		Directory: directoryService,
		Cookies: cookie.Policy{
			Production: cfg.IsProduction(),
			Domain:     cfg.Auth.CookieDomain,
			MaxAge:     cfg.Auth.TokenTTL,
		},
		Origins:            middleware.NewOriginMatcher(cfg.CORS.Origins, cfg.CORS.AppDomain),
		LoginRatePerSecond: cfg.RateLimit.LoginPerSecond,
		LoginRateBurst:     cfg.RateLimit.LoginBurst,
		Readiness: map[string]handler.PingFunc{
			store.Driver: store.Ping,
			"redis":      redis.Ping(redisClient),
		},
		Log: logger.Component("http"),
	})

	scheduler := jobs.NewScheduler(roleService, cfg.Jobs.RoleReconcileSchedule, logger.Component("jobs"))
	if err := scheduler.Start(); err != nil {
		log.Error().Err(err).Msg("scheduler start failed")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", store.Driver).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(log, srv, scheduler, store, redisClient)
}

func waitForShutdown(log zerolog.Logger, srv *http.Server, scheduler *jobs.Scheduler, store *db.Store, redisClient *goredis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		_ = srv.Close()
	}

	select {
	case <-scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn().Msg("role reconcile still running at shutdown")
	}

	if err := store.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("store close error")
	}
	if err := redisClient.Close(); err != nil {
		log.Error().Err(err).Msg("redis close error")
	}

	log.Info().Msg("server exited cleanly")
}
