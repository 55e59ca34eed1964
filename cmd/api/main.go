// @title        EIE Admin API
// @version      1.0
// @description  Administrative backend of the language school.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eie-idiomas/admin-api/internal/api"
	"github.com/eie-idiomas/admin-api/internal/api/handler"
	"github.com/eie-idiomas/admin-api/internal/core/ports"
	"github.com/eie-idiomas/admin-api/internal/core/service"
	"github.com/eie-idiomas/admin-api/internal/infrastructure/db/mongo"
	"github.com/eie-idiomas/admin-api/internal/infrastructure/db/redis"
	"github.com/eie-idiomas/admin-api/internal/pkg/config"
	"github.com/eie-idiomas/admin-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "admin-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	checks := map[string]handler.DependencyCheck{"mongodb": handler.MongoCheck(db)}

	var cache ports.RoleCache
	if cfg.CacheEnabled() {
		var rdb *goredis.Client
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		cache = redis.NewRoleCache(rdb, cfg.Auth.RoleCacheTTL)
		checks["redis"] = handler.RedisCheck(rdb)
	}

	users := mongo.NewUserRepository(db)
	roles := mongo.NewRoleRepository(db)
	modules := mongo.NewModuleRepository(db)
	tokens := service.NewTokenSigner(cfg.Auth.AppKey, cfg.Auth.TokenTTL, time.Now)

	e := api.NewRouter(api.Services{
		Authenticator: service.NewTokenAuthenticator(tokens, users, log),
		Gate:          service.NewPermissionGate(roles, cache, log),
		Auth:          service.NewAuthService(users, roles, cache, tokens, log),
		Roles:         service.NewRoleService(roles, modules, cache, log),
		Modules:       service.NewModuleService(modules, roles, cache, log),
		Users:         service.NewUserService(users, roles, cache, log),
		Checks:        checks,
	}, api.Options{Logger: log})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Bool("role_cache", cache != nil).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
