// @title        Forum API
// @version      1.0
// @description  Accounts, posts and role-based moderation.
// @BasePath     /
// @securityDefinitions.apikey BasicAuth
// @in           header
// @name         Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashkelon/forum/internal/api"
	"github.com/ashkelon/forum/internal/api/handler"
	"github.com/ashkelon/forum/internal/core/service"
	mongodb "github.com/ashkelon/forum/internal/infrastructure/db/mongo"
	redisdb "github.com/ashkelon/forum/internal/infrastructure/db/redis"
	"github.com/ashkelon/forum/internal/infrastructure/queue"
	"github.com/ashkelon/forum/internal/infrastructure/security"
	"github.com/ashkelon/forum/internal/pkg/config"
	"github.com/ashkelon/forum/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "forum",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "forum",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo unavailable")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer rdb.Close()

	accountStore := mongodb.NewAccountRepository(db)
	postStore := mongodb.NewPostRepository(db)
	auditStore := mongodb.NewAuditRepository(db)
	if err := mongodb.EnsureIndexes(ctx, accountStore, postStore, auditStore); err != nil {
		log.Fatal().Err(err).Msg("index setup failed")
	}

	accounts := redisdb.NewAccountCache(accountStore, rdb, cfg.Redis.CacheTTL, logger.Component("account_cache"))

	dispatcher := queue.NewAuditDispatcher(cfg.Audit.Workers, auditStore, logger.Component("audit"))
	dispatcher.Start(ctx)

	jwtCodec := security.NewJWTCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	codec := security.NewSchemeCodec(jwtCodec)
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)

	accountService := service.NewAccountService(accounts, codec, hasher, dispatcher, cfg.Auth.AccountExpiryDays, logger.Component("accounts"))
	forumService := service.NewForumService(postStore, accounts, codec, dispatcher, logger.Component("forum"))
	// credential checks need the hash, which the cache does not hold
	verifier := service.NewCredentialVerifier(accountStore, codec, hasher)

	e := api.NewRouter(api.Deps{
		Accounts:      accountService,
		Forum:         forumService,
		Authenticator: verifier,
		Issuer:        jwtCodec,
		HealthChecks: map[string]handler.HealthCheck{
			"mongo": handler.MongoCheck(db),
			"redis": handler.RedisCheck(rdb),
		},
		Logger: log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
}
