package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/satriobayu/authsvc/internal/client"
	"github.com/satriobayu/authsvc/internal/config"
	"github.com/satriobayu/authsvc/internal/db"
	"github.com/satriobayu/authsvc/internal/handler"
	"github.com/satriobayu/authsvc/internal/logging"
	"github.com/satriobayu/authsvc/internal/service"
	"go.uber.org/zap"
)

// @title authsvc API
// @version 1.0
// @description User accounts and session authentication.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	gin.SetMode(cfg.Server.GinMode)

	users, revoked, closeStore, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	tokens, err := service.NewTokenService(cfg.Auth)
	if err != nil {
		return err
	}
	hasher, err := service.NewPasswordHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	cookie, err := handler.NewCookieConfig(cfg.Auth)
	if err != nil {
		return err
	}
	avatars, err := openAvatarStore(ctx, cfg.Avatar, logger)
	if err != nil {
		return err
	}

	router, err := handler.NewRouter(handler.RouterDeps{
		Sessions:       service.NewSessionService(users, revoked, tokens, hasher, logger),
		Profiles:       service.NewProfileService(users, hasher, avatars, logger),
		Cookie:         cookie,
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AvatarMaxBytes: cfg.Avatar.MaxBytes,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down http server")
	return srv.Shutdown(shutdownCtx)
}

type userAndRevocationStore interface {
	service.UserStore
	service.RevocationStore
}

func openStores(ctx context.Context, cfg config.Config, logger *zap.Logger) (service.UserStore, service.RevocationStore, func(), error) {
	var store userAndRevocationStore
	closeStore := func() {}

	switch cfg.Server.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		store = db.NewMemory()
	case config.StoreDriverPostgres:
		pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, nil, err
		}
		pg := db.NewPostgres(pool)
		if err := pg.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		store = pg
		closeStore = pool.Close
	default:
		return nil, nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Server.StoreDriver)
	}

	return store, store, closeStore, nil
}

// openAvatarStore returns a nil store when no bucket is configured.
func openAvatarStore(ctx context.Context, cfg config.AvatarConfig, logger *zap.Logger) (service.AvatarStore, error) {
	if cfg.Bucket == "" {
		logger.Warn("AVATAR_S3_BUCKET not set; avatar uploads are disabled")
		return nil, nil
	}
	storage, err := client.NewAvatarStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return storage, nil
}
