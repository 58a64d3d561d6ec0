package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rdboard/rd-tracker-backend/config"
	"github.com/rdboard/rd-tracker-backend/internal/auth"
	"github.com/rdboard/rd-tracker-backend/internal/bootstrap"
	"github.com/rdboard/rd-tracker-backend/internal/logger"
	"github.com/rdboard/rd-tracker-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zl.Sync()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := bootstrap.OpenDB(ctx, cfg.Database, bootstrap.DBOptions{MaxConns: 4, MinConns: 1})
	if err != nil {
		zl.Fatal("database unavailable", zap.Error(err))
	}
	defer pool.Close()

	if err := postgres.ApplySchema(ctx, pool); err != nil {
		zl.Fatal("schema bootstrap failed", zap.Error(err))
	}

	sqlDB, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		zl.Fatal("database unavailable", zap.Error(err))
	}
	defer sqlDB.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		// cache and event stream are optional
		zl.Warn("redis unavailable, continuing without it", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}

	deps := bootstrap.RouterDeps{
		Config: cfg,
		Log:    zl,
		Pool:   pool,
		SQL:    sqlDB,
		Redis:  rdb,
	}
	if cfg.Firebase.CredentialsPath != "" {
		client, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			zl.Fatal("firebase init failed", zap.Error(err))
		}
		deps.Verifier = client
	} else if cfg.App.IsProduction() {
		zl.Fatal("FIREBASE_CREDENTIALS_PATH is required in production")
	} else {
		zl.Warn("firebase not configured, using X-User-Id header auth")
	}

	// cancelled on shutdown so open event streams return
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           bootstrap.BuildRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelBase)

	go func() {
		zl.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Environment),
			zap.String("version", cfg.App.Version),
			zap.Bool("redis", rdb != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
