package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/georgemunganga/vendorhub-backend/internal/config"
	"github.com/georgemunganga/vendorhub-backend/internal/database"
	"github.com/georgemunganga/vendorhub-backend/internal/lock"
	"github.com/georgemunganga/vendorhub-backend/internal/logger"
	"github.com/georgemunganga/vendorhub-backend/internal/server"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "vendorhub-api")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.Open(cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MaxIdle)
	if err != nil {
		log.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close()
	log.Info("connected to database")

	// ── Ledger locks ────────────────────────────────────────
	locker := lock.Noop()
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("redis unavailable", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		locker = lock.NewRedis(rdb, cfg.Ledger.LockTTL, log)
		log.Info("ledger locks backed by redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		log.Warn("REDIS_ADDR not set, ledger writes rely on row locks only")
	}

	router := server.NewRouter(server.Deps{
		DB:        db,
		Locker:    locker,
		Log:       log,
		JWTSecret: cfg.JWT.Secret,
		JWTTTL:    cfg.JWT.TTL,
	})
	srv := server.New(":"+cfg.HTTP.Port, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
