package main

import (
	"context"
	"time"

	"github.com/georgemunganga/vendorhub-backend/internal/config"
	"github.com/georgemunganga/vendorhub-backend/internal/database"
	"github.com/georgemunganga/vendorhub-backend/internal/logger"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "vendorhub-migrate")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.Open(cfg.Database.URL, 1, 1)
	if err != nil {
		log.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	applied, err := database.Migrate(ctx, db)
	if err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("migrations applied", zap.Strings("files", applied))
}
