package main

import (
	"go.uber.org/zap"

	"github.com/marketry/backend/internal/infrastructure/config"
	"github.com/marketry/backend/internal/infrastructure/logger"
	"github.com/marketry/backend/internal/infrastructure/persistence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	log.Info("running migrations",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName))

	if err := db.Migrate(); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	log.Info("migrations complete")
}
