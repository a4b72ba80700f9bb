package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ranchbook/internal/auth"
	"ranchbook/internal/config"
	"ranchbook/internal/httpserver"
	"ranchbook/internal/logger"
	"ranchbook/internal/storage"
)

func main() {
	_ = godotenv.Load()
	lg := logger.New()
	defer lg.Sync()

	cfg, err := config.FromEnv()
	if err != nil {
		lg.Fatalw("config error", "error", err)
	}

	var store storage.Store
	if cfg.DatabaseURL != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
		if err != nil {
			lg.Fatalw("db connect failed", "error", err)
		}
		pg := storage.NewPostgres(db)
		if err := pg.AutoMigrate(); err != nil {
			lg.Fatalw("automigrate failed", "error", err)
		}
		store = pg
	} else {
		lg.Warnw("DATABASE_URL is empty, using in-memory store; data will not survive a restart")
		store = storage.NewMemory()
	}

	am := auth.NewManager(store, cfg.SessionSecret, cfg.IdentitySecret, cfg.SessionTTL, cfg.DefaultAdminEmails, lg)
	router := httpserver.NewRouter(store, am, lg)

	lg.Infow("listening", "port", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		log.Fatal(err)
	}
}
