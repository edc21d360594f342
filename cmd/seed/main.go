package main

import (
	"fmt"
	"os"

	"github.com/campusCompass/backend/internal/config"
	"github.com/campusCompass/backend/internal/database"
	"github.com/campusCompass/backend/internal/service"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Seeds the shared tag vocabulary. Safe to run more than once.
func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(&cfg.Database, log)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}

	if err := service.NewTagService(db).Seed(service.DefaultVocabulary); err != nil {
		log.Fatal("seed tags", zap.Error(err))
	}
	log.Info("seed finished", zap.Int("tags", len(service.DefaultVocabulary)))
}
