package main

import (
	"fmt"
	"os"

	"github.com/campusCompass/backend/internal/config"
	"github.com/campusCompass/backend/internal/database"
	"github.com/campusCompass/backend/internal/handler"
	"github.com/campusCompass/backend/internal/router"
	"github.com/campusCompass/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; config values can come from the file or environment
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

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(&cfg.Database, log)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}

	// Services
	requestService := service.NewRequestService(db)
	tagService := service.NewTagService(db)

	// Handlers
	requestHandler := handler.NewRequestHandler(requestService)
	tagHandler := handler.NewTagHandler(tagService)

	// Gin engine
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	router.Setup(r, router.Deps{
		RequestHandler: requestHandler,
		TagHandler:     tagHandler,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatal("server run", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.Server.Mode == "release" {
		zapCfg = zap.NewProductionConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Log.Level, err)
	}
	zapCfg.Level = level
	return zapCfg.Build()
}
