package database

import (
	"fmt"

	"github.com/campusCompass/backend/internal/config"
	"github.com/campusCompass/backend/internal/model"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the configured store, registers the explicit join table
// and migrates the schema. The returned handle is safe for concurrent use.
func Open(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN())
	case "sqlite", "":
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: NewGormLogger(log)})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.SetupJoinTable(&model.PeerRequest{}, "Tags", &model.TagOnRequest{}); err != nil {
		return nil, fmt.Errorf("setup join table: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Tag{},
		&model.PeerRequest{},
		&model.TagOnRequest{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return db, nil
}
