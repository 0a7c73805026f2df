package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/campus-link/api-go/models"
	"github.com/campus-link/api-go/pkg/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// InitDB opens the postgres connection and migrates the schema.
func InitDB(cfg DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.NewGormLogger(log, slowQueryThreshold),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("database ready", zap.String("host", cfg.Host), zap.String("name", cfg.Name))
	return db, nil
}

// Migrate creates or updates every table the API uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Usuario{},
		&models.Favor{},
		&models.Calificacion{},
		&models.Notificacion{},
		&models.Reporte{},
		&models.ActividadFavor{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
