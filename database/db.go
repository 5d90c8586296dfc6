package database

import (
	"fmt"

	"storefront-bff/config"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the database described by the config. When POSTGRES_HOST is
// unset it falls back to a local SQLite file so the service can run without
// a Postgres instance during development.
func Connect(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	if cfg.PostgresHost == "" {
		logger.Info("POSTGRES_HOST not set, using SQLite", zap.String("path", cfg.SQLitePath))
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, nil
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.PostgresHost, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB,
		cfg.PostgresPort, cfg.PostgresSSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	logger.Info("Connected to PostgreSQL",
		zap.String("host", cfg.PostgresHost),
		zap.String("database", cfg.PostgresDB),
	)
	return db, nil
}
