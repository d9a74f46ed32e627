package config

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(ctx context.Context, dsn string) error {
	if dsn == "" {
		return errors.New("DATABASE_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(GetIntEnv("DB_MAX_OPEN_CONNS", 10))
	sqlDB.SetMaxIdleConns(GetIntEnv("DB_MAX_IDLE_CONNS", 2))
	sqlDB.SetConnMaxLifetime(GetDurationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return err
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		WithContext(ctx).WithError(err).Warn("Could not ensure uuid-ossp extension")
	}

	DB = db
	WithContext(ctx).Info("Database connection established")
	return nil
}
