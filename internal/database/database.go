package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/familyshare/family-share-backend/internal/config"
	"github.com/familyshare/family-share-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs AutoMigrate for all models plus the partial unique index
// that keeps two concurrent payments for the same member and month from
// both landing. The index is the concurrency guarantee; the service
// layer's month check only produces the friendlier error.
func Migrate() error {
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Family{},
		&models.FamilyMember{},
		&models.Invite{},
		&models.Payment{},
		&models.SystemLog{},
	); err != nil {
		return err
	}

	return DB.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_payments_member_month
		 ON payments (member_id, date_trunc('month', created_at))
		 WHERE status <> 'reversed'`,
	).Error
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
