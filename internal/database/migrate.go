package database

import (
	"gymhub/internal/models"
	"gymhub/pkg/logger"
)

// Migrate 执行核心库迁移
func Migrate() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting core database migration...")

	err := DB.AutoMigrate(
		&models.User{},
		&models.Gym{},
		&models.GymAdmin{},
	)

	if err != nil {
		appLogger.Errorf("Core database migration failed: %v", err)
		return err
	}

	appLogger.Info("Core database migration completed successfully")
	return nil
}
