package migration

import (
	"fmt"

	"Food-Tracker/entities"
	"Food-Tracker/internal/utils/logger"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB, log *logger.Logger) error {
	if err := db.AutoMigrate(&entities.FoodItem{}); err != nil {
		return fmt.Errorf("migrating food item table: %w", err)
	}
	if err := db.AutoMigrate(&entities.VoiceSession{}); err != nil {
		return fmt.Errorf("migrating voice session table: %w", err)
	}

	log.Info("database migration complete")
	return nil
}
