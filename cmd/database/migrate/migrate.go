package migration

import (
	"turmeric-trace/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

// Migrate creates the tables for state the content backend does not hold.
func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.Session{}); err != nil {
		log.Errorf("Error migrating session database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.UserPreference{}); err != nil {
		log.Errorf("Error migrating user preference database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.DismissedNotification{}); err != nil {
		log.Errorf("Error migrating dismissed notification database: %v", err)
		return err
	}

	log.Info("Database migration complete")
	return nil
}
