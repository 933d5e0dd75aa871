package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
)

// RunMigrations brings the schema up to date. GORM auto-migration
// covers both dialects; SQLite is only used by tests.
func RunMigrations(db *gorm.DB) error {
	log.Printf("Running auto-migration (%s)", db.Dialector.Name())
	return db.AutoMigrate(
		&models.Author{},
		&models.Category{},
		&models.Recipe{},
		&models.Nutrition{},
		&models.User{},
		&models.Review{},
		&models.Favourite{},
	)
}
