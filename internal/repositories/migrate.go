package repositories

import (
	"github.com/anonto42/travel-plans/backend/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the repositories read and write
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Plan{},
		&models.Day{},
		&models.Spot{},
		&models.Like{},
		&models.Bookmark{},
	)
}
