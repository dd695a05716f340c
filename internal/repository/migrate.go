package repository

import (
	"github.com/fadilmartias/mockmate/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the interview and feedback tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Interview{}, &model.Feedback{})
}
