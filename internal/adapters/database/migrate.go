package database

import (
	"fmt"

	"evote-service/internal/models"

	"gorm.io/gorm"
)

// Migrate runs database migrations for all models
func Migrate(db *gorm.DB) error {
	modelsToMigrate := []interface{}{
		&models.User{},
		&models.Organization{},
		&models.Election{},
		&models.Role{},
		&models.Position{},
		&models.Candidate{},
		&models.Vote{},
		&models.VoterToken{},
		&models.AuditLog{},
		&models.Notification{},
	}

	for _, model := range modelsToMigrate {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model: %w", err)
		}
	}

	return nil
}
