package repository

import (
	"context"

	"evote-service/internal/models"

	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Append writes one audit entry
func (r *AuditRepository) Append(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListByElection returns the audit trail of an election, newest first
func (r *AuditRepository) ListByElection(ctx context.Context, electionID uint) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := r.db.WithContext(ctx).
		Where("election_id = ?", electionID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
