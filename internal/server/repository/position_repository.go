package repository

import (
	"context"
	"errors"

	"evote-service/internal/models"
	"evote-service/pkg/response"

	"gorm.io/gorm"
)

type PositionRepository struct {
	db *gorm.DB
}

func NewPositionRepository(db *gorm.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// AddPosition creates a new position
func (r *PositionRepository) AddPosition(ctx context.Context, position *models.Position) error {
	return r.db.WithContext(ctx).Create(position).Error
}

// GetByID finds a non-deleted position by id
func (r *PositionRepository) GetByID(ctx context.Context, id uint) (*models.Position, error) {
	var position models.Position
	err := r.db.WithContext(ctx).
		Where("id = ? AND status <> ?", id, models.PositionDeleted).
		First(&position).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.ErrPositionNotFound
	}
	return &position, err
}

// ListByElection returns the non-deleted positions of an election, oldest
// first (ballot order).
func (r *PositionRepository) ListByElection(ctx context.Context, electionID uint) ([]models.Position, error) {
	var positions []models.Position
	err := r.db.WithContext(ctx).
		Where("election_id = ? AND status <> ?", electionID, models.PositionDeleted).
		Order("created_at ASC").
		Find(&positions).Error
	return positions, err
}

// CountByElection counts the non-deleted positions of an election
func (r *PositionRepository) CountByElection(ctx context.Context, electionID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Position{}).
		Where("election_id = ? AND status <> ?", electionID, models.PositionDeleted).
		Count(&count).Error
	return count, err
}

// UpdatePosition applies field updates to a position
func (r *PositionRepository) UpdatePosition(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Position{}).
		Where("id = ? AND status <> ?", id, models.PositionDeleted).
		Updates(updates).Error
}

// DeletePosition soft-deletes a position unless a non-deleted candidate
// still references it. The check and the flip run in one transaction.
func (r *PositionRepository) DeletePosition(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var position models.Position
		if err := tx.Where("id = ? AND status <> ?", id, models.PositionDeleted).First(&position).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.ErrPositionNotFound
			}
			return err
		}

		var candidates int64
		if err := tx.Model(&models.Candidate{}).
			Where("position_id = ? AND status <> ?", id, models.CandidateDeleted).
			Count(&candidates).Error; err != nil {
			return err
		}
		if candidates > 0 {
			return response.ErrHasCandidates
		}

		return tx.Model(&models.Position{}).
			Where("id = ?", id).
			Update("status", models.PositionDeleted).Error
	})
}
