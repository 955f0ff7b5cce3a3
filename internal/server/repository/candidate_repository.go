package repository

import (
	"context"
	"errors"

	"evote-service/internal/models"
	"evote-service/pkg/response"

	"gorm.io/gorm"
)

type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// AddCandidate inserts a candidate while holding the position's capacity
// invariant: the count and the insert run in one transaction so concurrent
// adds at the boundary cannot both land.
func (r *CandidateRepository) AddCandidate(ctx context.Context, candidate *models.Candidate, maxCandidates uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Candidate{}).
			Where("position_id = ? AND status <> ?", candidate.PositionID, models.CandidateDeleted).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(maxCandidates) {
			return response.ErrPositionFull
		}
		return tx.Create(candidate).Error
	})
}

// GetByID finds a non-deleted candidate by id
func (r *CandidateRepository) GetByID(ctx context.Context, id uint) (*models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.WithContext(ctx).
		Where("id = ? AND status <> ?", id, models.CandidateDeleted).
		First(&candidate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.ErrCandidateNotFound
	}
	return &candidate, err
}

// ListByElection returns the non-deleted candidates of an election
func (r *CandidateRepository) ListByElection(ctx context.Context, electionID uint) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.WithContext(ctx).
		Where("election_id = ? AND status <> ?", electionID, models.CandidateDeleted).
		Order("created_at ASC").
		Find(&candidates).Error
	return candidates, err
}

// CountActiveByPosition counts non-deleted candidates for a position
func (r *CandidateRepository) CountActiveByPosition(ctx context.Context, positionID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Candidate{}).
		Where("position_id = ? AND status <> ?", positionID, models.CandidateDeleted).
		Count(&count).Error
	return count, err
}

// CountByElection counts non-deleted candidates for an election
func (r *CandidateRepository) CountByElection(ctx context.Context, electionID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Candidate{}).
		Where("election_id = ? AND status <> ?", electionID, models.CandidateDeleted).
		Count(&count).Error
	return count, err
}

// UpdateCandidate applies field updates to a candidate
func (r *CandidateRepository) UpdateCandidate(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Candidate{}).
		Where("id = ? AND status <> ?", id, models.CandidateDeleted).
		Updates(updates).Error
}

// DeleteCandidate soft-deletes a candidate
func (r *CandidateRepository) DeleteCandidate(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Candidate{}).
		Where("id = ? AND status <> ?", id, models.CandidateDeleted).
		Update("status", models.CandidateDeleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return response.ErrCandidateNotFound
	}
	return nil
}
