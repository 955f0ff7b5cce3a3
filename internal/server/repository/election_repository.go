package repository

import (
	"context"
	"time"

	"evote-service/internal/models"

	"gorm.io/gorm"
)

type ElectionRepository struct {
	db *gorm.DB
}

func NewElectionRepository(db *gorm.DB) *ElectionRepository {
	return &ElectionRepository{db: db}
}

// CreateElection creates a new election in the database
func (r *ElectionRepository) CreateElection(ctx context.Context, election *models.Election) error {
	return r.db.WithContext(ctx).Create(election).Error
}

// GetByID finds an election by id
func (r *ElectionRepository) GetByID(ctx context.Context, id uint) (*models.Election, error) {
	var election models.Election
	err := r.db.WithContext(ctx).First(&election, id).Error
	return &election, err
}

// GetByToken finds an election by its public join code
func (r *ElectionRepository) GetByToken(ctx context.Context, token string) (*models.Election, error) {
	var election models.Election
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&election).Error
	return &election, err
}

// GetApprovedByToken finds an approved election by its public join code
func (r *ElectionRepository) GetApprovedByToken(ctx context.Context, token string) (*models.Election, error) {
	var election models.Election
	err := r.db.WithContext(ctx).
		Where("token = ? AND approval = ?", token, models.ApprovalApproved).
		First(&election).Error
	return &election, err
}

// ListByIDs returns the elections with the given ids, newest first
func (r *ElectionRepository) ListByIDs(ctx context.Context, ids []uint) ([]models.Election, error) {
	var elections []models.Election
	if len(ids) == 0 {
		return elections, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("created_at DESC").Find(&elections).Error
	return elections, err
}

// ListAll returns every election, newest first
func (r *ElectionRepository) ListAll(ctx context.Context) ([]models.Election, error) {
	var elections []models.Election
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&elections).Error
	return elections, err
}

// SetApproval transitions the election's approval state and records who did
// it and when.
func (r *ElectionRepository) SetApproval(ctx context.Context, electionID uint, approval string, actorID uint, reason string, at time.Time) error {
	updates := map[string]interface{}{"approval": approval}
	switch approval {
	case models.ApprovalApproved:
		updates["approved_by"] = actorID
		updates["approved_at"] = at
	case models.ApprovalRejected:
		updates["rejected_by"] = actorID
		updates["rejected_at"] = at
		updates["rejection_reason"] = reason
	}
	return r.db.WithContext(ctx).Model(&models.Election{}).
		Where("id = ?", electionID).
		Updates(updates).Error
}

// SetResultsVisible flips exactly the visibility flag plus the approval
// bookkeeping fields, nothing else.
func (r *ElectionRepository) SetResultsVisible(ctx context.Context, electionID uint, visible bool, actorID uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Election{}).
		Where("id = ?", electionID).
		Updates(map[string]interface{}{
			"results_visible": visible,
			"approved_by":     actorID,
			"approved_at":     at,
		}).Error
}
