package repository

import (
	"context"
	"errors"

	"evote-service/internal/models"
	"evote-service/pkg/response"

	"gorm.io/gorm"
)

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// CastVote records a vote with an atomic check-then-insert. The pre-check
// inside the transaction gives the idempotent AlreadyVoted answer; the
// composite unique index on (voter, election, position) is the backstop that
// makes a concurrent duplicate lose at the storage layer rather than land.
func (r *VoteRepository) CastVote(ctx context.Context, vote *models.Vote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Vote{}).
			Where("voter_id = ? AND election_id = ? AND position_id = ?",
				vote.VoterID, vote.ElectionID, vote.PositionID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return response.ErrAlreadyVoted
		}
		if err := tx.Create(vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return response.ErrAlreadyVoted
			}
			return err
		}
		return nil
	})
}

// GetUserVotes returns a voter's votes in an election, newest first
func (r *VoteRepository) GetUserVotes(ctx context.Context, voterID, electionID uint) ([]models.Vote, error) {
	var votes []models.Vote
	err := r.db.WithContext(ctx).
		Where("voter_id = ? AND election_id = ?", voterID, electionID).
		Order("created_at DESC").
		Find(&votes).Error
	return votes, err
}

// GetElectionVotes returns every vote of an election. Tallies recompute
// from this scan on every view.
func (r *VoteRepository) GetElectionVotes(ctx context.Context, electionID uint) ([]models.Vote, error) {
	var votes []models.Vote
	err := r.db.WithContext(ctx).
		Where("election_id = ?", electionID).
		Find(&votes).Error
	return votes, err
}

// CountByElection counts votes for an election
func (r *VoteRepository) CountByElection(ctx context.Context, electionID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Where("election_id = ?", electionID).
		Count(&count).Error
	return count, err
}
