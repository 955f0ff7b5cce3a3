package models

import (
	"gorm.io/gorm"
)

// Vote is an immutable fact: one row per (voter, election, position), ever.
// The composite unique index is what makes concurrent duplicate casts lose.
type Vote struct {
	gorm.Model
	VoterID        uint `gorm:"column:voter_id;not null;uniqueIndex:idx_votes_voter_election_position" json:"voter_id"`
	ElectionID     uint `gorm:"column:election_id;not null;uniqueIndex:idx_votes_voter_election_position" json:"election_id"`
	PositionID     uint `gorm:"column:position_id;not null;uniqueIndex:idx_votes_voter_election_position" json:"position_id"`
	CandidateID    uint `gorm:"column:candidate_id;not null;index" json:"candidate_id"`
	OrganizationID uint `gorm:"column:organization_id;not null" json:"organization_id"`
}

// TableName specifies the table name for Vote
func (Vote) TableName() string {
	return "votes"
}

// CastVoteRequest defines the input for casting a vote
type CastVoteRequest struct {
	PositionID  uint `json:"position_id" binding:"required"`
	CandidateID uint `json:"candidate_id" binding:"required"`
}
