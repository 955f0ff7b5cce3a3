package models

import (
	"time"

	"gorm.io/gorm"
)

// VoterToken is a single-use secret redeemed for anonymous voting access to
// one election. IsUsed flips false to true exactly once and never back.
type VoterToken struct {
	gorm.Model
	Token          string     `gorm:"column:token;size:16;not null;uniqueIndex:idx_voter_tokens_election_token" json:"token"`
	ElectionID     uint       `gorm:"column:election_id;not null;uniqueIndex:idx_voter_tokens_election_token" json:"election_id"`
	OrganizationID uint       `gorm:"column:organization_id;not null" json:"organization_id"`
	ExpiresAt      time.Time  `gorm:"column:expires_at;not null" json:"expires_at"`
	IsUsed         bool       `gorm:"column:is_used;default:false" json:"is_used"`
	UsedBy         *uint      `gorm:"column:used_by" json:"used_by,omitempty"`
	UsedAt         *time.Time `gorm:"column:used_at" json:"used_at,omitempty"`
}

// TableName specifies the table name for VoterToken
func (VoterToken) TableName() string {
	return "voter_tokens"
}

// IssueTokensRequest defines the input for batch token issuance
type IssueTokensRequest struct {
	Count     int        `json:"count" binding:"required,min=1,max=1000"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// RedeemTokenRequest defines the input for anonymous voter sign-in
type RedeemTokenRequest struct {
	Token         string `json:"token" binding:"required"`
	ElectionToken string `json:"election_token" binding:"required"`
}

// RedeemTokenResponse carries the anonymous session back to the client
type RedeemTokenResponse struct {
	Token         string `json:"token"`
	ElectionID    uint   `json:"election_id"`
	ElectionToken string `json:"election_token"`
}
