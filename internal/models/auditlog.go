package models

import (
	"gorm.io/gorm"
)

// Audit actions recorded by the core.
const (
	ActionVoteCast          = "VOTE_CAST"
	ActionJoinElection      = "JOIN_ELECTION"
	ActionRequestWorkspace  = "REQUEST_WORKSPACE"
	ActionApproveElection   = "APPROVE_ELECTION"
	ActionRejectElection    = "REJECT_ELECTION"
	ActionApproveResults    = "APPROVE_RESULTS"
	ActionDisapproveResults = "DISAPPROVE_RESULTS"
	ActionApproveRole       = "APPROVE_ROLE"
	ActionRejectRole        = "REJECT_ROLE"
	ActionIssueTokens       = "ISSUE_VOTER_TOKENS"
	ActionRedeemToken       = "REDEEM_VOTER_TOKEN"
)

type AuditLog struct {
	gorm.Model
	UserID         uint   `gorm:"column:user_id;not null;index" json:"user_id"`
	Action         string `gorm:"column:action;size:64;not null" json:"action"`
	ElectionID     uint   `gorm:"column:election_id;index" json:"election_id,omitempty"`
	OrganizationID uint   `gorm:"column:organization_id" json:"organization_id,omitempty"`
	Details        string `gorm:"column:details;type:text" json:"details,omitempty"`
	IPAddress      string `gorm:"column:ip_address;size:64" json:"ip_address,omitempty"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}
