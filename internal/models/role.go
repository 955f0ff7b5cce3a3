package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleVoter      = "voter"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superAdmin"

	RoleStatusPending  = "pending"
	RoleStatusApproved = "approved"
	RoleStatusRejected = "rejected"

	// SystemElectionID marks roles that are not bound to a single election
	// (superAdmin).
	SystemElectionID uint = 0
)

// Role binds a user to an election with a permission level and an approval
// state. The composite unique index keeps it to one role per user per
// election.
type Role struct {
	gorm.Model
	UserID         uint       `gorm:"column:user_id;not null;uniqueIndex:idx_roles_user_election" json:"user_id"`
	ElectionID     uint       `gorm:"column:election_id;not null;uniqueIndex:idx_roles_user_election" json:"election_id"`
	OrganizationID uint       `gorm:"column:organization_id;not null;index" json:"organization_id"`
	Role           string     `gorm:"column:role;size:32;not null" json:"role"`
	Status         string     `gorm:"column:status;size:32;default:pending" json:"status"`
	ApprovedBy     *uint      `gorm:"column:approved_by" json:"approved_by,omitempty"`
	ApprovedAt     *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
}

// TableName specifies the table name for Role
func (Role) TableName() string {
	return "roles"
}

// SetRoleApprovalRequest defines the input for approving or rejecting a role
type SetRoleApprovalRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}
