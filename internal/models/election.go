package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ElectionPending = "pending"
	ElectionOngoing = "ongoing"
	ElectionClosed  = "closed"

	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

type Election struct {
	gorm.Model
	Title          string     `gorm:"column:title;size:255;not null" json:"title"`
	Description    string     `gorm:"column:description;type:text" json:"description"`
	OrganizationID uint       `gorm:"column:organization_id;not null;index" json:"organization_id"`
	Token          string     `gorm:"column:token;size:64;uniqueIndex;not null" json:"token"`
	StartDate      time.Time  `gorm:"column:start_date;not null" json:"start_date"`
	EndDate        time.Time  `gorm:"column:end_date;not null" json:"end_date"`
	CreatedBy      uint       `gorm:"column:created_by;not null" json:"created_by"`
	Approval       string     `gorm:"column:approval;size:32;default:pending" json:"approval"`
	ResultsVisible bool       `gorm:"column:results_visible;default:false" json:"results_visible"`
	TotalVoters    uint       `gorm:"column:total_voters;default:0" json:"total_voters"`
	ApprovedBy     *uint      `gorm:"column:approved_by" json:"approved_by,omitempty"`
	ApprovedAt     *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	RejectedBy     *uint      `gorm:"column:rejected_by" json:"rejected_by,omitempty"`
	RejectedAt     *time.Time `gorm:"column:rejected_at" json:"rejected_at,omitempty"`
	RejectionReason string    `gorm:"column:rejection_reason;size:512" json:"rejection_reason,omitempty"`
}

// TableName specifies the table name for Election
func (Election) TableName() string {
	return "elections"
}

// Status derives the lifecycle phase from the wall clock. Nothing stores it;
// it is recomputed on every read.
func (e *Election) Status(now time.Time) string {
	switch {
	case now.Before(e.StartDate):
		return ElectionPending
	case now.After(e.EndDate):
		return ElectionClosed
	default:
		return ElectionOngoing
	}
}

// Ended reports whether the voting window has passed.
func (e *Election) Ended(now time.Time) bool {
	return now.After(e.EndDate)
}

// CreateElectionRequest defines the input for requesting an election workspace
type CreateElectionRequest struct {
	Title            string    `json:"title" binding:"required"`
	Description      string    `json:"description"`
	OrganizationSlug string    `json:"organization" binding:"required"`
	StartDate        time.Time `json:"start_date" binding:"required"`
	EndDate          time.Time `json:"end_date" binding:"required"`
}

// RejectElectionRequest carries the super-admin's rejection reason
type RejectElectionRequest struct {
	Reason string `json:"reason"`
}
