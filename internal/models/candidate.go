package models

import (
	"gorm.io/gorm"
)

const (
	CandidateActive   = "active"
	CandidateInactive = "inactive"
	CandidateDeleted  = "deleted"
)

type Candidate struct {
	gorm.Model
	ElectionID  uint   `gorm:"column:election_id;not null;index" json:"election_id"`
	PositionID  uint   `gorm:"column:position_id;not null;index" json:"position_id"`
	Name        string `gorm:"column:name;size:255;not null" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Department  string `gorm:"column:department;size:255" json:"department,omitempty"`
	Platform    string `gorm:"column:platform;type:text" json:"platform,omitempty"`
	ImageURL    string `gorm:"column:image_url;size:512" json:"image_url,omitempty"`
	Status      string `gorm:"column:status;size:32;default:active" json:"status"`
}

// TableName specifies the table name for Candidate
func (Candidate) TableName() string {
	return "candidates"
}

// AddCandidateRequest defines the input for registering a candidate. The
// photo travels as a separate multipart file part.
type AddCandidateRequest struct {
	PositionID  uint   `form:"position_id" binding:"required"`
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
	Department  string `form:"department"`
	Platform    string `form:"platform"`
}

// UpdateCandidateRequest defines the input for updating a candidate
type UpdateCandidateRequest struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Department  string `form:"department"`
	Platform    string `form:"platform"`
	Status      string `form:"status" binding:"omitempty,oneof=active inactive"`
}

// CandidateResponse wraps a candidate with an optional partial-failure
// warning (the record was created but the image upload failed).
type CandidateResponse struct {
	Candidate *Candidate `json:"candidate"`
	Warning   string     `json:"warning,omitempty"`
}
