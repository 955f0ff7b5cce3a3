package models

import (
	"gorm.io/gorm"
)

const (
	PositionActive  = "active"
	PositionDeleted = "deleted"
)

// Position is an electable seat within an election. Deletion is a status
// flip; repository queries exclude deleted rows.
type Position struct {
	gorm.Model
	ElectionID    uint   `gorm:"column:election_id;not null;index" json:"election_id"`
	Title         string `gorm:"column:title;size:255;not null" json:"title"`
	Description   string `gorm:"column:description;type:text" json:"description"`
	MaxCandidates uint   `gorm:"column:max_candidates;not null" json:"max_candidates"`
	Status        string `gorm:"column:status;size:32;default:active" json:"status"`
}

// TableName specifies the table name for Position
func (Position) TableName() string {
	return "positions"
}

// AddPositionRequest defines the input for creating a position
type AddPositionRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	MaxCandidates uint   `json:"max_candidates" binding:"required,min=1"`
}

// UpdatePositionRequest defines the input for updating a position
type UpdatePositionRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	MaxCandidates uint   `json:"max_candidates"`
}
