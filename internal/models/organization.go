package models

import (
	"gorm.io/gorm"
)

const (
	OrganizationActive    = "active"
	OrganizationSuspended = "suspended"
)

// Organization is created on first use when someone requests an election
// workspace under a slug nobody has claimed yet.
type Organization struct {
	gorm.Model
	Slug      string `gorm:"column:slug;size:255;uniqueIndex;not null" json:"slug"`
	Name      string `gorm:"column:name;size:255;not null" json:"name"`
	CreatedBy uint   `gorm:"column:created_by;not null" json:"created_by"`
	Status    string `gorm:"column:status;size:32;default:active" json:"status"`
}

// TableName specifies the table name for Organization
func (Organization) TableName() string {
	return "organizations"
}
