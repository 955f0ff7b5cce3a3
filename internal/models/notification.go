package models

import (
	"gorm.io/gorm"
)

const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

type Notification struct {
	gorm.Model
	UserID     uint   `gorm:"column:user_id;not null;index" json:"user_id"`
	Title      string `gorm:"column:title;size:255;not null" json:"title"`
	Message    string `gorm:"column:message;type:text" json:"message"`
	Type       string `gorm:"column:type;size:32;default:info" json:"type"`
	IsRead     bool   `gorm:"column:is_read;default:false" json:"is_read"`
	ElectionID uint   `gorm:"column:election_id" json:"election_id,omitempty"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
