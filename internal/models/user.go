package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name      string    `gorm:"column:name;size:255;not null" json:"name"`
	Email     string    `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:password;size:255" json:"-"`
	IsActive  bool      `gorm:"column:is_active;default:true" json:"is_active"`
	Anonymous bool      `gorm:"column:anonymous;default:false" json:"anonymous"`
	LastLogin time.Time `gorm:"column:last_login" json:"last_login"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// RegisterRequest defines the input for user registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the input for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed JWT back to the client
type LoginResponse struct {
	Token string `json:"token"`
}
