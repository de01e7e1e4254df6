package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	// UserStatusLocked means the account cannot log in.
	UserStatusLocked = "locked"
	// UserStatusActive means the account can log in.
	UserStatusActive = "active"
)

// User is a staff account.
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Username  string         `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Password  string         `json:"-" gorm:"size:255;not null"`
	Email     string         `json:"email" gorm:"size:100"`
	IsAdmin   bool           `json:"isAdmin" gorm:"default:false;index"` // admin bypasses the staff-only restrictions
	Status    string         `json:"status" gorm:"size:20;default:locked;index"` // locked/active
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
