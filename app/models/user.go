package models

import "gorm.io/gorm"

// User is the primary user model.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Role     string `gorm:"size:50;default:user" json:"role"`
	Avatar   string `gorm:"size:512" json:"avatar,omitempty"`
}

// Roles a user can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
