package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the account record. Users are hard-deleted; deleting a user
// soft-deletes all owned files in the same transaction.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string     `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Username     string     `gorm:"not null;size:100" json:"username"`
	PasswordHash string     `gorm:"not null;size:255" json:"-"`
	Role         string     `gorm:"size:20;not null;default:'user'" json:"role"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	IsVerified   bool       `gorm:"not null;default:false" json:"is_verified"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
