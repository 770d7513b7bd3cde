package model

import "time"

// Roles assignable to a credential. Registration always produces RoleUser;
// RoleAdmin only exists through seeding.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User represents a stored credential in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;default:'USER'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
