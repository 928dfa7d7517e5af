package models

import "time"

// Role distinguishes the two kinds of marketplace users.
type Role string

const (
	RoleTutor   Role = "TUTOR"
	RoleStudent Role = "STUDENT"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleTutor, RoleStudent:
		return true
	}
	return false
}

// Account is the identity record behind every login. The email is stored
// lowercased and trimmed; IsVerified flips exactly once when the
// verification token is consumed.
type Account struct {
	ID           uint `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash []byte `gorm:"not null"`
	Role         Role   `gorm:"size:16;not null"`
	IsActive     bool   `gorm:"default:true;not null"`
	IsVerified   bool   `gorm:"default:false;not null"`
}
