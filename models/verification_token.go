package models

import "time"

// VerificationToken is a single-use email verification secret. Rows are
// deleted on consumption; a resend purges all rows for the account before
// creating a new one, so at most one token is outstanding per account.
type VerificationToken struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	AccountID uint      `gorm:"index;not null"`
	Token     string    `gorm:"size:64;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"index;not null"`
}
