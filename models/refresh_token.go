package models

import "time"

// RefreshToken stores a hashed representation of a refresh token for
// rotation and revocation. The raw token is never persisted; JTI is the
// only lookup key. A row may be redeemed at most once: redemption flips
// Revoked regardless of whether the rotation that follows succeeds.
type RefreshToken struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	AccountID uint      `gorm:"index;not null"`
	JTI       string    `gorm:"column:jti;size:64;not null;uniqueIndex"`
	TokenHash string    `gorm:"size:128;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Revoked   bool      `gorm:"default:false"`
}
