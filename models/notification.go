package models

import "time"

// NotificationType classifies a notification for the client UI.
type NotificationType string

const (
	NotifyInfo    NotificationType = "INFO"
	NotifySuccess NotificationType = "SUCCESS"
	NotifyWarning NotificationType = "WARNING"
	NotifyError   NotificationType = "ERROR"
)

// Notification is a persisted in-app message for an account. Writes are
// best-effort side effects of booking state changes and never fail the
// request that produced them.
type Notification struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	AccountID   uint             `gorm:"index;not null"`
	Title       string           `gorm:"size:255;not null"`
	Message     string           `gorm:"size:1024;not null"`
	Type        NotificationType `gorm:"size:16;default:INFO"`
	IsRead      bool             `gorm:"default:false"`
	RelatedLink string           `gorm:"size:512"`
}
