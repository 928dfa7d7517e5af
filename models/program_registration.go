package models

import "time"

// ProgramRegistration records a student's interest in a tutoring program.
type ProgramRegistration struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	StudentID   uint   `gorm:"index;not null"`
	ProgramName string `gorm:"size:200;not null"`
	Notes       string `gorm:"size:500"`
}
