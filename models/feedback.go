package models

import "time"

// Feedback is a student's rating of a finished session. SessionID carries
// a plain index, not a unique one: nothing deduplicates repeat feedback
// for the same (session, student) pair.
type Feedback struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	SessionID uint   `gorm:"index;not null"`
	StudentID uint   `gorm:"index;not null"`
	TutorID   uint   `gorm:"index;not null"`
	Rating    int    `gorm:"not null"`
	Comment   string `gorm:"size:500"`
}
