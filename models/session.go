package models

import "time"

// SessionStatus is the booking state machine's tag. PENDING is the only
// state with outgoing transitions; DONE is inferred at read time when an
// accepted session's end has passed.
type SessionStatus string

const (
	SessionPending   SessionStatus = "PENDING"
	SessionAccepted  SessionStatus = "ACCEPTED"
	SessionRejected  SessionStatus = "REJECTED"
	SessionCancelled SessionStatus = "CANCELLED"
	SessionDone      SessionStatus = "DONE"
)

// Session is a tutoring booking. StudentID references the student's
// account; TutorID references the tutor's profile (not the account), the
// same split the tutor confirm path authorizes against. The time window
// is half-open: [StartTime, EndTime).
type Session struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	StudentID   uint          `gorm:"index;not null"`
	TutorID     uint          `gorm:"index;not null"`
	Subject     string        `gorm:"size:100;not null"`
	StartTime   time.Time     `gorm:"not null"`
	EndTime     time.Time     `gorm:"not null"`
	Status      SessionStatus `gorm:"size:16;not null;default:PENDING;index"`
	MeetingLink string        `gorm:"size:512"`
}

// Finished reports whether the session counts as completed for feedback
// and join gating: explicitly DONE, or simply past its end.
func (s Session) Finished(now time.Time) bool {
	return s.Status == SessionDone || !s.EndTime.After(now)
}
