package models

import "time"

// StudentProfile is the student-side profile shell (one-to-one with
// Account). LearningGoals and Availability are comma-joined lists.
type StudentProfile struct {
	ID            uint `gorm:"primaryKey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	AccountID     uint   `gorm:"uniqueIndex;not null"`
	FullName      string `gorm:"size:100"`
	Grade         string `gorm:"size:50"`
	SchoolName    string `gorm:"size:200"`
	LearningGoals string `gorm:"size:512"`
	Availability  string `gorm:"size:512"`
	AcademicLevel string `gorm:"size:32;default:intermediate"`
}

// GoalList splits the comma-joined LearningGoals field.
func (s StudentProfile) GoalList() []string {
	return splitList(s.LearningGoals)
}

// AvailabilityList splits the comma-joined Availability field.
func (s StudentProfile) AvailabilityList() []string {
	return splitList(s.Availability)
}
