package models

import (
	"strings"
	"time"
)

// TutorProfile is the tutor-side profile shell created on signup
// (one-to-one with Account) and filled in later. Subjects and
// Availability are comma-joined lists.
type TutorProfile struct {
	ID              uint `gorm:"primaryKey"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	AccountID       uint    `gorm:"uniqueIndex;not null"`
	FullName        string  `gorm:"size:100"`
	Subjects        string  `gorm:"size:512"`
	ExperienceYears int     `gorm:"default:0"`
	Bio             string  `gorm:"size:500"`
	HourlyRate      float64 `gorm:"default:0"`
	Availability    string  `gorm:"size:512"`
	RatingAvg       float64 `gorm:"default:0"`
	TotalRatings    int     `gorm:"default:0"`
}

// SubjectList splits the comma-joined Subjects field.
func (t TutorProfile) SubjectList() []string {
	return splitList(t.Subjects)
}

// AvailabilityList splits the comma-joined Availability field.
func (t TutorProfile) AvailabilityList() []string {
	return splitList(t.Availability)
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
