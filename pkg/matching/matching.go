// Package matching scores tutors against a student's learning profile.
// It is pure: the weights travel in an explicit config value and scoring
// touches no storage or process-wide state.
package matching

import (
	"math"
	"sort"
	"strings"
)

// Weights distributes the component scores. They should sum to 1; Score
// clamps the result to [0,1] either way.
type Weights struct {
	Subject    float64
	Schedule   float64
	Rating     float64
	Experience float64
}

// DefaultWeights returns the production weighting.
func DefaultWeights() Weights {
	return Weights{Subject: 0.4, Schedule: 0.3, Rating: 0.2, Experience: 0.1}
}

// Student is the matching view of a student profile.
type Student struct {
	Goals        []string
	Availability []string
	Level        string // beginner, intermediate, advanced
}

// Tutor is the matching view of a tutor profile.
type Tutor struct {
	ID              uint
	Subjects        []string
	Availability    []string
	RatingAvg       float64
	TotalRatings    int
	ExperienceYears int
}

// Match pairs a tutor with its score for ranking output.
type Match struct {
	Tutor      Tutor
	Score      float64
	Percentage int
}

// Score combines subject overlap, schedule overlap, rating confidence and
// experience fit into a single 0..1 value.
func Score(w Weights, s Student, t Tutor) float64 {
	total := subjectMatch(s.Goals, t.Subjects)*w.Subject +
		scheduleMatch(s.Availability, t.Availability)*w.Schedule +
		ratingScore(t.RatingAvg, t.TotalRatings)*w.Rating +
		experienceMatch(s.Level, t.ExperienceYears)*w.Experience
	return math.Min(total, 1.0)
}

// Rank scores every tutor and returns them best-first.
func Rank(w Weights, s Student, tutors []Tutor) []Match {
	matches := make([]Match, 0, len(tutors))
	for _, t := range tutors {
		score := Score(w, s, t)
		matches = append(matches, Match{Tutor: t, Score: score, Percentage: int(math.Round(score * 100))})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	return matches
}

func subjectMatch(goals, specialties []string) float64 {
	if len(goals) == 0 || len(specialties) == 0 {
		return 0
	}
	matched := 0
	for _, goal := range goals {
		g := strings.ToLower(goal)
		for _, specialty := range specialties {
			sp := strings.ToLower(specialty)
			if strings.Contains(sp, g) || strings.Contains(g, sp) {
				matched++
				break
			}
		}
	}
	return float64(matched) / math.Max(float64(len(goals)), 1)
}

func scheduleMatch(studentSlots, tutorSlots []string) float64 {
	// coarse slot-count overlap; real time-slot intersection is a later refinement
	if len(studentSlots) == 0 || len(tutorSlots) == 0 {
		return 0.5
	}
	minSlots := math.Min(float64(len(studentSlots)), float64(len(tutorSlots)))
	return minSlots / math.Max(float64(len(studentSlots)), 1)
}

func ratingScore(rating float64, totalRatings int) float64 {
	if rating == 0 || totalRatings == 0 {
		return 0.5 // default for new tutors
	}
	base := rating / 5
	confidence := math.Min(float64(totalRatings)/10, 1)
	return base*0.7 + confidence*0.3
}

func experienceMatch(level string, experienceYears int) float64 {
	weights := map[string]int{"beginner": 1, "intermediate": 2, "advanced": 3}
	levelWeight, ok := weights[level]
	if !ok {
		levelWeight = 1
	}
	ideal := levelWeight * 2
	if experienceYears == 0 {
		return 0.5
	}
	diff := math.Abs(float64(experienceYears - ideal))
	return math.Max(0, 1-diff/10)
}
