package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoinguyen248/projectSW-251-BE/models"
)

// GET /api/tutors
func listTutorsHandler(c *gin.Context) {
	var tutors []models.TutorProfile
	if err := db.Order("rating_avg desc").Limit(200).Find(&tutors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	out := make([]gin.H, 0, len(tutors))
	for _, t := range tutors {
		out = append(out, gin.H{
			"id":              t.ID,
			"accountId":       t.AccountID,
			"fullName":        t.FullName,
			"subjects":        t.SubjectList(),
			"experienceYears": t.ExperienceYears,
			"bio":             t.Bio,
			"hourlyRate":      t.HourlyRate,
			"ratingAvg":       t.RatingAvg,
			"totalRatings":    t.TotalRatings,
		})
	}
	c.JSON(http.StatusOK, gin.H{"tutors": out})
}

// POST /api/program/register
func registerProgramHandler(c *gin.Context) {
	p, _ := currentPrincipal(c)
	var req struct {
		ProgramName string `json:"programName"`
		Notes       string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProgramName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "programName is required"})
		return
	}
	reg := models.ProgramRegistration{StudentID: p.AccountID, ProgramName: req.ProgramName, Notes: req.Notes}
	if err := db.Create(&reg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Registered"})
}

// GET /api/profile returns the caller's role-appropriate profile.
func getProfileHandler(c *gin.Context) {
	p, _ := currentPrincipal(c)
	switch p.Role {
	case models.RoleTutor:
		var tp models.TutorProfile
		if err := db.Where("account_id = ?", p.AccountID).First(&tp).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Profile not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": tp})
	case models.RoleStudent:
		var sp models.StudentProfile
		if err := db.Where("account_id = ?", p.AccountID).First(&sp).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Profile not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": sp})
	default:
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
	}
}

// PUT /api/profile updates the caller's own profile shell.
func updateProfileHandler(c *gin.Context) {
	p, _ := currentPrincipal(c)
	switch p.Role {
	case models.RoleTutor:
		var req struct {
			FullName        string  `json:"fullName"`
			Subjects        string  `json:"subjects"`
			ExperienceYears int     `json:"experienceYears"`
			Bio             string  `json:"bio"`
			HourlyRate      float64 `json:"hourlyRate"`
			Availability    string  `json:"availability"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
		res := db.Model(&models.TutorProfile{}).Where("account_id = ?", p.AccountID).Updates(map[string]interface{}{
			"full_name":        req.FullName,
			"subjects":         req.Subjects,
			"experience_years": req.ExperienceYears,
			"bio":              req.Bio,
			"hourly_rate":      req.HourlyRate,
			"availability":     req.Availability,
		})
		if res.Error != nil || res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Profile not found"})
			return
		}
	case models.RoleStudent:
		var req struct {
			FullName      string `json:"fullName"`
			Grade         string `json:"grade"`
			SchoolName    string `json:"schoolName"`
			LearningGoals string `json:"learningGoals"`
			Availability  string `json:"availability"`
			AcademicLevel string `json:"academicLevel"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
		res := db.Model(&models.StudentProfile{}).Where("account_id = ?", p.AccountID).Updates(map[string]interface{}{
			"full_name":      req.FullName,
			"grade":          req.Grade,
			"school_name":    req.SchoolName,
			"learning_goals": req.LearningGoals,
			"availability":   req.Availability,
			"academic_level": req.AcademicLevel,
		})
		if res.Error != nil || res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Profile not found"})
			return
		}
	default:
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}
