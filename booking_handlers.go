package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

func sessionIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid session id"})
		return 0, false
	}
	return uint(id), true
}

func bookingStatus(err error) (int, string) {
	switch {
	case isValidationError(err), errors.Is(err, errInvalidTimeRange), errors.Is(err, errInvalidAction):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, errTooLate):
		return http.StatusBadRequest, "Sessions can only be cancelled at least 2 hours in advance"
	case errors.Is(err, errInvalidState):
		return http.StatusBadRequest, "Session is no longer pending"
	case errors.Is(err, errTutorNotFound):
		return http.StatusNotFound, "Tutor not found"
	case errors.Is(err, errSessionNotFound):
		return http.StatusNotFound, "Session not found"
	case errors.Is(err, errForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, errTimeConflict):
		return http.StatusConflict, "Time conflict with existing session"
	case errors.Is(err, errAlreadyHandled):
		return http.StatusConflict, "Session already handled"
	case errors.Is(err, errNotReady):
		return http.StatusConflict, "Session not accepted yet"
	case errors.Is(err, errNotFinished):
		return http.StatusConflict, "Session not finished yet"
	}
	return http.StatusInternalServerError, "Internal server error"
}

func abortBooking(c *gin.Context, err error) {
	status, msg := bookingStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("booking operation failed")
	}
	c.JSON(status, gin.H{"message": msg})
}

// POST /api/sessions
func scheduleSessionHandler(c *gin.Context) {
	p, _ := currentPrincipal(c)
	var req struct {
		TutorID   uint   `json:"tutorId"`
		Subject   string `json:"subject"`
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.TutorID == 0 || req.Subject == "" || req.StartTime == "" || req.EndTime == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "tutorId, subject, startTime and endTime are required"})
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid startTime"})
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid endTime"})
		return
	}
	s, err := createSession(p.AccountID, req.TutorID, req.Subject, start, end)
	if err != nil {
		abortBooking(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sessionId": s.ID, "message": "Session scheduled successfully"})
}

// PATCH /tutor/sessions/:id/confirm
func confirmSessionHandler(c *gin.Context) {
	p, _ := currentPrincipal(c)
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Action      string `json:"action"`
		MeetingLink string `json:"meetingLink"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	status, err := confirmSession(p.AccountID, id, req.Action, req.MeetingLink)
	if err != nil {
		abortBooking(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session updated successfully", "status": status})
}

// PATCH /api/sessions/:id/cancel
func cancelSessionHandler(c *gin.Context) {
	p, _ := currentPrincipal(c)
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}
	if err := cancelSession(p.AccountID, id); err != nil {
		abortBooking(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session cancelled", "status": "CANCELLED"})
}

// GET /api/sessions/:id/join
func joinSessionHandler(c *gin.Context) {
	p, _ := currentPrincipal(c)
	id, ok := sessionIDParam(c)
	if !ok {
		return
	}
	s, err := joinSession(p, id)
	if err != nil {
		abortBooking(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meetingLink": s.MeetingLink, "session": s})
}

// POST /api/feedback
func addFeedbackHandler(c *gin.Context) {
	p, _ := currentPrincipal(c)
	var req struct {
		SessionID uint   `json:"sessionId"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == 0 || req.Rating == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "sessionId and rating are required"})
		return
	}
	if err := addFeedback(p.AccountID, req.SessionID, req.Rating, req.Comment); err != nil {
		abortBooking(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Feedback submitted"})
}

// GET /api/sessions and GET /api/sessions/history
func listSessionsHandler(history bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := currentPrincipal(c)
		sessions, err := listStudentSessions(p.AccountID, history)
		if err != nil {
			abortBooking(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sessions": sessions})
	}
}

// GET /tutor/sessions/pending
func listPendingSessionsHandler(c *gin.Context) {
	p, _ := currentPrincipal(c)
	sessions, err := listPendingSessions(p.AccountID)
	if err != nil {
		abortBooking(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
