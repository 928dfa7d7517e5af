package main

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/khoinguyen248/projectSW-251-BE/models"
)

// cancelWindow is the minimum lead time a student needs to cancel a
// pending booking.
const cancelWindow = 2 * time.Hour

var activeStatuses = []models.SessionStatus{models.SessionPending, models.SessionAccepted}

func tutorProfileForAccount(accountID uint) (*models.TutorProfile, error) {
	var tp models.TutorProfile
	if err := db.Where("account_id = ?", accountID).First(&tp).Error; err != nil {
		return nil, errTutorNotFound
	}
	return &tp, nil
}

// createSession books a PENDING session after the overlap check. Two
// windows [s1,e1) and [s2,e2) conflict iff s1 < e2 and s2 < e1; only
// PENDING and ACCEPTED sessions block the slot.
func createSession(studentID, tutorID uint, subject string, start, end time.Time) (*models.Session, error) {
	if !start.Before(end) {
		return nil, errInvalidTimeRange
	}
	var tutor models.TutorProfile
	if err := db.First(&tutor, tutorID).Error; err != nil {
		return nil, errTutorNotFound
	}

	var conflict models.Session
	err := db.Where("tutor_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
		tutorID, activeStatuses, end, start).First(&conflict).Error
	if err == nil {
		return nil, errTimeConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	s := models.Session{
		StudentID: studentID,
		TutorID:   tutorID,
		Subject:   subject,
		StartTime: start,
		EndTime:   end,
		Status:    models.SessionPending,
	}
	if err := db.Create(&s).Error; err != nil {
		return nil, err
	}

	createNotification(tutor.AccountID, notification{
		Title:   "New booking request",
		Message: fmt.Sprintf("A student requested a %s session.", s.Subject),
		Type:    models.NotifyInfo,
		Link:    "/tutor-dashboard",
	})
	return &s, nil
}

// confirmSession applies the tutor's ACCEPT or REJECT decision. The
// transition is a conditional write guarded on status = PENDING; zero
// affected rows means another request already handled the session.
func confirmSession(tutorAccountID, sessionID uint, action, meetingLink string) (models.SessionStatus, error) {
	var s models.Session
	if err := db.First(&s, sessionID).Error; err != nil {
		return "", errSessionNotFound
	}
	tp, err := tutorProfileForAccount(tutorAccountID)
	if err != nil {
		return "", err
	}
	if s.TutorID != tp.ID {
		return "", errForbidden
	}
	if s.Status != models.SessionPending {
		return "", errAlreadyHandled
	}

	var next models.SessionStatus
	updates := map[string]interface{}{}
	switch action {
	case "ACCEPT":
		next = models.SessionAccepted
		if meetingLink != "" {
			updates["meeting_link"] = meetingLink
		}
	case "REJECT":
		next = models.SessionRejected
	default:
		return "", errInvalidAction
	}
	updates["status"] = next

	res := db.Model(&models.Session{}).
		Where("id = ? AND status = ?", sessionID, models.SessionPending).
		Updates(updates)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", errAlreadyHandled
	}

	title, ntype, verb := "Booking accepted", models.NotifySuccess, "accepted"
	if next == models.SessionRejected {
		title, ntype, verb = "Booking rejected", models.NotifyError, "rejected"
	}
	msg := fmt.Sprintf("Your tutor %s the %s session.", verb, s.Subject)
	createNotification(s.StudentID, notification{
		Title:     title,
		Message:   msg,
		Type:      ntype,
		Link:      "/student-dashboard",
		EmailHTML: fmt.Sprintf("<p>%s</p><p>Time: %s</p>", msg, s.StartTime.Format(time.RFC1123)),
	})
	return next, nil
}

// cancelSession lets the owning student withdraw a PENDING booking at
// least cancelWindow before it starts.
func cancelSession(studentID, sessionID uint) error {
	var s models.Session
	if err := db.First(&s, sessionID).Error; err != nil {
		return errSessionNotFound
	}
	if s.StudentID != studentID {
		return errForbidden
	}
	if s.Status != models.SessionPending {
		return errInvalidState
	}
	if s.StartTime.Sub(nowFunc()) < cancelWindow {
		return errTooLate
	}
	res := db.Model(&models.Session{}).
		Where("id = ? AND status = ?", sessionID, models.SessionPending).
		Update("status", models.SessionCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errAlreadyHandled
	}
	return nil
}

// joinSession returns the meeting link to the owning student or tutor
// once the session is ACCEPTED (or already finished).
func joinSession(p principal, sessionID uint) (*models.Session, error) {
	var s models.Session
	if err := db.First(&s, sessionID).Error; err != nil {
		return nil, errSessionNotFound
	}
	switch p.Role {
	case models.RoleStudent:
		if s.StudentID != p.AccountID {
			return nil, errForbidden
		}
	case models.RoleTutor:
		tp, err := tutorProfileForAccount(p.AccountID)
		if err != nil || s.TutorID != tp.ID {
			return nil, errForbidden
		}
	default:
		return nil, errForbidden
	}
	if s.Status != models.SessionAccepted && s.Status != models.SessionDone {
		return nil, errNotReady
	}
	return &s, nil
}

// addFeedback records a rating for a finished session. DONE is inferred
// at read time: an accepted session whose end has passed counts as
// finished even though no job flips its status. Nothing deduplicates
// repeat feedback for the same session.
func addFeedback(studentID, sessionID uint, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return invalidInput("rating must be between 1 and 5")
	}
	var s models.Session
	if err := db.First(&s, sessionID).Error; err != nil {
		return errSessionNotFound
	}
	if s.StudentID != studentID {
		return errForbidden
	}
	if !s.Finished(nowFunc()) {
		return errNotFinished
	}
	fb := models.Feedback{
		SessionID: sessionID,
		StudentID: s.StudentID,
		TutorID:   s.TutorID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := db.Create(&fb).Error; err != nil {
		return err
	}
	// rating aggregate is advisory; a failed update never fails the call
	res := db.Model(&models.TutorProfile{}).Where("id = ?", s.TutorID).Updates(map[string]interface{}{
		"rating_avg":    gorm.Expr("(rating_avg * total_ratings + ?) / (total_ratings + 1)", rating),
		"total_ratings": gorm.Expr("total_ratings + 1"),
	})
	if res.Error != nil {
		logger.Warn().Err(res.Error).Uint("tutor_id", s.TutorID).Msg("rating aggregate update failed")
	}
	return nil
}

// listStudentSessions returns the student's upcoming bookings, or with
// history=true the finished and terminal ones.
func listStudentSessions(studentID uint, history bool) ([]models.Session, error) {
	var sessions []models.Session
	q := db.Where("student_id = ?", studentID)
	if history {
		q = q.Where("status IN ? OR end_time <= ?",
			[]models.SessionStatus{models.SessionRejected, models.SessionCancelled, models.SessionDone}, nowFunc())
	} else {
		q = q.Where("status IN ? AND end_time > ?", activeStatuses, nowFunc())
	}
	if err := q.Order("start_time asc").Limit(200).Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// listPendingSessions returns the PENDING bookings awaiting the tutor's
// decision.
func listPendingSessions(tutorAccountID uint) ([]models.Session, error) {
	tp, err := tutorProfileForAccount(tutorAccountID)
	if err != nil {
		return nil, err
	}
	var sessions []models.Session
	if err := db.Where("tutor_id = ? AND status = ?", tp.ID, models.SessionPending).
		Order("start_time asc").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}
