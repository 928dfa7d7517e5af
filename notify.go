package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/khoinguyen248/projectSW-251-BE/models"
)

// notification is the payload handed to createNotification.
type notification struct {
	Title     string
	Message   string
	Type      models.NotificationType
	Link      string
	EmailHTML string
}

// createNotification persists an in-app notification and optionally sends
// an email copy. Fire-and-forget: every failure is logged and swallowed,
// so a committed booking or credential mutation is never rolled back
// because a notification could not be delivered.
func createNotification(accountID uint, n notification) {
	row := models.Notification{
		AccountID:   accountID,
		Title:       n.Title,
		Message:     n.Message,
		Type:        n.Type,
		RelatedLink: n.Link,
	}
	if err := db.Create(&row).Error; err != nil {
		logger.Warn().Err(err).Uint("account_id", accountID).Msg("notification persist failed")
		return
	}
	if n.EmailHTML == "" {
		return
	}
	var acct models.Account
	if err := db.First(&acct, accountID).Error; err != nil {
		logger.Warn().Err(err).Uint("account_id", accountID).Msg("notification email lookup failed")
		return
	}
	subject := fmt.Sprintf("[Tutor System] %s", n.Title)
	if err := mailer.Send(acct.Email, subject, n.EmailHTML); err != nil {
		logger.Warn().Err(err).Str("email", acct.Email).Msg("notification email failed")
	}
}

// GET /api/notifications
func listNotificationsHandler(c *gin.Context) {
	p, _ := currentPrincipal(c)
	var items []models.Notification
	if err := db.Where("account_id = ?", p.AccountID).Order("id desc").Limit(100).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items})
}

// PATCH /api/notifications/:id/read
func markNotificationReadHandler(c *gin.Context) {
	p, _ := currentPrincipal(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid notification id"})
		return
	}
	res := db.Model(&models.Notification{}).
		Where("id = ? AND account_id = ?", id, p.AccountID).
		Update("is_read", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
