package main

import (
	"github.com/gin-gonic/gin"

	"github.com/khoinguyen248/projectSW-251-BE/models"
)

func setupRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	auth.GET("/csrf", csrfHandler)
	auth.POST("/signup", signupHandler)
	auth.POST("/login", loginHandler)
	auth.POST("/refresh", refreshHandler)
	auth.POST("/logout", logoutHandler)
	auth.POST("/verify-email", verifyEmailHandler)
	auth.POST("/resend-verification", resendVerificationHandler)
	auth.GET("/me", authRequired(), meHandler)

	api := r.Group("/api", authRequired(), csrfRequired())
	api.GET("/tutors", roleRequired(models.RoleStudent, models.RoleTutor), listTutorsHandler)
	api.POST("/program/register", roleRequired(models.RoleStudent), registerProgramHandler)
	api.POST("/sessions", roleRequired(models.RoleStudent), scheduleSessionHandler)
	api.GET("/sessions", roleRequired(models.RoleStudent), listSessionsHandler(false))
	api.GET("/sessions/history", roleRequired(models.RoleStudent), listSessionsHandler(true))
	api.GET("/sessions/:id/join", roleRequired(models.RoleStudent, models.RoleTutor), joinSessionHandler)
	api.PATCH("/sessions/:id/cancel", roleRequired(models.RoleStudent), cancelSessionHandler)
	api.POST("/feedback", roleRequired(models.RoleStudent), addFeedbackHandler)
	api.GET("/profile", getProfileHandler)
	api.PUT("/profile", updateProfileHandler)
	api.GET("/notifications", listNotificationsHandler)
	api.PATCH("/notifications/:id/read", markNotificationReadHandler)

	tutor := r.Group("/tutor", authRequired(), csrfRequired(), roleRequired(models.RoleTutor))
	tutor.GET("/sessions/pending", listPendingSessionsHandler)
	tutor.PATCH("/sessions/:id/confirm", confirmSessionHandler)
}
