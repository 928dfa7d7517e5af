package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/khoinguyen248/projectSW-251-BE/models"
)

const refreshCookieName = "rt"

func setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, token, int(cfg.RefreshTTL.Seconds()), "/", cfg.CookieDomain, cfg.CookieSecure, true)
}

func clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, "", -1, "/", cfg.CookieDomain, cfg.CookieSecure, true)
}

// csrfHandler issues the readable half of the double-submit pair.
func csrfHandler(c *gin.Context) {
	token, err := randomToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("csrf", token, 24*60*60, "/", cfg.CookieDomain, cfg.CookieSecure, false)
	c.JSON(http.StatusOK, gin.H{"csrfToken": token})
}

func signupHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" || req.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email, password and role are required"})
		return
	}
	acct, err := signupAccount(req.Email, req.Password, models.Role(req.Role))
	if err != nil {
		switch {
		case isValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		case errors.Is(err, errDuplicateEmail):
			c.JSON(http.StatusConflict, gin.H{"message": "Email already exists"})
		default:
			logger.Error().Err(err).Msg("signup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}
	logger.Info().Uint("account_id", acct.ID).Str("role", string(acct.Role)).Msg("account created")
	c.JSON(http.StatusCreated, gin.H{
		"message":              "Signup successful, please verify your email",
		"requiresVerification": true,
	})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing credentials"})
		return
	}
	accessToken, refreshToken, acct, err := loginAccount(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errEmailNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"message": "Email not verified, please check your inbox"})
		case errors.Is(err, errInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		default:
			logger.Error().Err(err).Msg("login failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}
	setRefreshCookie(c, refreshToken)
	c.JSON(http.StatusOK, gin.H{
		"accessToken": accessToken,
		"account":     gin.H{"id": acct.ID, "email": acct.Email, "role": acct.Role},
	})
}

func refreshHandler(c *gin.Context) {
	raw, err := c.Cookie(refreshCookieName)
	if err != nil || raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing refresh token"})
		return
	}
	accessToken, refreshToken, err := rotateRefreshToken(raw)
	if err != nil {
		switch {
		case errors.Is(err, errTokenInvalid), errors.Is(err, errTokenExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token"})
		case errors.Is(err, errTokenRevoked):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Refresh revoked"})
		case errors.Is(err, errTokenMismatch):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Refresh mismatch"})
		default:
			logger.Error().Err(err).Msg("refresh rotation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}
	setRefreshCookie(c, refreshToken)
	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// logoutHandler never fails the request: the cookie is cleared whether or
// not the token inside it was still valid.
func logoutHandler(c *gin.Context) {
	if raw, err := c.Cookie(refreshCookieName); err == nil {
		logoutAccount(raw)
	}
	clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func meHandler(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{"id": p.AccountID, "email": p.Email, "role": p.Role},
	})
}

func verifyEmailHandler(c *gin.Context) {
	var req struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Token and userId are required"})
		return
	}
	accountID, err := strconv.ParseUint(req.UserID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired token"})
		return
	}
	if err := consumeVerificationToken(req.Token, uint(accountID)); err != nil {
		if errors.Is(err, errTokenInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired token"})
			return
		}
		logger.Error().Err(err).Msg("verify email failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully", "verified": true})
}

func resendVerificationHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}
	if err := resendVerification(req.Email); err != nil {
		if errors.Is(err, errAlreadyVerified) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email is already verified"})
			return
		}
		logger.Error().Err(err).Msg("resend verification failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	// same response whether or not the email exists
	c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a new verification link has been sent"})
}
