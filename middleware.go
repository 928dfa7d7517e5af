package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/khoinguyen248/projectSW-251-BE/models"
)

const principalKey = "principal"

// principal is the per-request identity attached after access-token
// verification.
type principal struct {
	AccountID uint
	Email     string
	Role      models.Role
}

// authRequired verifies the bearer access token and attaches the
// principal. All verification failures collapse to one generic 401.
func authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing access token"})
			return
		}
		claims, err := tok.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil || claims.JTI != "" {
			// a jti marks a refresh token; it is not a bearer credential
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		c.Set(principalKey, principal{AccountID: claims.AccountID, Email: claims.Email, Role: claims.Role})
		c.Next()
	}
}

func currentPrincipal(c *gin.Context) (principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return principal{}, false
	}
	p, ok := v.(principal)
	return p, ok
}

// roleRequired gates a route group to the listed roles.
func roleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := currentPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
	}
}

// csrfRequired enforces the double-submit check on state-changing
// methods: the X-CSRF-Token header must equal the readable csrf cookie.
func csrfRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			c.Next()
			return
		}
		headerToken := c.GetHeader("X-CSRF-Token")
		cookieToken, err := c.Cookie("csrf")
		if err != nil || headerToken == "" || headerToken != cookieToken {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid CSRF token"})
			return
		}
		c.Next()
	}
}
