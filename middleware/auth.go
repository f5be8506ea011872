// Package middleware provides request filters and security checks for the application.
// File: middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"kiddushware/logger"
)

// -------------- authentication middleware --------------

// AuthRequired ensures the request carries a logged-in admin session.
// The session's "userID" is the tenant identifier every admin query is
// scoped by; without one the request is redirected to the login page.
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	userID := session.Get("userID")

	if userID == nil {
		logger.Warn.Printf("AuthRequired: no user in session for %s", c.Request.URL.Path)
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	logger.Debug.Println("[AuthRequired] User authenticated - proceeding with request")
	c.Next()
}

// CurrentUserID returns the tenant id of the logged-in admin, or "" when
// the session is anonymous.
func CurrentUserID(c *gin.Context) string {
	session := sessions.Default(c)
	if userID, ok := session.Get("userID").(string); ok {
		return userID
	}
	return ""
}
