// Package controllers file: controllers/page_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"kiddushware/logger"
	"kiddushware/services"
)

var (
	ApplicationURL string
	WebsocketURL   string
)

// SetConfig sets the global application and WebSocket URLs used by the
// rendered pages and the embed/QR helpers.
func SetConfig(appURL, wsURL string) {
	ApplicationURL = appURL
	WebsocketURL = wsURL
	services.SetApplicationURL(appURL)
	logger.Info.Printf("SetConfig: ApplicationURL=%s, WebsocketURL=%s", appURL, wsURL)
}

// Health is the load balancer health check.
func Health(c *gin.Context) {
	logger.Debug.Println("Health: Health check requested")
	c.String(http.StatusOK, "OK")
}

// Index renders the landing page. Logged-in admins go straight to the
// dashboard.
func Index(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get("userID") != nil {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"ApplicationURL": ApplicationURL})
}

// todayString is the date floor used for "upcoming" queries, formatted the
// way dates are stored (YYYY-MM-DD, UTC).
func todayString() string {
	return time.Now().UTC().Format("2006-01-02")
}
