// Package controllers controllers/public_controller.go
package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kiddushware/live"
	"kiddushware/logger"
	"kiddushware/models"
	"kiddushware/services"
	"kiddushware/store"
	"kiddushware/websocket"
)

// PublicController serves the unauthenticated surfaces: the embeddable
// display pages, the public submission endpoint and the display's live
// WebSocket feed. Everything here is scoped by configuration id, never by
// session.
type PublicController struct {
	Store  *store.Store
	Engine *live.Engine
	Email  *services.EmailService
	Hub    *websocket.Hub
	Window int
}

// NewPublicController builds the controller. window is the forward-looking
// Shabbat count shown on calendars and forms.
func NewPublicController(s *store.Store, engine *live.Engine, email *services.EmailService, hub *websocket.Hub, window int) *PublicController {
	return &PublicController{Store: s, Engine: engine, Email: email, Hub: hub, Window: window}
}

// ShowDisplay renders a configuration's public page, routed by its type:
// calendars get the reconciled sponsor view, forms get the submission page.
// Unknown ids get the error page rather than any admin detail.
func (pc *PublicController) ShowDisplay(c *gin.Context) {
	cfg, err := pc.Store.GetConfiguration(c.Param("id"))
	if err != nil {
		logger.Warn.Printf("ShowDisplay: unknown configuration %s", c.Param("id"))
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Error": "This display does not exist."})
		return
	}

	snap, err := pc.Engine.BuildCalendarSnapshot(cfg.UserID, pc.Window)
	if err != nil {
		logger.Error.Printf("ShowDisplay %s: %v", cfg.ID, err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Error": "Error loading display."})
		return
	}

	data := gin.H{
		"Config":       cfg,
		"Items":        snap.Items,
		"Sponsors":     snap.Sponsors,
		"WebsocketURL": WebsocketURL,
	}
	if cfg.Type == models.ConfigTypeForm {
		c.HTML(http.StatusOK, "form.html", data)
		return
	}
	c.HTML(http.StatusOK, "calendar.html", data)
}

// DisplayUpdates is the live feed behind a public display. The socket joins
// the owner's calendar view; every mutation of sponsorships or custom
// events pushes a fresh snapshot.
func (pc *PublicController) DisplayUpdates(c *gin.Context) {
	cfg, err := pc.Store.GetConfiguration(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "Unknown display.")
		return
	}
	pc.Hub.ServeCalendar(c.Writer, c.Request, cfg.UserID, cfg.ID)
}

// SubmitSponsorship accepts a public form submission. The record always
// enters as pending under the configuration owner; nothing a visitor posts
// can reach the calendar without admin approval.
func (pc *PublicController) SubmitSponsorship(c *gin.Context) {
	cfg, err := pc.Store.GetConfiguration(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Error": "This form does not exist."})
		return
	}

	sponsorName := strings.TrimSpace(c.PostForm("sponsorName"))
	occasion := strings.TrimSpace(c.PostForm("occasion"))
	contactEmail := strings.TrimSpace(c.PostForm("contactEmail"))
	if sponsorName == "" || occasion == "" {
		c.HTML(http.StatusBadRequest, "form.html", gin.H{
			"Config": cfg,
			"Error":  "Please fill out your name and the occasion.",
		})
		return
	}

	rec := &models.SponsorshipRecord{
		ConfigOwnerID: cfg.UserID,
		SponsorName:   sponsorName,
		Occasion:      occasion,
		ContactEmail:  contactEmail,
		Status:        models.StatusPending,
		PaymentMethod: c.PostForm("paymentMethod"),
		KiddushType:   c.PostForm("kiddushType"),
		FormTitle:     cfg.Title,
	}

	if eventID := c.PostForm("customEventId"); eventID != "" {
		ev, err := pc.Store.GetCustomEvent(eventID)
		if err != nil || ev.UserID != cfg.UserID {
			c.HTML(http.StatusBadRequest, "form.html", gin.H{"Config": cfg, "Error": "The selected event is no longer available."})
			return
		}
		rec.SponsorshipType = models.TypeCustom
		rec.CustomSponsorableID = ev.ID
		rec.CustomSponsorableTitle = ev.Title
	} else {
		parts := strings.SplitN(c.PostForm("shabbat"), "|", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			c.HTML(http.StatusBadRequest, "form.html", gin.H{"Config": cfg, "Error": "Please select a Shabbos or event to sponsor."})
			return
		}
		rec.SponsorshipType = models.TypeShabbat
		rec.ShabbatDate = parts[0]
		rec.Parsha = parts[1]
	}

	if _, err := pc.Store.CreateSponsorship(rec); err != nil {
		logger.Error.Printf("SubmitSponsorship: %v", err)
		c.HTML(http.StatusInternalServerError, "form.html", gin.H{"Config": cfg, "Error": "Something went wrong, please try again."})
		return
	}

	websocket.PublishSubmission(cfg.ID)
	pc.Email.NotifySponsorshipAsync(cfg.NotificationEmail, *rec)

	c.HTML(http.StatusOK, "form.html", gin.H{
		"Config":  cfg,
		"Success": "Thank you! Your sponsorship was submitted and is awaiting approval.",
	})
}
