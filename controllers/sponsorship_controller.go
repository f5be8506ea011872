// Package controllers controllers/sponsorship_controller.go
package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kiddushware/logger"
	"kiddushware/middleware"
	"kiddushware/models"
	"kiddushware/services"
	"kiddushware/store"
	"kiddushware/websocket"
)

// SponsorshipController manages the admin worklists (pending and approved
// sponsorships) and direct admin reservations.
type SponsorshipController struct {
	Store  *store.Store
	Parsha services.ShabbatLookupService
	Hub    *websocket.Hub
}

// NewSponsorshipController builds the controller.
func NewSponsorshipController(s *store.Store, parsha services.ShabbatLookupService, hub *websocket.Hub) *SponsorshipController {
	return &SponsorshipController{Store: s, Parsha: parsha, Hub: hub}
}

// ShowSponsorships renders the worklist page. Both tabs are server-rendered
// once; the page then opens a worklist WebSocket for live refresh.
func (sc *SponsorshipController) ShowSponsorships(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	pending, err := sc.Store.ListSponsorshipsByStatus(ownerID, models.StatusPending)
	if err != nil {
		logger.Error.Printf("ShowSponsorships: %v", err)
		c.HTML(http.StatusInternalServerError, "sponsorships.html", gin.H{"Error": "Error loading pending sponsorships."})
		return
	}
	approved, err := sc.Store.ListSponsorshipsByStatus(ownerID, models.StatusApproved)
	if err != nil {
		logger.Error.Printf("ShowSponsorships: %v", err)
		c.HTML(http.StatusInternalServerError, "sponsorships.html", gin.H{"Error": "Error loading approved sponsorships."})
		return
	}

	shabbosim := sc.Parsha.ShabbosimForYear()
	events, err := sc.Store.ListActiveCustomEvents(ownerID, todayString())
	if err != nil {
		logger.Error.Printf("ShowSponsorships: %v", err)
		events = nil
	}

	c.HTML(http.StatusOK, "sponsorships.html", gin.H{
		"Pending":      pending,
		"Approved":     approved,
		"Shabbosim":    shabbosim,
		"CustomEvents": events,
		"WebsocketURL": WebsocketURL,
	})
}

// WorklistUpdates is the live WebSocket endpoint behind the worklist tabs.
// The client passes ?status=pending|approved; switching tabs closes the old
// socket before opening the new one, which cancels the prior subscription.
func (sc *SponsorshipController) WorklistUpdates(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)
	status := c.Query("status")
	if status != models.StatusPending && status != models.StatusApproved {
		c.String(http.StatusBadRequest, "status must be pending or approved")
		return
	}
	sc.Hub.ServeWorklist(c.Writer, c.Request, ownerID, status)
}

// ApproveSponsorship transitions a pending record to approved.
func (sc *SponsorshipController) ApproveSponsorship(c *gin.Context) {
	sc.transition(c, models.StatusApproved)
}

// RejectSponsorship transitions a pending record to rejected.
func (sc *SponsorshipController) RejectSponsorship(c *gin.Context) {
	sc.transition(c, models.StatusRejected)
}

func (sc *SponsorshipController) transition(c *gin.Context, newStatus string) {
	ownerID := middleware.CurrentUserID(c)
	id := c.Param("id")

	rec, err := sc.Store.GetSponsorship(id)
	if err != nil || rec.ConfigOwnerID != ownerID {
		c.String(http.StatusNotFound, "Sponsorship not found.")
		return
	}
	if err := sc.Store.UpdateSponsorshipStatus(id, newStatus); err != nil {
		logger.Error.Printf("transition %s -> %s: %v", id, newStatus, err)
		c.String(http.StatusBadRequest, "Error updating sponsorship status.")
		return
	}
	c.Redirect(http.StatusFound, "/admin/sponsorships")
}

// EditSponsorship updates the admin-editable fields of a record.
func (sc *SponsorshipController) EditSponsorship(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)
	id := c.Param("id")

	rec, err := sc.Store.GetSponsorship(id)
	if err != nil || rec.ConfigOwnerID != ownerID {
		c.String(http.StatusNotFound, "Sponsorship not found.")
		return
	}

	sponsorName := strings.TrimSpace(c.PostForm("sponsorName"))
	occasion := strings.TrimSpace(c.PostForm("occasion"))
	if sponsorName == "" || occasion == "" {
		c.String(http.StatusBadRequest, "Sponsor name and occasion are required.")
		return
	}
	if err := sc.Store.UpdateSponsorshipFields(id, sponsorName, occasion, strings.TrimSpace(c.PostForm("contactEmail"))); err != nil {
		logger.Error.Printf("EditSponsorship %s: %v", id, err)
		c.String(http.StatusBadRequest, "Error updating sponsorship.")
		return
	}
	c.Redirect(http.StatusFound, "/admin/sponsorships")
}

// DeleteSponsorship removes a record permanently.
func (sc *SponsorshipController) DeleteSponsorship(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)
	id := c.Param("id")

	rec, err := sc.Store.GetSponsorship(id)
	if err != nil || rec.ConfigOwnerID != ownerID {
		c.String(http.StatusNotFound, "Sponsorship not found.")
		return
	}
	if err := sc.Store.DeleteSponsorship(id); err != nil {
		logger.Error.Printf("DeleteSponsorship %s: %v", id, err)
		c.String(http.StatusBadRequest, "Error deleting sponsorship.")
		return
	}
	c.Redirect(http.StatusFound, "/admin/sponsorships")
}

// ReserveKiddush records a direct admin reservation: the record is created
// already approved and flagged reservedByAdmin. The slot value arrives as
// "shabbatDate|parsha" from the Shabbos selector, or as a custom event id.
func (sc *SponsorshipController) ReserveKiddush(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)
	sponsorName := strings.TrimSpace(c.PostForm("sponsorName"))
	occasion := strings.TrimSpace(c.PostForm("occasion"))
	if sponsorName == "" || occasion == "" {
		c.String(http.StatusBadRequest, "Please fill out sponsor name and occasion.")
		return
	}

	rec := &models.SponsorshipRecord{
		ConfigOwnerID:   ownerID,
		SponsorName:     sponsorName,
		Occasion:        occasion,
		ContactEmail:    strings.TrimSpace(c.PostForm("contactEmail")),
		Status:          models.StatusApproved,
		ReservedByAdmin: true,
	}

	if eventID := c.PostForm("customEventId"); eventID != "" {
		ev, err := sc.Store.GetCustomEvent(eventID)
		if err != nil || ev.UserID != ownerID {
			c.String(http.StatusBadRequest, "Selected event not found.")
			return
		}
		rec.SponsorshipType = models.TypeCustom
		rec.CustomSponsorableID = ev.ID
		rec.CustomSponsorableTitle = ev.Title
	} else {
		shabbat := c.PostForm("shabbat")
		parts := strings.SplitN(shabbat, "|", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			c.String(http.StatusBadRequest, "Please select a Parsha/Shabbos.")
			return
		}
		rec.SponsorshipType = models.TypeShabbat
		rec.ShabbatDate = parts[0]
		rec.Parsha = parts[1]
	}

	if _, err := sc.Store.CreateSponsorship(rec); err != nil {
		logger.Error.Printf("ReserveKiddush: %v", err)
		c.String(http.StatusInternalServerError, "Error reserving Kiddush. Please try again.")
		return
	}
	c.Redirect(http.StatusFound, "/admin/sponsorships")
}
