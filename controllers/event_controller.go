// Package controllers controllers/event_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kiddushware/logger"
	"kiddushware/middleware"
	"kiddushware/models"
	"kiddushware/store"
)

// EventController manages custom sponsorable events: admin-defined
// occasions with an explicit date range, independent of the Shabbat cycle.
type EventController struct {
	Store *store.Store
}

// NewEventController builds the controller against the store.
func NewEventController(s *store.Store) *EventController {
	return &EventController{Store: s}
}

// ShowEvents renders the owner's custom events page.
func (ec *EventController) ShowEvents(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)
	events, err := ec.Store.ListCustomEvents(ownerID)
	if err != nil {
		logger.Error.Printf("ShowEvents: %v", err)
		c.HTML(http.StatusInternalServerError, "events.html", gin.H{"Error": "Error loading custom events."})
		return
	}
	c.HTML(http.StatusOK, "events.html", gin.H{"Events": events})
}

// CreateEvent handles the create form. Date-range validation happens in
// the store before anything is written.
func (ec *EventController) CreateEvent(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)
	ev := &models.CustomEvent{
		UserID:      ownerID,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		StartDate:   c.PostForm("startDate"),
		EndDate:     c.PostForm("endDate"),
	}

	if _, err := ec.Store.CreateCustomEvent(ev); err != nil {
		logger.Warn.Printf("CreateEvent rejected: %v", err)
		c.HTML(http.StatusBadRequest, "events.html", gin.H{"Error": err.Error()})
		return
	}
	c.Redirect(http.StatusFound, "/admin/events")
}

// UpdateEvent handles the edit form.
func (ec *EventController) UpdateEvent(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)
	ev := &models.CustomEvent{
		ID:          c.Param("id"),
		UserID:      ownerID,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		StartDate:   c.PostForm("startDate"),
		EndDate:     c.PostForm("endDate"),
	}

	if err := ec.Store.UpdateCustomEvent(ev); err != nil {
		logger.Warn.Printf("UpdateEvent %s rejected: %v", ev.ID, err)
		c.HTML(http.StatusBadRequest, "events.html", gin.H{"Error": err.Error()})
		return
	}
	c.Redirect(http.StatusFound, "/admin/events")
}

// DeleteEvent removes a custom event. Sponsorships already recorded
// against it keep their stored title.
func (ec *EventController) DeleteEvent(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)
	if err := ec.Store.DeleteCustomEvent(c.Param("id"), ownerID); err != nil {
		logger.Error.Printf("DeleteEvent %s: %v", c.Param("id"), err)
		c.HTML(http.StatusBadRequest, "events.html", gin.H{"Error": "Error deleting event."})
		return
	}
	c.Redirect(http.StatusFound, "/admin/events")
}
