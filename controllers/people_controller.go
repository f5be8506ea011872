// Package controllers controllers/people_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kiddushware/logger"
	"kiddushware/middleware"
	"kiddushware/services"
	"kiddushware/store"
)

// PeopleController serves the donor directory: a view aggregated from the
// full sponsorship history plus manually-entered contacts.
type PeopleController struct {
	Store  *store.Store
	People services.PeopleServiceInterface
}

// NewPeopleController builds the controller.
func NewPeopleController(s *store.Store, people services.PeopleServiceInterface) *PeopleController {
	return &PeopleController{Store: s, People: people}
}

// ShowPeople renders the directory, filtered by the optional search and
// status query params.
func (pc *PeopleController) ShowPeople(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	records, err := pc.Store.ListSponsorships(ownerID)
	if err != nil {
		logger.Error.Printf("ShowPeople: %v", err)
		c.HTML(http.StatusInternalServerError, "people.html", gin.H{"Error": "Error loading sponsorship history."})
		return
	}
	contacts, err := pc.Store.ListContacts(ownerID)
	if err != nil {
		logger.Error.Printf("ShowPeople: %v", err)
		c.HTML(http.StatusInternalServerError, "people.html", gin.H{"Error": "Error loading contacts."})
		return
	}

	search := c.Query("search")
	status := c.DefaultQuery("status", services.PeopleFilterAll)
	people := pc.People.Filter(pc.People.Aggregate(records, contacts), search, status)

	c.HTML(http.StatusOK, "people.html", gin.H{
		"People": people,
		"Search": search,
		"Status": status,
	})
}

// SavePerson handles both the add-contact and edit-person forms. A posted
// personDocId means an edit of the backing contact; none means a new one.
func (pc *PeopleController) SavePerson(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	_, err := pc.People.SavePerson(
		ownerID,
		c.PostForm("personDocId"),
		c.PostForm("name"),
		c.PostForm("email"),
		c.PostForm("phone"),
		c.PostForm("notes"),
	)
	if err != nil {
		logger.Error.Printf("SavePerson: %v", err)
		c.HTML(http.StatusBadRequest, "people.html", gin.H{"Error": "Error saving person."})
		return
	}
	c.Redirect(http.StatusFound, "/admin/people")
}

// DeletePerson removes a manually-added contact. History-only entries have
// nothing to delete and the request is rejected.
func (pc *PeopleController) DeletePerson(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)

	if err := pc.People.DeletePerson(ownerID, c.PostForm("personDocId")); err != nil {
		if errors.Is(err, services.ErrNotDeletable) {
			c.String(http.StatusBadRequest, "This entry comes from sponsorship history and cannot be deleted.")
			return
		}
		logger.Error.Printf("DeletePerson: %v", err)
		c.String(http.StatusBadRequest, "Error deleting person.")
		return
	}
	c.Redirect(http.StatusFound, "/admin/people")
}
