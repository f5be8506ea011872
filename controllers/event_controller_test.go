// controllers/event_controller_test.go
package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiddushware/models"
)

func TestCreateEvent(t *testing.T) {
	router := setupTestRouter(t)
	s := openTestStore(t)
	ec := NewEventController(s)
	router.POST("/admin/events", ec.CreateEvent)
	cookie := loginAs(router, "owner1")

	w := postForm(router, cookie, "/admin/events",
		"title=Annual+Dinner&description=Yearly+fundraiser&startDate=2024-07-22&endDate=2024-07-24")
	assert.Equal(t, http.StatusFound, w.Code)

	events, err := s.ListCustomEvents("owner1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Annual Dinner", events[0].Title)
}

func TestCreateEvent_BackwardsRange(t *testing.T) {
	router := setupTestRouter(t)
	s := openTestStore(t)
	ec := NewEventController(s)
	router.POST("/admin/events", ec.CreateEvent)
	cookie := loginAs(router, "owner1")

	w := postForm(router, cookie, "/admin/events",
		"title=Backwards&startDate=2024-07-24&endDate=2024-07-22")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	events, err := s.ListCustomEvents("owner1")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestDeleteEvent_ScopedToOwner(t *testing.T) {
	router := setupTestRouter(t)
	s := openTestStore(t)
	ec := NewEventController(s)
	router.POST("/admin/events/:id/delete", ec.DeleteEvent)
	cookie := loginAs(router, "intruder")

	id, err := s.CreateCustomEvent(&models.CustomEvent{
		UserID: "owner1", Title: "Annual Dinner", StartDate: "2024-07-22", EndDate: "2024-07-24",
	})
	require.NoError(t, err)

	w := postForm(router, cookie, "/admin/events/"+id+"/delete", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, err = s.GetCustomEvent(id)
	assert.NoError(t, err, "another owner's delete must not remove the event")
}
