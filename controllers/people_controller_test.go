// controllers/people_controller_test.go
package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"kiddushware/models"
	"kiddushware/services"
)

func TestShowPeople_AggregatesAndFilters(t *testing.T) {
	router := setupTestRouter(t)
	s := openTestStore(t)
	people := &services.MockPeopleService{}
	pc := NewPeopleController(s, people)
	router.GET("/admin/people", pc.ShowPeople)
	cookie := loginAs(router, "owner1")

	aggregated := []models.PersonAggregate{{Key: "a@x.com", Name: "Aaron Katz"}}
	people.On("Aggregate", mock.Anything, mock.Anything).Return(aggregated)
	people.On("Filter", aggregated, "katz", services.PeopleFilterApproved).Return(aggregated)

	req, _ := http.NewRequest("GET", "/admin/people?search=katz&status=approved", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	people.AssertExpectations(t)
}

func TestSavePerson(t *testing.T) {
	router := setupTestRouter(t)
	s := openTestStore(t)
	people := &services.MockPeopleService{}
	pc := NewPeopleController(s, people)
	router.POST("/admin/people", pc.SavePerson)
	cookie := loginAs(router, "owner1")

	people.On("SavePerson", "owner1", "", "Rivka Stern", "rivka@x.com", "555-9876", "").
		Return("contact-1", nil)

	w := postForm(router, cookie, "/admin/people",
		"name=Rivka+Stern&email=rivka@x.com&phone=555-9876")
	assert.Equal(t, http.StatusFound, w.Code)
	people.AssertExpectations(t)
}

func TestDeletePerson_HistoryOnlyEntry(t *testing.T) {
	router := setupTestRouter(t)
	s := openTestStore(t)
	people := &services.MockPeopleService{}
	pc := NewPeopleController(s, people)
	router.POST("/admin/people/delete", pc.DeletePerson)
	cookie := loginAs(router, "owner1")

	people.On("DeletePerson", "owner1", "").Return(services.ErrNotDeletable)

	w := postForm(router, cookie, "/admin/people/delete", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cannot be deleted")
}

func TestDeletePerson_Success(t *testing.T) {
	router := setupTestRouter(t)
	s := openTestStore(t)
	people := &services.MockPeopleService{}
	pc := NewPeopleController(s, people)
	router.POST("/admin/people/delete", pc.DeletePerson)
	cookie := loginAs(router, "owner1")

	people.On("DeletePerson", "owner1", "contact-1").Return(nil)

	w := postForm(router, cookie, "/admin/people/delete", "personDocId=contact-1")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/people", w.Header().Get("Location"))
}
