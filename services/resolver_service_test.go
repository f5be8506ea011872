// file: services/resolver_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kiddushware/models"
)

// fakeEventSource is a canned CustomEventSource for resolver tests.
type fakeEventSource struct {
	events []models.CustomEvent
	err    error
}

func (f *fakeEventSource) ListActiveCustomEvents(ownerID, today string) ([]models.CustomEvent, error) {
	return f.events, f.err
}

func TestResolve_MergesAndSortsBothSources(t *testing.T) {
	pinNow(t, "2024-07-15")

	lookup := &MockShabbatLookup{}
	lookup.On("UpcomingShabbosim", mock.Anything).Return([]models.ShabbatInfo{
		{Parsha: "Parashat Balak", ShabbatDate: "2024-07-13", WeekendOf: "Jul 12 - Jul 13, 2024"}, // past
		{Parsha: "Parashat Pinchas", ShabbatDate: "2024-07-20", WeekendOf: "Jul 19 - Jul 20, 2024"},
		{Parsha: ErrorParsha, WeekendOf: ErrorWeekend}, // failed lookup, empty date
		{Parsha: "Parashat Matot-Masei", ShabbatDate: "2024-07-27", WeekendOf: "Jul 26 - Jul 27, 2024"},
	})

	events := &fakeEventSource{events: []models.CustomEvent{
		{ID: "evt1", UserID: "owner1", Title: "Annual Dinner", StartDate: "2024-07-22", EndDate: "2024-07-24"},
		{ID: "evt2", UserID: "owner1", Title: "Shiur Siyum", Description: "Completion of Maseches Brachos", StartDate: "2024-07-18", EndDate: "2024-07-18"},
	}}

	items, err := NewResolverService(lookup, events).Resolve("owner1", 4)
	require.NoError(t, err)
	require.Len(t, items, 4, "past and failed Shabbat slots are excluded")

	assert.Equal(t, "evt2", items[0].ID)
	assert.Equal(t, models.TypeCustom, items[0].Type)
	assert.Equal(t, "Jul 18, 2024", items[0].DisplayInfo)

	assert.Equal(t, "2024-07-20", items[1].ID, "Shabbat items are keyed by date")
	assert.Equal(t, models.TypeShabbat, items[1].Type)
	assert.Equal(t, "Parashat Pinchas", items[1].Title)

	assert.Equal(t, "evt1", items[2].ID)
	assert.Equal(t, "Jul 22 - Jul 24, 2024", items[2].DisplayInfo)

	assert.Equal(t, "2024-07-27", items[3].ID)
}

func TestResolve_LookupFailureYieldsEventsOnly(t *testing.T) {
	pinNow(t, "2024-07-15")

	lookup := &MockShabbatLookup{}
	lookup.On("UpcomingShabbosim", mock.Anything).Return([]models.ShabbatInfo{})

	events := &fakeEventSource{events: []models.CustomEvent{
		{ID: "evt1", Title: "Annual Dinner", StartDate: "2024-07-22", EndDate: "2024-07-24"},
	}}

	items, err := NewResolverService(lookup, events).Resolve("owner1", 8)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "evt1", items[0].ID)
}

func TestResolve_StoreFailureIsFatal(t *testing.T) {
	pinNow(t, "2024-07-15")

	lookup := &MockShabbatLookup{}
	lookup.On("UpcomingShabbosim", mock.Anything).Return([]models.ShabbatInfo{})

	events := &fakeEventSource{err: errors.New("database is locked")}

	_, err := NewResolverService(lookup, events).Resolve("owner1", 8)
	assert.Error(t, err)
}

func TestFormatEventRange(t *testing.T) {
	assert.Equal(t, "Jul 22 - Jul 24, 2024", formatEventRange("2024-07-22", "2024-07-24"))
	assert.Equal(t, "Jul 18, 2024", formatEventRange("2024-07-18", "2024-07-18"))
	assert.Equal(t, "not-a-date", formatEventRange("not-a-date", "2024-07-24"))
}
