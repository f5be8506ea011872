// Package services: services/resolver_service.go
package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"kiddushware/logger"
	"kiddushware/models"
)

// CustomEventSource is the slice of the store the resolver needs.
type CustomEventSource interface {
	ListActiveCustomEvents(ownerID, today string) ([]models.CustomEvent, error)
}

// ResolverService merges upcoming Shabbat slots with the owner's active
// custom events into one chronologically sorted list of sponsorable items.
// Pure function of current time + store state; nothing is cached between
// calls.
type ResolverService struct {
	Lookup ShabbatLookupService
	Events CustomEventSource
}

// NewResolverService wires the resolver to its two sources.
func NewResolverService(lookup ShabbatLookupService, events CustomEventSource) *ResolverService {
	return &ResolverService{Lookup: lookup, Events: events}
}

// Resolve fetches both sources concurrently and returns the merged list
// sorted ascending by start date. A calendar-lookup failure yields a list
// of custom events only; a store failure is a real error.
func (r *ResolverService) Resolve(ownerID string, window int) ([]models.SponsorableItem, error) {
	today := timeNow().UTC().Format("2006-01-02")

	var (
		wg        sync.WaitGroup
		shabbosim []models.ShabbatInfo
		events    []models.CustomEvent
		eventsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		shabbosim = r.Lookup.UpcomingShabbosim(window)
	}()
	go func() {
		defer wg.Done()
		events, eventsErr = r.Events.ListActiveCustomEvents(ownerID, today)
	}()
	wg.Wait()

	if eventsErr != nil {
		return nil, fmt.Errorf("resolve sponsorable items: %w", eventsErr)
	}

	items := make([]models.SponsorableItem, 0, len(shabbosim)+len(events))
	for _, s := range shabbosim {
		if s.ShabbatDate == "" || s.ShabbatDate < today {
			continue
		}
		items = append(items, models.SponsorableItem{
			Type:        models.TypeShabbat,
			ID:          s.ShabbatDate,
			Title:       s.Parsha,
			DisplayInfo: s.WeekendOf,
			StartDate:   s.ShabbatDate,
		})
	}
	for _, ev := range events {
		items = append(items, models.SponsorableItem{
			Type:        models.TypeCustom,
			ID:          ev.ID,
			Title:       ev.Title,
			Description: ev.Description,
			DisplayInfo: formatEventRange(ev.StartDate, ev.EndDate),
			StartDate:   ev.StartDate,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartDate < items[j].StartDate
	})

	logger.Debug.Printf("Resolved %d sponsorable items for owner %s (%d shabbat, %d custom)",
		len(items), ownerID, len(shabbosim), len(events))
	return items, nil
}

// formatEventRange renders a custom event's date range for display.
func formatEventRange(startDate, endDate string) string {
	start, err := time.ParseInLocation("2006-01-02", startDate, time.UTC)
	if err != nil {
		return startDate
	}
	if startDate == endDate {
		return start.Format("Jan 2, 2006")
	}
	end, err := time.ParseInLocation("2006-01-02", endDate, time.UTC)
	if err != nil {
		return startDate
	}
	return start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006")
}
