// Package live implements the sponsorship reconciliation engine: filtered
// live subscriptions over the store that rebuild a merged view on every
// mutation and push it to a caller-supplied callback.
// File: live/engine.go
package live

import (
	"sync"

	"kiddushware/logger"
	"kiddushware/models"
	"kiddushware/store"
)

// SponsorshipSource is the slice of the store the engine queries on each
// snapshot. *store.Store satisfies it.
type SponsorshipSource interface {
	ListApprovedSponsorships(ownerID string) ([]models.SponsorshipRecord, error)
	ListSponsorshipsByStatus(ownerID, status string) ([]models.SponsorshipRecord, error)
}

// ItemResolver produces the sponsorable-item list a calendar snapshot is
// reconciled against.
type ItemResolver interface {
	Resolve(ownerID string, window int) ([]models.SponsorableItem, error)
}

// CalendarSnapshot is one reconciled public-calendar view: the sponsorable
// items plus a join-key -> sponsors map. Within a key, records keep store
// delivery order (treated as submission order).
type CalendarSnapshot struct {
	Items    []models.SponsorableItem              `json:"items"`
	Sponsors map[string][]models.SponsorshipRecord `json:"sponsors"`
}

// Engine owns no state between snapshots; every update is rebuilt from the
// latest store read, so re-running a render pass with newer data is always
// safe.
type Engine struct {
	source   SponsorshipSource
	resolver ItemResolver
	notifier *store.Notifier
}

// NewEngine wires the engine to the store and the item resolver.
func NewEngine(source SponsorshipSource, resolver ItemResolver, notifier *store.Notifier) *Engine {
	return &Engine{source: source, resolver: resolver, notifier: notifier}
}

// BuildCalendarSnapshot performs one reconciliation pass: resolve the
// sponsorable items, fetch approved records, and map them by join key.
func (e *Engine) BuildCalendarSnapshot(ownerID string, window int) (CalendarSnapshot, error) {
	items, err := e.resolver.Resolve(ownerID, window)
	if err != nil {
		return CalendarSnapshot{}, err
	}
	recs, err := e.source.ListApprovedSponsorships(ownerID)
	if err != nil {
		return CalendarSnapshot{}, err
	}

	sponsors := make(map[string][]models.SponsorshipRecord)
	for _, rec := range recs {
		key := rec.JoinKey()
		if key == "" {
			continue
		}
		sponsors[key] = append(sponsors[key], rec)
	}
	return CalendarSnapshot{Items: items, Sponsors: sponsors}, nil
}

// SubscribeCalendar delivers an initial calendar snapshot and then a fresh
// one after every mutation of the owner's sponsorships or custom events.
// The returned cancel function must be called before opening a replacement
// subscription for the same render target, else both callbacks keep firing.
func (e *Engine) SubscribeCalendar(ownerID string, window int, onUpdate func(CalendarSnapshot)) func() {
	return e.subscribe(
		func(c store.Change) bool {
			return c.OwnerID == ownerID &&
				(c.Collection == store.CollectionSponsorships || c.Collection == store.CollectionCustomEvents)
		},
		func() {
			snap, err := e.BuildCalendarSnapshot(ownerID, window)
			if err != nil {
				logger.Error.Printf("SubscribeCalendar: snapshot for owner %s failed: %v", ownerID, err)
				return
			}
			onUpdate(snap)
		})
}

// SubscribeWorklist delivers the owner's pending or approved worklist
// (newest submission first) on every relevant mutation. The join key here
// is the record id; contacts live in their own table and never appear.
func (e *Engine) SubscribeWorklist(ownerID, status string, onUpdate func([]models.SponsorshipRecord)) func() {
	return e.subscribe(
		func(c store.Change) bool {
			return c.OwnerID == ownerID && c.Collection == store.CollectionSponsorships
		},
		func() {
			recs, err := e.source.ListSponsorshipsByStatus(ownerID, status)
			if err != nil {
				logger.Error.Printf("SubscribeWorklist: %s worklist for owner %s failed: %v", status, ownerID, err)
				return
			}
			onUpdate(recs)
		})
}

// subscribe runs deliver once up front, then once per matching change.
// Changes are coalesced through a 1-slot kick channel: each deliver reads
// the latest store state, so collapsing a burst into one pass loses
// nothing. deliver runs on a dedicated goroutine, never on the publisher.
func (e *Engine) subscribe(match func(store.Change) bool, deliver func()) func() {
	kick := make(chan struct{}, 1)
	stop := make(chan struct{})

	cancelNotifier := e.notifier.Subscribe(func(c store.Change) {
		if !match(c) {
			return
		}
		select {
		case kick <- struct{}{}:
		default: // a refresh is already queued
		}
	})

	go func() {
		deliver()
		for {
			select {
			case <-stop:
				return
			case <-kick:
				select {
				case <-stop:
					return
				default:
				}
				deliver()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancelNotifier()
			close(stop)
		})
	}
}
