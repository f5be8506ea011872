// Package models defines data structures used across the application.
// File: models/derived.go
//
// Derived view types. Neither SponsorableItem nor PersonAggregate is ever
// persisted; both are rebuilt from the latest store snapshot on every pass.
package models

import "time"

// ----------------------- shabbat info -----------------------

// ShabbatInfo is one normalized result from the Hebrew-calendar lookup
// service. ShabbatDate is empty when the lookup failed; callers must treat
// such results as unusable.
type ShabbatInfo struct {
	Parsha      string `json:"parsha"`
	WeekendOf   string `json:"weekendOf"`
	ShabbatDate string `json:"shabbatDate"` // YYYY-MM-DD
}

// ----------------------- sponsorable item -----------------------

// SponsorableItem is a calendar slot or custom event eligible for
// sponsorship. ID is the join key against SponsorshipRecord: the Shabbat
// date for weekly slots, the event id for custom events.
type SponsorableItem struct {
	Type        string `json:"type"` // TypeShabbat | TypeCustom
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DisplayInfo string `json:"displayInfo"`
	StartDate   string `json:"startDate"` // YYYY-MM-DD
}

// ----------------------- person aggregate -----------------------

// PersonAggregate is one deduplicated entry of the donor directory, keyed
// by lower-cased email (fallback: lower-cased name). PersonDocID links to a
// manually-entered Contact when one exists for the same key; aggregates
// without one exist purely as a view over sponsorship history.
type PersonAggregate struct {
	Key                 string              `json:"key"`
	Name                string              `json:"name"`
	Email               string              `json:"email"`
	Phone               string              `json:"phone"`
	Notes               string              `json:"notes"`
	PersonDocID         string              `json:"personDocId,omitempty"`
	Sponsorships        []SponsorshipRecord `json:"sponsorships"`
	TotalSponsorships   int                 `json:"totalSponsorships"`
	PendingCount        int                 `json:"pendingCount"`
	ApprovedCount       int                 `json:"approvedCount"`
	LastSponsorshipDate time.Time           `json:"lastSponsorshipDate"`
	IsManuallyAdded     bool                `json:"isManuallyAdded"`
}
