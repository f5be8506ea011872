// Package models defines data structures used across the application.
// File: models/sponsorship.go
package models

import "time"

// ----------------------- status & type enums -----------------------

// Sponsorship record statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Sponsorship types. A record sponsors either a weekly Shabbat slot or an
// admin-defined custom event, never both.
const (
	TypeShabbat = "shabbat"
	TypeCustom  = "custom"
)

// ----------------------- sponsorship model -----------------------

// SponsorshipRecord is one sponsorship or reservation of a Kiddush/event.
// Exactly one of (ShabbatDate+Parsha) or (CustomSponsorableID+Title) is
// populated, determined by SponsorshipType.
type SponsorshipRecord struct {
	ID                     string    `db:"id" json:"id"`
	ConfigOwnerID          string    `db:"config_owner_id" json:"configOwnerId"`
	SponsorName            string    `db:"sponsor_name" json:"sponsorName"`
	Occasion               string    `db:"occasion" json:"occasion"`
	ContactEmail           string    `db:"contact_email" json:"contactEmail"`
	Status                 string    `db:"status" json:"status"`
	SponsorshipType        string    `db:"sponsorship_type" json:"sponsorshipType"`
	ShabbatDate            string    `db:"shabbat_date" json:"shabbatDate"` // YYYY-MM-DD
	Parsha                 string    `db:"parsha" json:"parsha"`
	CustomSponsorableID    string    `db:"custom_sponsorable_id" json:"customSponsorableId"`
	CustomSponsorableTitle string    `db:"custom_sponsorable_title" json:"customSponsorableTitle"`
	PaymentMethod          string    `db:"payment_method" json:"paymentMethod"`
	KiddushType            string    `db:"kiddush_type" json:"kiddushType"`
	FormTitle              string    `db:"form_title" json:"formTitle"`
	ReservedByAdmin        bool      `db:"reserved_by_admin" json:"reservedByAdmin"`
	SubmittedAt            time.Time `db:"submitted_at" json:"submittedAt"`
}

// JoinKey returns the identifier that matches this record to a sponsorable
// item: the Shabbat date for weekly slots, the event id for custom events.
func (s SponsorshipRecord) JoinKey() string {
	if s.SponsorshipType == TypeCustom {
		return s.CustomSponsorableID
	}
	return s.ShabbatDate
}

// ----------------------- contact model -----------------------

// Contact is a manually-entered directory entry. Contacts live in their own
// table; deleting one never touches sponsorship history.
type Contact struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Notes     string    `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// ----------------------- custom event model -----------------------

// CustomEvent is an admin-defined sponsorable occasion with an explicit
// date range (StartDate <= EndDate), scoped to one owning user.
type CustomEvent struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	StartDate   string    `db:"start_date" json:"startDate"` // YYYY-MM-DD
	EndDate     string    `db:"end_date" json:"endDate"`     // YYYY-MM-DD
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
