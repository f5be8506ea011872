// Package services: services/people_service.go
package services

import (
	"errors"
	"sort"
	"strings"

	"kiddushware/logger"
	"kiddushware/models"
)

// UnknownName is the placeholder shown for donors who never supplied a
// name. A later record with a real name replaces it (first non-empty name
// wins; later variants never flap the display name).
const UnknownName = "Unknown"

// People directory status filters.
const (
	PeopleFilterAll      = "all"
	PeopleFilterApproved = "approved"
	PeopleFilterPending  = "pending"
	PeopleFilterManual   = "manual"
)

// ErrNotDeletable is returned when deleting a person with no backing
// contact record: such entries exist only as a view over sponsorship
// history and there is nothing to delete.
var ErrNotDeletable = errors.New("person has no contact record to delete")

// ContactStore is the slice of the store the people service mutates.
// Aggregates themselves are never persisted.
type ContactStore interface {
	CreateContact(c *models.Contact) (string, error)
	GetContact(id, ownerID string) (*models.Contact, error)
	UpdateContact(c *models.Contact) error
	DeleteContact(id, ownerID string) error
}

// PeopleServiceInterface is implemented by PeopleService and by the mock
// used in controller tests.
type PeopleServiceInterface interface {
	Aggregate(records []models.SponsorshipRecord, contacts []models.Contact) []models.PersonAggregate
	Filter(people []models.PersonAggregate, searchTerm, statusFilter string) []models.PersonAggregate
	SavePerson(ownerID, personDocID, name, email, phone, notes string) (string, error)
	DeletePerson(ownerID, personDocID string) error
}

// PeopleService folds the full sponsorship history plus manually-entered
// contacts into a deduplicated donor directory.
type PeopleService struct {
	Contacts ContactStore
}

// NewPeopleService wires the service to the contact store.
func NewPeopleService(contacts ContactStore) *PeopleService {
	return &PeopleService{Contacts: contacts}
}

// AggregationKey is the pure, stable grouping key: lower-trimmed email when
// present, else lower-trimmed name. Empty means unattributable.
func AggregationKey(email, name string) string {
	if k := strings.ToLower(strings.TrimSpace(email)); k != "" {
		return k
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// Aggregate rebuilds the directory from scratch. Records with neither email
// nor name are skipped entirely. Contacts sharing a key with sponsorship
// activity merge into that group (contact fields fill blanks, never
// overwrite); contacts with a fresh key become zero-activity entries
// flagged IsManuallyAdded. Output is sorted by key so re-runs over the same
// inputs render identically.
func (p *PeopleService) Aggregate(records []models.SponsorshipRecord, contacts []models.Contact) []models.PersonAggregate {
	groups := make(map[string]*models.PersonAggregate)
	var order []string

	for _, rec := range records {
		key := AggregationKey(rec.ContactEmail, rec.SponsorName)
		if key == "" {
			continue
		}
		agg, ok := groups[key]
		if !ok {
			agg = &models.PersonAggregate{Key: key, Name: UnknownName}
			groups[key] = agg
			order = append(order, key)
		}

		if agg.Name == UnknownName && strings.TrimSpace(rec.SponsorName) != "" {
			agg.Name = strings.TrimSpace(rec.SponsorName)
		}
		if agg.Email == "" && strings.TrimSpace(rec.ContactEmail) != "" {
			agg.Email = strings.TrimSpace(rec.ContactEmail)
		}

		agg.Sponsorships = append(agg.Sponsorships, rec)
		agg.TotalSponsorships++
		switch rec.Status {
		case models.StatusPending:
			agg.PendingCount++
		case models.StatusApproved:
			agg.ApprovedCount++
		}
		if rec.SubmittedAt.After(agg.LastSponsorshipDate) {
			agg.LastSponsorshipDate = rec.SubmittedAt
		}
	}

	for _, c := range contacts {
		key := AggregationKey(c.Email, c.Name)
		if key == "" {
			continue
		}
		agg, ok := groups[key]
		if !ok {
			agg = &models.PersonAggregate{Key: key, Name: UnknownName, IsManuallyAdded: true}
			groups[key] = agg
			order = append(order, key)
		}

		// contact fields fill blanks; a blank contact field never clears
		// anything the sponsorship history already established
		if agg.Name == UnknownName && strings.TrimSpace(c.Name) != "" {
			agg.Name = strings.TrimSpace(c.Name)
		}
		if agg.Email == "" && strings.TrimSpace(c.Email) != "" {
			agg.Email = strings.TrimSpace(c.Email)
		}
		if agg.Phone == "" && c.Phone != "" {
			agg.Phone = c.Phone
		}
		if agg.Notes == "" && c.Notes != "" {
			agg.Notes = c.Notes
		}
		if agg.PersonDocID == "" {
			agg.PersonDocID = c.ID
		}
	}

	sort.Strings(order)
	people := make([]models.PersonAggregate, 0, len(order))
	for _, key := range order {
		people = append(people, *groups[key])
	}
	logger.Debug.Printf("Aggregated %d people from %d sponsorships and %d contacts",
		len(people), len(records), len(contacts))
	return people
}

// Filter narrows an aggregated list by case-insensitive substring match on
// name or email, and by activity status. Pure; the input is not mutated.
func (p *PeopleService) Filter(people []models.PersonAggregate, searchTerm, statusFilter string) []models.PersonAggregate {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	out := make([]models.PersonAggregate, 0, len(people))

	for _, person := range people {
		if term != "" &&
			!strings.Contains(strings.ToLower(person.Name), term) &&
			!strings.Contains(strings.ToLower(person.Email), term) {
			continue
		}
		switch statusFilter {
		case PeopleFilterApproved:
			if person.ApprovedCount == 0 {
				continue
			}
		case PeopleFilterPending:
			if person.PendingCount == 0 {
				continue
			}
		case PeopleFilterManual:
			if !person.IsManuallyAdded || person.TotalSponsorships > 0 {
				continue
			}
		}
		out = append(out, person)
	}
	return out
}

// SavePerson persists an edit through the directory: with a personDocID it
// updates the backing contact, without one it creates a fresh contact so
// the edit has somewhere to live. Returns the contact id.
func (p *PeopleService) SavePerson(ownerID, personDocID, name, email, phone, notes string) (string, error) {
	if personDocID == "" {
		return p.Contacts.CreateContact(&models.Contact{
			UserID: ownerID,
			Name:   strings.TrimSpace(name),
			Email:  strings.TrimSpace(email),
			Phone:  phone,
			Notes:  notes,
		})
	}

	c, err := p.Contacts.GetContact(personDocID, ownerID)
	if err != nil {
		return "", err
	}
	c.Name = strings.TrimSpace(name)
	c.Email = strings.TrimSpace(email)
	c.Phone = phone
	c.Notes = notes
	if err := p.Contacts.UpdateContact(c); err != nil {
		return "", err
	}
	return c.ID, nil
}

// DeletePerson removes only the backing contact record. Aggregates without
// one cannot be deleted; sponsorship history always survives.
func (p *PeopleService) DeletePerson(ownerID, personDocID string) error {
	if personDocID == "" {
		return ErrNotDeletable
	}
	return p.Contacts.DeleteContact(personDocID, ownerID)
}
