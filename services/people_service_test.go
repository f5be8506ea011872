// file: services/people_service_test.go
package services

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiddushware/models"
)

// fakeContactStore is an in-memory ContactStore for people service tests.
type fakeContactStore struct {
	contacts map[string]*models.Contact
	nextID   int
}

func newFakeContactStore() *fakeContactStore {
	return &fakeContactStore{contacts: make(map[string]*models.Contact)}
}

func (f *fakeContactStore) CreateContact(c *models.Contact) (string, error) {
	f.nextID++
	c.ID = fmt.Sprintf("contact-%d", f.nextID)
	f.contacts[c.ID] = c
	return c.ID, nil
}

func (f *fakeContactStore) GetContact(id, ownerID string) (*models.Contact, error) {
	c, ok := f.contacts[id]
	if !ok || c.UserID != ownerID {
		return nil, assert.AnError
	}
	clone := *c
	return &clone, nil
}

func (f *fakeContactStore) UpdateContact(c *models.Contact) error {
	if _, ok := f.contacts[c.ID]; !ok {
		return assert.AnError
	}
	f.contacts[c.ID] = c
	return nil
}

func (f *fakeContactStore) DeleteContact(id, ownerID string) error {
	if _, ok := f.contacts[id]; !ok {
		return assert.AnError
	}
	delete(f.contacts, id)
	return nil
}

func at(day int) time.Time {
	return time.Date(2024, 7, day, 12, 0, 0, 0, time.UTC)
}

func TestAggregationKey(t *testing.T) {
	assert.Equal(t, "a@x.com", AggregationKey("A@x.com", "Aaron"))
	assert.Equal(t, "a@x.com", AggregationKey("  a@x.com ", ""))
	assert.Equal(t, "aaron katz", AggregationKey("", " Aaron Katz "))
	assert.Empty(t, AggregationKey("", "  "))
}

func TestAggregate_DeduplicatesByNormalizedEmail(t *testing.T) {
	svc := NewPeopleService(newFakeContactStore())

	records := []models.SponsorshipRecord{
		{SponsorName: "Aaron Katz", ContactEmail: "A@x.com", Status: models.StatusApproved, SubmittedAt: at(1)},
		{SponsorName: "", ContactEmail: "a@x.com ", Status: models.StatusPending, SubmittedAt: at(5)},
	}

	people := svc.Aggregate(records, nil)
	require.Len(t, people, 1, "case and whitespace variants of an email are one person")

	p := people[0]
	assert.Equal(t, "a@x.com", p.Key)
	assert.Equal(t, "Aaron Katz", p.Name)
	assert.Equal(t, 2, p.TotalSponsorships)
	assert.Equal(t, 1, p.ApprovedCount)
	assert.Equal(t, 1, p.PendingCount)
	assert.Equal(t, at(5), p.LastSponsorshipDate)
}

func TestAggregate_FirstNonEmptyNameWins(t *testing.T) {
	svc := NewPeopleService(newFakeContactStore())

	records := []models.SponsorshipRecord{
		{SponsorName: "", ContactEmail: "s@x.com", SubmittedAt: at(1)},
		{SponsorName: "Sarah Gold", ContactEmail: "s@x.com", SubmittedAt: at(2)},
		{SponsorName: "Sara G.", ContactEmail: "s@x.com", SubmittedAt: at(3)},
	}

	people := svc.Aggregate(records, nil)
	require.Len(t, people, 1)
	assert.Equal(t, "Sarah Gold", people[0].Name, "later name variants never flap the display name")
}

func TestAggregate_NameOnlyRecordsGroupByName(t *testing.T) {
	svc := NewPeopleService(newFakeContactStore())

	records := []models.SponsorshipRecord{
		{SponsorName: "Levi Cohen", SubmittedAt: at(1)},
		{SponsorName: " levi cohen ", SubmittedAt: at(2)},
		{SponsorName: "", ContactEmail: "", SubmittedAt: at(3)}, // unattributable, skipped
	}

	people := svc.Aggregate(records, nil)
	require.Len(t, people, 1)
	assert.Equal(t, "levi cohen", people[0].Key)
	assert.Equal(t, 2, people[0].TotalSponsorships)
}

func TestAggregate_ContactMergeFillsBlanksOnly(t *testing.T) {
	svc := NewPeopleService(newFakeContactStore())

	records := []models.SponsorshipRecord{
		{SponsorName: "Aaron Katz", ContactEmail: "a@x.com", Status: models.StatusApproved, SubmittedAt: at(1)},
	}
	contacts := []models.Contact{
		{ID: "c1", Name: "A. Katz", Email: "a@x.com", Phone: "555-1234", Notes: "Board member"},
	}

	people := svc.Aggregate(records, contacts)
	require.Len(t, people, 1)

	p := people[0]
	assert.Equal(t, "Aaron Katz", p.Name, "history name is not overwritten by the contact")
	assert.Equal(t, "555-1234", p.Phone, "contact fills fields history lacks")
	assert.Equal(t, "Board member", p.Notes)
	assert.Equal(t, "c1", p.PersonDocID)
	assert.False(t, p.IsManuallyAdded, "a contact merged into history is not a manual entry")
}

func TestAggregate_FreshContactIsManual(t *testing.T) {
	svc := NewPeopleService(newFakeContactStore())

	contacts := []models.Contact{
		{ID: "c1", Name: "Rivka Stern", Email: "rivka@x.com", Phone: "555-9876"},
	}

	people := svc.Aggregate(nil, contacts)
	require.Len(t, people, 1)
	assert.True(t, people[0].IsManuallyAdded)
	assert.Zero(t, people[0].TotalSponsorships)
	assert.Equal(t, "Rivka Stern", people[0].Name)
}

func TestAggregate_OrderIsDeterministic(t *testing.T) {
	svc := NewPeopleService(newFakeContactStore())

	records := []models.SponsorshipRecord{
		{SponsorName: "Zelda", ContactEmail: "z@x.com", SubmittedAt: at(1)},
		{SponsorName: "Aaron", ContactEmail: "a@x.com", SubmittedAt: at(2)},
		{SponsorName: "Moshe", ContactEmail: "m@x.com", SubmittedAt: at(3)},
	}

	base := svc.Aggregate(records, nil)
	require.Len(t, base, 3)
	assert.Equal(t, "a@x.com", base[0].Key)
	assert.Equal(t, "m@x.com", base[1].Key)
	assert.Equal(t, "z@x.com", base[2].Key)

	// any input permutation renders identically
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 5; i++ {
		shuffled := append([]models.SponsorshipRecord(nil), records...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		again := svc.Aggregate(shuffled, nil)
		require.Len(t, again, 3)
		for j := range base {
			assert.Equal(t, base[j].Key, again[j].Key)
		}
	}
}

func TestFilter(t *testing.T) {
	svc := NewPeopleService(newFakeContactStore())

	people := []models.PersonAggregate{
		{Key: "a@x.com", Name: "Aaron Katz", Email: "a@x.com", ApprovedCount: 2, TotalSponsorships: 2},
		{Key: "s@x.com", Name: "Sarah Gold", Email: "s@x.com", PendingCount: 1, TotalSponsorships: 1},
		{Key: "rivka@x.com", Name: "Rivka Stern", Email: "rivka@x.com", IsManuallyAdded: true},
	}

	assert.Len(t, svc.Filter(people, "", PeopleFilterAll), 3)

	byName := svc.Filter(people, "KATZ", PeopleFilterAll)
	require.Len(t, byName, 1)
	assert.Equal(t, "Aaron Katz", byName[0].Name)

	byEmail := svc.Filter(people, "rivka@", PeopleFilterAll)
	require.Len(t, byEmail, 1)

	approved := svc.Filter(people, "", PeopleFilterApproved)
	require.Len(t, approved, 1)
	assert.Equal(t, "Aaron Katz", approved[0].Name)

	pending := svc.Filter(people, "", PeopleFilterPending)
	require.Len(t, pending, 1)
	assert.Equal(t, "Sarah Gold", pending[0].Name)

	manual := svc.Filter(people, "", PeopleFilterManual)
	require.Len(t, manual, 1)
	assert.Equal(t, "Rivka Stern", manual[0].Name)
}

func TestSavePerson_CreatesWithoutDocID(t *testing.T) {
	store := newFakeContactStore()
	svc := NewPeopleService(store)

	id, err := svc.SavePerson("owner1", "", " Rivka Stern ", " rivka@x.com ", "555-9876", "New member")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	saved := store.contacts[id]
	require.NotNil(t, saved)
	assert.Equal(t, "Rivka Stern", saved.Name)
	assert.Equal(t, "rivka@x.com", saved.Email)
}

func TestSavePerson_UpdatesWithDocID(t *testing.T) {
	store := newFakeContactStore()
	svc := NewPeopleService(store)

	id, err := store.CreateContact(&models.Contact{UserID: "owner1", Name: "Rivka", Email: "rivka@x.com"})
	require.NoError(t, err)

	returned, err := svc.SavePerson("owner1", id, "Rivka Stern", "rivka@x.com", "555-9876", "")
	require.NoError(t, err)
	assert.Equal(t, id, returned)
	assert.Equal(t, "Rivka Stern", store.contacts[id].Name)
	assert.Equal(t, "555-9876", store.contacts[id].Phone)
}

func TestSavePerson_ScopedToOwner(t *testing.T) {
	store := newFakeContactStore()
	svc := NewPeopleService(store)

	id, err := store.CreateContact(&models.Contact{UserID: "owner1", Name: "Rivka", Email: "rivka@x.com"})
	require.NoError(t, err)

	_, err = svc.SavePerson("owner2", id, "Hijacked", "evil@x.com", "", "")
	assert.Error(t, err, "editing another owner's contact must fail")
	assert.Equal(t, "Rivka", store.contacts[id].Name)
	assert.Equal(t, "rivka@x.com", store.contacts[id].Email)
}

func TestDeletePerson(t *testing.T) {
	store := newFakeContactStore()
	svc := NewPeopleService(store)

	id, err := store.CreateContact(&models.Contact{UserID: "owner1", Name: "Rivka"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeletePerson("owner1", ""), ErrNotDeletable,
		"history-only entries have no contact to delete")

	require.NoError(t, svc.DeletePerson("owner1", id))
	assert.Empty(t, store.contacts)
}

// Deleting a contact then re-aggregating brings the person back from
// sponsorship history, without the manually-entered fields.
func TestDeleteThenReaggregate(t *testing.T) {
	store := newFakeContactStore()
	svc := NewPeopleService(store)

	records := []models.SponsorshipRecord{
		{SponsorName: "Aaron Katz", ContactEmail: "a@x.com", Status: models.StatusApproved, SubmittedAt: at(1)},
	}
	id, err := store.CreateContact(&models.Contact{ID: "", UserID: "owner1", Email: "a@x.com", Phone: "555-1234"})
	require.NoError(t, err)

	withContact := svc.Aggregate(records, []models.Contact{*store.contacts[id]})
	require.Len(t, withContact, 1)
	assert.Equal(t, "555-1234", withContact[0].Phone)

	require.NoError(t, svc.DeletePerson("owner1", id))

	after := svc.Aggregate(records, nil)
	require.Len(t, after, 1, "sponsorship history always survives a contact delete")
	assert.Empty(t, after[0].Phone)
	assert.Empty(t, after[0].PersonDocID)
}
