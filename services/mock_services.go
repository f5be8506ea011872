package services

import (
	"time"

	"github.com/stretchr/testify/mock"

	"kiddushware/models"
)

// Ensure the mocks implement their interfaces
var _ ShabbatLookupService = (*MockShabbatLookup)(nil)
var _ PeopleServiceInterface = (*MockPeopleService)(nil)

// MockShabbatLookup is a mock calendar lookup for testing and extends `mock.Mock`
type MockShabbatLookup struct {
	mock.Mock
}

// ShabbatInfoForDate (Mocked)
func (m *MockShabbatLookup) ShabbatInfoForDate(target time.Time) models.ShabbatInfo {
	args := m.Called(target)
	return args.Get(0).(models.ShabbatInfo)
}

// UpcomingShabbosim (Mocked)
func (m *MockShabbatLookup) UpcomingShabbosim(numberOfWeeks int) []models.ShabbatInfo {
	args := m.Called(numberOfWeeks)
	return args.Get(0).([]models.ShabbatInfo)
}

// ShabbosimForYear (Mocked)
func (m *MockShabbatLookup) ShabbosimForYear() []models.ShabbatInfo {
	args := m.Called()
	return args.Get(0).([]models.ShabbatInfo)
}

// MockPeopleService is a mock people aggregator for controller tests
type MockPeopleService struct {
	mock.Mock
}

// Aggregate (Mocked)
func (m *MockPeopleService) Aggregate(records []models.SponsorshipRecord, contacts []models.Contact) []models.PersonAggregate {
	args := m.Called(records, contacts)
	return args.Get(0).([]models.PersonAggregate)
}

// Filter (Mocked)
func (m *MockPeopleService) Filter(people []models.PersonAggregate, searchTerm, statusFilter string) []models.PersonAggregate {
	args := m.Called(people, searchTerm, statusFilter)
	return args.Get(0).([]models.PersonAggregate)
}

// SavePerson (Mocked)
func (m *MockPeopleService) SavePerson(ownerID, personDocID, name, email, phone, notes string) (string, error) {
	args := m.Called(ownerID, personDocID, name, email, phone, notes)
	return args.String(0), args.Error(1)
}

// DeletePerson (Mocked)
func (m *MockPeopleService) DeletePerson(ownerID, personDocID string) error {
	args := m.Called(ownerID, personDocID)
	return args.Error(0)
}
