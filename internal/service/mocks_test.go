package service

import (
	"context"
	"time"

	"brinquedos-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockOrganizationRepo
type MockOrganizationRepo struct {
	mock.Mock
}

func (m *MockOrganizationRepo) Create(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrganizationRepo) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) GetByName(ctx context.Context, name string) (*domain.Organization, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, orgID, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) Delete(ctx context.Context, orgID, id int32) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}
func (m *MockCustomerRepo) List(ctx context.Context, orgID int32, status domain.CustomerStatus) ([]domain.Customer, error) {
	args := m.Called(ctx, orgID, status)
	return args.Get(0).([]domain.Customer), args.Error(1)
}

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) GetByID(ctx context.Context, orgID, id int32) (*domain.InventoryItem, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}
func (m *MockItemRepo) GetByIDs(ctx context.Context, orgID int32, ids []int32) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, orgID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}
func (m *MockItemRepo) Update(ctx context.Context, item *domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) Delete(ctx context.Context, orgID, id int32) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}
func (m *MockItemRepo) List(ctx context.Context, orgID int32) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}
func (m *MockItemRepo) ListAvailable(ctx context.Context, orgID int32, from, to time.Time) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, orgID, from, to)
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, orgID, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) UpdatePaymentState(ctx context.Context, orgID, id int32, state domain.BookingPaymentState) error {
	args := m.Called(ctx, orgID, id, state)
	return args.Error(0)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, orgID, id int32, status domain.BookingStatus) error {
	args := m.Called(ctx, orgID, id, status)
	return args.Error(0)
}
func (m *MockBookingRepo) Delete(ctx context.Context, orgID, id int32) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}
func (m *MockBookingRepo) List(ctx context.Context, orgID int32, status domain.BookingStatus) ([]domain.Booking, error) {
	args := m.Called(ctx, orgID, status)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByPartyDate(ctx context.Context, orgID int32, day time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, orgID, day)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByStatusAllOrgs(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) CountByStatus(ctx context.Context, orgID int32) (map[domain.BookingStatus]int32, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(map[domain.BookingStatus]int32), args.Error(1)
}
func (m *MockBookingRepo) CountInRange(ctx context.Context, orgID int32, from, to time.Time) (int32, error) {
	args := m.Called(ctx, orgID, from, to)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockBookingRepo) CountByCustomer(ctx context.Context, orgID, customerID int32) (int32, error) {
	args := m.Called(ctx, orgID, customerID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockBookingRepo) ItemUsage(ctx context.Context, orgID, itemID int32) (int32, error) {
	args := m.Called(ctx, orgID, itemID)
	return args.Get(0).(int32), args.Error(1)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) Create(ctx context.Context, e *domain.LedgerEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockLedgerRepo) GetByID(ctx context.Context, orgID, id int32) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, orgID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerRepo) Update(ctx context.Context, e *domain.LedgerEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockLedgerRepo) Delete(ctx context.Context, orgID, id int32) error {
	args := m.Called(ctx, orgID, id)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListByBooking(ctx context.Context, orgID, bookingID int32) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, orgID, bookingID)
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerRepo) ListByItem(ctx context.Context, orgID, itemID int32) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, orgID, itemID)
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerRepo) List(ctx context.Context, orgID int32, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, orgID, filter)
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerRepo) Totals(ctx context.Context, orgID int32, from, to time.Time) (*domain.LedgerTotals, error) {
	args := m.Called(ctx, orgID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTotals), args.Error(1)
}

// MockEngine
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) ApplyItems(b *domain.Booking, items []domain.InventoryItem) error {
	args := m.Called(b, items)
	return args.Error(0)
}
func (m *MockEngine) BookingCreated(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockEngine) BookingUpdated(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockEngine) BookingDeleted(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockEngine) ItemSaved(ctx context.Context, before, after *domain.InventoryItem) error {
	args := m.Called(ctx, before, after)
	return args.Error(0)
}
func (m *MockEngine) ItemDeleted(ctx context.Context, item *domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockEngine) EntrySaved(ctx context.Context, e *domain.LedgerEntry, created bool) error {
	args := m.Called(ctx, e, created)
	return args.Error(0)
}
