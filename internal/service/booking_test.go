package service

import (
	"context"
	"testing"
	"time"

	"brinquedos-backend/internal/domain"
	"brinquedos-backend/internal/ledgersync"
	"brinquedos-backend/internal/repository/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	store    *memory.Store
	bookings BookingService
	items    ItemService
	ledger   LedgerService
	customer *domain.Customer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	eng := ledgersync.New(store.BookingRepository, store.LedgerRepository, domain.DefaultDepositPercent)
	f := &fixture{
		store:    store,
		bookings: NewBookingService(store.BookingRepository, store.CustomerRepository, store.ItemRepository, eng),
		items:    NewItemService(store.ItemRepository, eng),
		ledger:   NewLedgerService(store.LedgerRepository, store.CustomerRepository, store.BookingRepository, eng),
	}
	f.customer = &domain.Customer{OrgID: 1, Name: "Maria", Document: "123.456.789-01", Phone: "11988887777"}
	require.NoError(t, NewCustomerService(store.CustomerRepository, store.BookingRepository).CreateCustomer(context.Background(), f.customer))
	return f
}

func (f *fixture) item(t *testing.T, name, rate string) int32 {
	t.Helper()
	it := &domain.InventoryItem{OrgID: 1, Name: name, DailyRate: dec(rate), TotalQuantity: 1, AvailableQuantity: 1}
	require.NoError(t, f.items.CreateItem(context.Background(), it))
	return it.ID
}

func (f *fixture) entries(t *testing.T, bookingID int32) []domain.LedgerEntry {
	t.Helper()
	entries, err := f.store.LedgerRepository.ListByBooking(context.Background(), 1, bookingID)
	require.NoError(t, err)
	return entries
}

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("Derives totals from items", func(t *testing.T) {
		f := newFixture(t)
		b := &domain.Booking{
			OrgID:        1,
			CustomerID:   f.customer.ID,
			ItemIDs:      []int32{f.item(t, "Cama elástica", "150.00"), f.item(t, "Castelo", "200.00")},
			PartyDate:    day(2024, 5, 10),
			TeardownDate: day(2024, 5, 11),
			Surcharges:   dec("50.00"),
			Discounts:    dec("20.00"),
		}
		require.NoError(t, f.bookings.CreateBooking(ctx, b))

		got, err := f.bookings.GetBooking(ctx, 1, b.ID)
		require.NoError(t, err)
		assert.True(t, dec("380.00").Equal(got.TotalAmount))
		assert.True(t, dec("114.00").Equal(got.EntryAmount))
		assert.True(t, dec("266.00").Equal(got.RemainingAmount))

		entries := f.entries(t, b.ID)
		require.Len(t, entries, 1)
		assert.True(t, dec("380.00").Equal(entries[0].Amount))
	})

	t.Run("Unknown customer", func(t *testing.T) {
		f := newFixture(t)
		b := &domain.Booking{OrgID: 1, CustomerID: 999, PartyDate: day(2024, 5, 10), TeardownDate: day(2024, 5, 11)}
		err := f.bookings.CreateBooking(ctx, b)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Item from another organization", func(t *testing.T) {
		f := newFixture(t)
		other := &domain.InventoryItem{OrgID: 2, Name: "Piscina de bolinhas", DailyRate: dec("90")}
		require.NoError(t, f.items.CreateItem(ctx, other))

		b := &domain.Booking{OrgID: 1, CustomerID: f.customer.ID, ItemIDs: []int32{other.ID}, PartyDate: day(2024, 5, 10), TeardownDate: day(2024, 5, 11)}
		err := f.bookings.CreateBooking(ctx, b)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		bookings, _ := f.bookings.ListBookings(ctx, 1, "")
		assert.Empty(t, bookings)
	})

	t.Run("Party after teardown", func(t *testing.T) {
		f := newFixture(t)
		b := &domain.Booking{OrgID: 1, CustomerID: f.customer.ID, PartyDate: day(2024, 5, 12), TeardownDate: day(2024, 5, 11)}
		err := f.bookings.CreateBooking(ctx, b)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "party_date")
	})

	t.Run("Engine receives persisted booking", func(t *testing.T) {
		bookingRepo := new(MockBookingRepo)
		customerRepo := new(MockCustomerRepo)
		itemRepo := new(MockItemRepo)
		eng := new(MockEngine)
		svc := NewBookingService(bookingRepo, customerRepo, itemRepo, eng)

		b := &domain.Booking{OrgID: 1, CustomerID: 3, PartyDate: day(2024, 5, 10), TeardownDate: day(2024, 5, 10), TotalAmount: dec("100")}
		customerRepo.On("GetByID", ctx, int32(1), int32(3)).Return(&domain.Customer{ID: 3}, nil)
		bookingRepo.On("Create", ctx, b).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Booking).ID = 42
		}).Return(nil)
		eng.On("BookingCreated", ctx, mock.MatchedBy(func(b *domain.Booking) bool { return b.ID == 42 })).Return(nil)

		require.NoError(t, svc.CreateBooking(ctx, b))
		eng.AssertExpectations(t)
		eng.AssertNotCalled(t, "ApplyItems", mock.Anything, mock.Anything)
	})
}

func TestBookingService_UpdateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("Item change re-derives total", func(t *testing.T) {
		f := newFixture(t)
		castle := f.item(t, "Castelo", "200.00")
		b := &domain.Booking{OrgID: 1, CustomerID: f.customer.ID, ItemIDs: []int32{castle}, PartyDate: day(2024, 5, 10), TeardownDate: day(2024, 5, 11)}
		require.NoError(t, f.bookings.CreateBooking(ctx, b))

		b.ItemIDs = append(b.ItemIDs, f.item(t, "Tobogã", "100.00"))
		require.NoError(t, f.bookings.UpdateBooking(ctx, b))

		got, err := f.bookings.GetBooking(ctx, 1, b.ID)
		require.NoError(t, err)
		assert.True(t, dec("300").Equal(got.TotalAmount))
		assert.True(t, dec("60").Equal(got.EntryAmount), "entry set at creation is kept")
		assert.True(t, dec("240").Equal(got.RemainingAmount))
		assert.True(t, dec("300").Equal(f.entries(t, b.ID)[0].Amount))
	})

	t.Run("Unchanged items keep manual total", func(t *testing.T) {
		f := newFixture(t)
		castle := f.item(t, "Castelo", "200.00")
		b := &domain.Booking{OrgID: 1, CustomerID: f.customer.ID, ItemIDs: []int32{castle}, PartyDate: day(2024, 5, 10), TeardownDate: day(2024, 5, 11)}
		require.NoError(t, f.bookings.CreateBooking(ctx, b))

		b.TotalAmount = dec("180")
		require.NoError(t, f.bookings.UpdateBooking(ctx, b))

		got, err := f.bookings.GetBooking(ctx, 1, b.ID)
		require.NoError(t, err)
		assert.True(t, dec("180").Equal(got.TotalAmount))
		assert.True(t, dec("120").Equal(got.RemainingAmount))
	})

	t.Run("Missing booking", func(t *testing.T) {
		f := newFixture(t)
		err := f.bookings.UpdateBooking(ctx, &domain.Booking{ID: 77, OrgID: 1})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBookingService_ChangePaymentState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := &domain.Booking{OrgID: 1, CustomerID: f.customer.ID, PartyDate: day(2024, 5, 10), TeardownDate: day(2024, 5, 11), TotalAmount: dec("300"), InstallmentCount: 3}
	require.NoError(t, f.bookings.CreateBooking(ctx, b))

	got, err := f.bookings.ChangePaymentState(ctx, 1, b.ID, domain.BookingPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPaid, got.PaymentState)
	for _, e := range f.entries(t, b.ID) {
		assert.Equal(t, domain.EntryPaid, e.PaymentState)
	}

	_, err = f.bookings.ChangePaymentState(ctx, 1, b.ID, "refunded")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookingService_ChangeStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := &domain.Booking{OrgID: 1, CustomerID: f.customer.ID, PartyDate: day(2024, 5, 10), TeardownDate: day(2024, 5, 11)}
	require.NoError(t, f.bookings.CreateBooking(ctx, b))

	got, err := f.bookings.ChangeStatus(ctx, 1, b.ID, domain.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, got.Status)

	_, err = f.bookings.ChangeStatus(ctx, 1, b.ID, "lost")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.bookings.ChangeStatus(ctx, 2, b.ID, domain.BookingStatusFinalized)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingService_DeleteBooking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := &domain.Booking{OrgID: 1, CustomerID: f.customer.ID, PartyDate: day(2024, 5, 10), TeardownDate: day(2024, 5, 11), TotalAmount: dec("300"), InstallmentCount: 3}
	require.NoError(t, f.bookings.CreateBooking(ctx, b))

	require.NoError(t, f.bookings.DeleteBooking(ctx, 1, b.ID))

	_, err := f.bookings.GetBooking(ctx, 1, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	entries := f.entries(t, b.ID)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, domain.EntryCancelled, e.PaymentState)
	}
}

func TestBookingService_ListBookingsByDate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, d := range []time.Time{day(2024, 5, 10), day(2024, 5, 10), day(2024, 5, 11)} {
		b := &domain.Booking{OrgID: 1, CustomerID: f.customer.ID, PartyDate: d, TeardownDate: d}
		require.NoError(t, f.bookings.CreateBooking(ctx, b))
	}

	got, err := f.bookings.ListBookingsByDate(ctx, 1, day(2024, 5, 10))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
