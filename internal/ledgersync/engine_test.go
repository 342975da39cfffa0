package ledgersync

import (
	"context"
	"strings"
	"testing"
	"time"

	"brinquedos-backend/internal/domain"
	"brinquedos-backend/internal/repository/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orgID int32 = 1

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func setup() (*memory.Store, Engine) {
	store := memory.NewStore()
	return store, New(store.BookingRepository, store.LedgerRepository, domain.DefaultDepositPercent)
}

func createBooking(t *testing.T, store *memory.Store, eng Engine, b *domain.Booking) {
	t.Helper()
	b.OrgID = orgID
	b.Normalize()
	require.NoError(t, b.Validate())
	require.NoError(t, store.BookingRepository.Create(context.Background(), b))
	require.NoError(t, eng.BookingCreated(context.Background(), b))
}

func bookingEntries(t *testing.T, store *memory.Store, bookingID int32) []domain.LedgerEntry {
	t.Helper()
	entries, err := store.LedgerRepository.ListByBooking(context.Background(), orgID, bookingID)
	require.NoError(t, err)
	return entries
}

func itemEntries(t *testing.T, store *memory.Store, itemID int32) []domain.LedgerEntry {
	t.Helper()
	entries, err := store.LedgerRepository.ListByItem(context.Background(), orgID, itemID)
	require.NoError(t, err)
	return entries
}

func TestApplyItems(t *testing.T) {
	_, eng := setup()
	items := []domain.InventoryItem{{DailyRate: dec("150.00")}, {DailyRate: dec("200.00")}}

	t.Run("Derives total and default entry", func(t *testing.T) {
		b := &domain.Booking{Surcharges: dec("50.00"), Discounts: dec("20.00")}
		require.NoError(t, eng.ApplyItems(b, items))
		assert.True(t, dec("380.00").Equal(b.TotalAmount))
		assert.True(t, dec("114.00").Equal(b.EntryAmount))
		assert.True(t, dec("266.00").Equal(b.RemainingAmount))
	})

	t.Run("Keeps explicit entry", func(t *testing.T) {
		b := &domain.Booking{Surcharges: dec("50.00"), Discounts: dec("20.00"), EntryAmount: dec("200")}
		require.NoError(t, eng.ApplyItems(b, items))
		assert.True(t, dec("200").Equal(b.EntryAmount))
		assert.True(t, dec("180").Equal(b.RemainingAmount))
	})

	t.Run("Cleared items", func(t *testing.T) {
		b := &domain.Booking{Surcharges: dec("40")}
		require.NoError(t, eng.ApplyItems(b, nil))
		assert.True(t, dec("40").Equal(b.TotalAmount))
		assert.True(t, dec("12").Equal(b.EntryAmount))
	})

	t.Run("Discount larger than total", func(t *testing.T) {
		b := &domain.Booking{Discounts: dec("500")}
		err := eng.ApplyItems(b, items)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestBookingCreated_ExpandsMonthlyInstallments(t *testing.T) {
	store, eng := setup()
	b := &domain.Booking{
		CustomerID:       7,
		PartyDate:        day(2024, 1, 31),
		TeardownDate:     day(2024, 2, 1),
		TotalAmount:      dec("380.00"),
		InstallmentCount: 3,
	}
	createBooking(t, store, eng, b)

	entries := bookingEntries(t, store, b.ID)
	require.Len(t, entries, 3)
	wantDates := []time.Time{day(2024, 1, 31), day(2024, 2, 29), day(2024, 3, 31)}
	sum := decimal.Zero
	for i, e := range entries {
		assert.Equal(t, i+1, e.InstallmentIndex)
		assert.Equal(t, 3, e.InstallmentCount)
		assert.True(t, wantDates[i].Equal(e.DueDate), "installment %d due %s", i+1, e.DueDate)
		assert.Equal(t, domain.OriginBooking, e.Origin)
		assert.Equal(t, domain.DirectionInflow, e.Direction)
		assert.Equal(t, domain.CategoryRental, e.Category)
		assert.Equal(t, domain.EntryUnpaid, e.PaymentState)
		assert.Equal(t, entries[0].SourceReferenceID, e.SourceReferenceID)
		require.NotNil(t, e.CustomerID)
		assert.Equal(t, int32(7), *e.CustomerID)
		sum = sum.Add(e.Amount)
	}
	assert.NotEmpty(t, entries[0].SourceReferenceID)
	assert.True(t, dec("126.67").Equal(entries[0].Amount))
	assert.True(t, dec("126.66").Equal(entries[2].Amount))
	assert.True(t, dec("380.00").Equal(sum))
}

func TestBookingCreated_DefaultsToSingleInstallment(t *testing.T) {
	store, eng := setup()
	b := &domain.Booking{CustomerID: 1, PartyDate: day(2024, 6, 1), TeardownDate: day(2024, 6, 1), TotalAmount: dec("250")}
	createBooking(t, store, eng, b)

	entries := bookingEntries(t, store, b.ID)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].InstallmentPlan)
	assert.True(t, dec("250").Equal(entries[0].Amount))
}

func TestBookingUpdated(t *testing.T) {
	ctx := context.Background()

	t.Run("Idempotent for unchanged booking", func(t *testing.T) {
		store, eng := setup()
		b := &domain.Booking{CustomerID: 1, PartyDate: day(2024, 3, 10), TeardownDate: day(2024, 3, 11), TotalAmount: dec("300"), InstallmentCount: 2}
		createBooking(t, store, eng, b)
		before := bookingEntries(t, store, b.ID)

		require.NoError(t, store.BookingRepository.Update(ctx, b))
		require.NoError(t, eng.BookingUpdated(ctx, b))
		require.NoError(t, eng.BookingUpdated(ctx, b))

		after := bookingEntries(t, store, b.ID)
		require.Len(t, after, len(before))
		for i := range before {
			assert.Equal(t, before[i].ID, after[i].ID)
			assert.True(t, before[i].Amount.Equal(after[i].Amount))
			assert.True(t, before[i].DueDate.Equal(after[i].DueDate))
			assert.Equal(t, before[i].PaymentState, after[i].PaymentState)
			assert.Equal(t, before[i].Description, after[i].Description)
		}
	})

	t.Run("Rewrites rows in place without re-expanding", func(t *testing.T) {
		store, eng := setup()
		b := &domain.Booking{CustomerID: 1, PartyDate: day(2024, 3, 10), TeardownDate: day(2024, 3, 11), TotalAmount: dec("300"), InstallmentCount: 2}
		createBooking(t, store, eng, b)

		b.TotalAmount = dec("500")
		b.InstallmentCount = 5
		b.PartyDate = day(2024, 4, 1)
		b.TeardownDate = day(2024, 4, 2)
		b.CustomerID = 9
		require.NoError(t, store.BookingRepository.Update(ctx, b))
		require.NoError(t, eng.BookingUpdated(ctx, b))

		entries := bookingEntries(t, store, b.ID)
		require.Len(t, entries, 2)
		assert.True(t, dec("250").Equal(entries[0].Amount))
		assert.True(t, day(2024, 5, 1).Equal(entries[1].DueDate))
		assert.Equal(t, int32(9), *entries[1].CustomerID)
	})

	t.Run("Payment state round trip", func(t *testing.T) {
		store, eng := setup()
		b := &domain.Booking{CustomerID: 1, PartyDate: day(2024, 3, 10), TeardownDate: day(2024, 3, 11), TotalAmount: dec("300"), InstallmentCount: 3}
		createBooking(t, store, eng, b)

		require.NoError(t, store.BookingRepository.UpdatePaymentState(ctx, orgID, b.ID, domain.BookingPaid))
		b.PaymentState = domain.BookingPaid
		require.NoError(t, eng.BookingUpdated(ctx, b))

		for _, e := range bookingEntries(t, store, b.ID) {
			assert.Equal(t, domain.EntryPaid, e.PaymentState)
		}
	})
}

func TestEntrySaved_PropagatesToBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("Entry change converges booking and siblings", func(t *testing.T) {
		store, eng := setup()
		b := &domain.Booking{CustomerID: 1, PartyDate: day(2024, 3, 10), TeardownDate: day(2024, 3, 11), TotalAmount: dec("300"), InstallmentCount: 3}
		createBooking(t, store, eng, b)

		entry := bookingEntries(t, store, b.ID)[1]
		entry.PaymentState = domain.EntryDeposit
		require.NoError(t, store.LedgerRepository.Update(ctx, &entry))
		require.NoError(t, eng.EntrySaved(ctx, &entry, false))

		got, err := store.BookingRepository.GetByID(ctx, orgID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingDepositPaid, got.PaymentState)
		for _, e := range bookingEntries(t, store, b.ID) {
			assert.Equal(t, domain.EntryDeposit, e.PaymentState)
		}
	})

	t.Run("Planned and cancelled never propagate", func(t *testing.T) {
		store, eng := setup()
		b := &domain.Booking{CustomerID: 1, PartyDate: day(2024, 3, 10), TeardownDate: day(2024, 3, 11), TotalAmount: dec("300")}
		createBooking(t, store, eng, b)

		entry := bookingEntries(t, store, b.ID)[0]
		for _, state := range []domain.EntryPaymentState{domain.EntryPlanned, domain.EntryCancelled} {
			entry.PaymentState = state
			require.NoError(t, store.LedgerRepository.Update(ctx, &entry))
			require.NoError(t, eng.EntrySaved(ctx, &entry, false))

			got, err := store.BookingRepository.GetByID(ctx, orgID, b.ID)
			require.NoError(t, err)
			assert.Equal(t, domain.BookingUnpaid, got.PaymentState)
		}
	})

	t.Run("Equal states are a no-op", func(t *testing.T) {
		store, eng := setup()
		b := &domain.Booking{CustomerID: 1, PartyDate: day(2024, 3, 10), TeardownDate: day(2024, 3, 11), TotalAmount: dec("300")}
		createBooking(t, store, eng, b)

		entry := bookingEntries(t, store, b.ID)[0]
		stamp := entry.UpdatedOn
		require.NoError(t, eng.EntrySaved(ctx, &entry, false))
		assert.Equal(t, stamp, bookingEntries(t, store, b.ID)[0].UpdatedOn)
	})
}

func TestBookingDeleted_VoidsAllInstallments(t *testing.T) {
	ctx := context.Background()
	store, eng := setup()
	b := &domain.Booking{CustomerID: 1, PartyDate: day(2024, 3, 10), TeardownDate: day(2024, 3, 11), TotalAmount: dec("300"), InstallmentCount: 3}
	createBooking(t, store, eng, b)

	require.NoError(t, eng.BookingDeleted(ctx, b))
	require.NoError(t, store.BookingRepository.Delete(ctx, orgID, b.ID))

	entries := bookingEntries(t, store, b.ID)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, domain.EntryCancelled, e.PaymentState)
		assert.True(t, strings.HasSuffix(e.Description, domain.BookingCancelledNote))
		assert.True(t, strings.HasPrefix(e.Description, "Installment "))
	}
}

func newItem(t *testing.T, store *memory.Store, eng Engine, cost string, count int, due time.Time) *domain.InventoryItem {
	t.Helper()
	it := &domain.InventoryItem{
		OrgID:            orgID,
		Name:             "Castelo inflável",
		DailyRate:        dec("200"),
		TotalQuantity:    1,
		AcquisitionCost:  decimal.NewNullDecimal(dec(cost)),
		InstallmentCount: count,
		DueDate:          &due,
	}
	it.Normalize()
	require.NoError(t, it.Validate())
	require.NoError(t, store.ItemRepository.Create(context.Background(), it))
	require.NoError(t, eng.ItemSaved(context.Background(), nil, it))
	return it
}

func TestItemSaved(t *testing.T) {
	ctx := context.Background()

	t.Run("Expands acquisition cost", func(t *testing.T) {
		store, eng := setup()
		it := newItem(t, store, eng, "1200.00", 3, day(2024, 1, 15))

		entries := itemEntries(t, store, it.ID)
		require.Len(t, entries, 3)
		for i, e := range entries {
			assert.True(t, dec("400.00").Equal(e.Amount))
			assert.True(t, day(2024, time.Month(i+1), 15).Equal(e.DueDate))
			assert.Equal(t, domain.EntryPlanned, e.PaymentState)
			assert.Equal(t, domain.DirectionOutflow, e.Direction)
			assert.Equal(t, domain.CategoryInvestment, e.Category)
			assert.Equal(t, domain.OriginItemInvestment, e.Origin)
		}
	})

	t.Run("Skips items without cost", func(t *testing.T) {
		store, eng := setup()
		it := &domain.InventoryItem{OrgID: orgID, Name: "Pula-pula", DailyRate: dec("150")}
		require.NoError(t, store.ItemRepository.Create(ctx, it))
		require.NoError(t, eng.ItemSaved(ctx, nil, it))
		assert.Empty(t, itemEntries(t, store, it.ID))
	})

	t.Run("Unrelated edits do nothing", func(t *testing.T) {
		store, eng := setup()
		it := newItem(t, store, eng, "1200.00", 3, day(2024, 1, 15))
		before := *it
		stamps := map[int32]time.Time{}
		for _, e := range itemEntries(t, store, it.ID) {
			stamps[e.ID] = e.UpdatedOn
		}

		it.DailyRate = dec("250")
		it.Description = "new description"
		require.NoError(t, store.ItemRepository.Update(ctx, it))
		require.NoError(t, eng.ItemSaved(ctx, &before, it))

		entries := itemEntries(t, store, it.ID)
		require.Len(t, entries, 3)
		for _, e := range entries {
			assert.Equal(t, stamps[e.ID], e.UpdatedOn)
		}
	})

	t.Run("Cost change updates in place", func(t *testing.T) {
		store, eng := setup()
		it := newItem(t, store, eng, "1200.00", 3, day(2024, 1, 15))
		ids := []int32{}
		for _, e := range itemEntries(t, store, it.ID) {
			ids = append(ids, e.ID)
		}
		before := *it

		it.AcquisitionCost = decimal.NewNullDecimal(dec("1000.00"))
		require.NoError(t, eng.ItemSaved(ctx, &before, it))

		entries := itemEntries(t, store, it.ID)
		require.Len(t, entries, 3)
		assert.True(t, dec("333.33").Equal(entries[0].Amount))
		assert.True(t, dec("333.34").Equal(entries[2].Amount))
		for i, e := range entries {
			assert.Equal(t, ids[i], e.ID)
		}
	})

	t.Run("Count change supersedes old plan", func(t *testing.T) {
		store, eng := setup()
		it := newItem(t, store, eng, "1200.00", 3, day(2024, 1, 15))
		before := *it

		it.InstallmentCount = 4
		require.NoError(t, eng.ItemSaved(ctx, &before, it))

		var live, voided int
		for _, e := range itemEntries(t, store, it.ID) {
			if e.PaymentState == domain.EntryCancelled {
				voided++
				assert.True(t, strings.HasSuffix(e.Description, domain.PlanSupersededNote))
				continue
			}
			live++
			assert.True(t, dec("300").Equal(e.Amount))
			assert.Equal(t, 4, e.InstallmentCount)
		}
		assert.Equal(t, 4, live)
		assert.Equal(t, 3, voided)
	})

	t.Run("Clearing cost voids the plan", func(t *testing.T) {
		store, eng := setup()
		it := newItem(t, store, eng, "1200.00", 3, day(2024, 1, 15))
		oldGroup := itemEntries(t, store, it.ID)[0].SourceReferenceID
		before := *it

		it.AcquisitionCost = decimal.NullDecimal{}
		require.NoError(t, eng.ItemSaved(ctx, &before, it))

		entries := itemEntries(t, store, it.ID)
		require.Len(t, entries, 3)
		for _, e := range entries {
			assert.Equal(t, domain.EntryCancelled, e.PaymentState)
			assert.True(t, strings.HasSuffix(e.Description, domain.PlanSupersededNote))
		}
		totals, err := store.LedgerRepository.Totals(ctx, orgID, day(2024, 1, 1), day(2024, 12, 31))
		require.NoError(t, err)
		assert.True(t, totals.PlannedOutflow.IsZero())

		cleared := *it
		it.AcquisitionCost = decimal.NewNullDecimal(dec("600.00"))
		require.NoError(t, eng.ItemSaved(ctx, &cleared, it))

		var live int
		for _, e := range itemEntries(t, store, it.ID) {
			if e.PaymentState != domain.EntryCancelled {
				live++
				assert.True(t, dec("200").Equal(e.Amount))
				assert.NotEqual(t, oldGroup, e.SourceReferenceID)
			}
		}
		assert.Equal(t, 3, live)
	})

	t.Run("Falls back to acquisition date", func(t *testing.T) {
		store, eng := setup()
		acquired := day(2023, 12, 1)
		it := &domain.InventoryItem{OrgID: orgID, Name: "Tobogã", AcquisitionCost: decimal.NewNullDecimal(dec("90")), InstallmentCount: 1, AcquisitionDate: &acquired}
		require.NoError(t, store.ItemRepository.Create(ctx, it))
		require.NoError(t, eng.ItemSaved(ctx, nil, it))

		entries := itemEntries(t, store, it.ID)
		require.Len(t, entries, 1)
		assert.True(t, acquired.Equal(entries[0].DueDate))
	})

	t.Run("Zero installments rejected", func(t *testing.T) {
		store, eng := setup()
		due := day(2024, 1, 1)
		it := &domain.InventoryItem{OrgID: orgID, Name: "Piscina", AcquisitionCost: decimal.NewNullDecimal(dec("90")), DueDate: &due}
		require.NoError(t, store.ItemRepository.Create(ctx, it))
		err := eng.ItemSaved(ctx, nil, it)
		assert.ErrorIs(t, err, domain.ErrConsistency)
		assert.Empty(t, itemEntries(t, store, it.ID))
	})
}

func TestItemDeleted_VoidsInvestment(t *testing.T) {
	ctx := context.Background()
	store, eng := setup()
	it := newItem(t, store, eng, "600.00", 2, day(2024, 1, 15))

	require.NoError(t, eng.ItemDeleted(ctx, it))
	require.NoError(t, store.ItemRepository.Delete(ctx, orgID, it.ID))

	entries := itemEntries(t, store, it.ID)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, domain.EntryCancelled, e.PaymentState)
		assert.True(t, strings.HasSuffix(e.Description, domain.ItemCancelledNote))
	}
}

func TestEntrySaved_ManualExpansion(t *testing.T) {
	ctx := context.Background()
	manual := func() *domain.LedgerEntry {
		return &domain.LedgerEntry{
			OrgID:            orgID,
			Origin:           domain.OriginManual,
			Direction:        domain.DirectionOutflow,
			Amount:           dec("150.00"),
			Category:         "maintenance",
			PaymentState:     domain.EntryUnpaid,
			DueDate:          day(2024, 1, 31),
			InstallmentPlan:  true,
			InstallmentCount: 3,
			InstallmentIndex: 1,
			Description:      "Compressor repair",
		}
	}
	list := func(t *testing.T, store *memory.Store) []domain.LedgerEntry {
		entries, err := store.LedgerRepository.List(ctx, orgID, domain.LedgerFilter{Origin: domain.OriginManual})
		require.NoError(t, err)
		return entries
	}

	t.Run("Creates siblings", func(t *testing.T) {
		store, eng := setup()
		first := manual()
		require.NoError(t, store.LedgerRepository.Create(ctx, first))
		require.NoError(t, eng.EntrySaved(ctx, first, true))

		entries := list(t, store)
		require.Len(t, entries, 3)
		wantDates := []time.Time{day(2024, 1, 31), day(2024, 2, 29), day(2024, 3, 31)}
		for i, e := range entries {
			assert.Equal(t, i+1, e.InstallmentIndex)
			assert.True(t, wantDates[i].Equal(e.DueDate))
			assert.True(t, dec("150.00").Equal(e.Amount))
			assert.Equal(t, "maintenance", e.Category)
			assert.Equal(t, domain.EntryUnpaid, e.PaymentState)
			assert.NotEmpty(t, e.SourceReferenceID)
			assert.Equal(t, entries[0].SourceReferenceID, e.SourceReferenceID)
		}
	})

	t.Run("Only fires for new first installments", func(t *testing.T) {
		store, eng := setup()
		first := manual()
		require.NoError(t, store.LedgerRepository.Create(ctx, first))
		require.NoError(t, eng.EntrySaved(ctx, first, false))
		assert.Len(t, list(t, store), 1)

		second := manual()
		second.InstallmentIndex = 2
		require.NoError(t, store.LedgerRepository.Create(ctx, second))
		require.NoError(t, eng.EntrySaved(ctx, second, true))
		assert.Len(t, list(t, store), 2)
	})

	t.Run("No plan flag", func(t *testing.T) {
		store, eng := setup()
		first := manual()
		first.InstallmentPlan = false
		require.NoError(t, store.LedgerRepository.Create(ctx, first))
		require.NoError(t, eng.EntrySaved(ctx, first, true))
		assert.Len(t, list(t, store), 1)
	})
}
