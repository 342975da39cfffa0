// Package ledgersync keeps bookings, inventory items and ledger entries
// consistent. Application services call it explicitly around every write;
// nothing here fires on its own.
package ledgersync

import (
	"context"
	"fmt"

	"brinquedos-backend/internal/domain"
	"brinquedos-backend/internal/logger"
	"brinquedos-backend/internal/repository"
	"brinquedos-backend/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Engine interface {
	// ApplyItems derives the booking total from the attached items. Callers
	// invoke it only when the item set changed.
	ApplyItems(b *domain.Booking, items []domain.InventoryItem) error
	BookingCreated(ctx context.Context, b *domain.Booking) error
	BookingUpdated(ctx context.Context, b *domain.Booking) error
	BookingDeleted(ctx context.Context, b *domain.Booking) error
	// ItemSaved receives the persisted state before the write (nil on create)
	// and after it.
	ItemSaved(ctx context.Context, before, after *domain.InventoryItem) error
	ItemDeleted(ctx context.Context, item *domain.InventoryItem) error
	EntrySaved(ctx context.Context, e *domain.LedgerEntry, created bool) error
}

type engine struct {
	bookings       repository.BookingRepository
	ledger         repository.LedgerRepository
	depositPercent int
	newGroupID     func() string
}

func New(bookings repository.BookingRepository, ledger repository.LedgerRepository, depositPercent int) Engine {
	if depositPercent <= 0 {
		depositPercent = domain.DefaultDepositPercent
	}
	return &engine{
		bookings:       bookings,
		ledger:         ledger,
		depositPercent: depositPercent,
		newGroupID:     func() string { return uuid.NewString() },
	}
}

func (e *engine) ApplyItems(b *domain.Booking, items []domain.InventoryItem) error {
	total := b.Surcharges.Sub(b.Discounts)
	for _, it := range items {
		total = total.Add(it.DailyRate)
	}
	if total.IsNegative() {
		return domain.NewValidationError("discounts", "must not exceed item rates plus surcharges")
	}
	b.TotalAmount = domain.RoundMoney(total)
	if b.EntryAmount.IsZero() {
		b.EntryAmount = domain.Percent(b.TotalAmount, e.depositPercent)
	}
	b.Recompute()
	logger.Debug("Booking total derived", "booking_id", b.ID, "total", b.TotalAmount, "entry", b.EntryAmount)
	return nil
}

func (e *engine) BookingCreated(ctx context.Context, b *domain.Booking) error {
	n := b.Installments()
	shares, err := domain.SplitInstallments(b.TotalAmount, n)
	if err != nil {
		return err
	}
	groupID := e.newGroupID()
	bookingID, customerID := b.ID, b.CustomerID
	for i := 1; i <= n; i++ {
		entry := &domain.LedgerEntry{
			OrgID:             b.OrgID,
			BookingID:         &bookingID,
			CustomerID:        &customerID,
			Origin:            domain.OriginBooking,
			Direction:         domain.DirectionInflow,
			Amount:            shares[i-1],
			Category:          domain.CategoryRental,
			PaymentState:      domain.EntryStateFor(b.PaymentState),
			DueDate:           utils.AddMonths(b.PartyDate, i-1),
			InstallmentPlan:   n > 1,
			InstallmentCount:  n,
			InstallmentIndex:  i,
			Description:       bookingInstallmentDescription(b.ID, i, n),
			SourceReferenceID: groupID,
		}
		if err := e.ledger.Create(ctx, entry); err != nil {
			logger.Error("Failed to create booking installment", "booking_id", b.ID, "index", i, "error", err)
			return fmt.Errorf("failed to create installment %d of booking %d: %w", i, b.ID, err)
		}
		logger.Debug("Booking installment created", "booking_id", b.ID, "entry_id", entry.ID, "index", i)
		if err := e.syncBookingState(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// BookingUpdated rewrites the booking's existing installments in place. The
// number of rows is fixed at creation: the total is split across the rows
// that are still live, ordered by installment index.
func (e *engine) BookingUpdated(ctx context.Context, b *domain.Booking) error {
	entries, err := e.ledger.ListByBooking(ctx, b.OrgID, b.ID)
	if err != nil {
		return fmt.Errorf("failed to load installments of booking %d: %w", b.ID, err)
	}
	live := make([]domain.LedgerEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.PaymentState != domain.EntryCancelled {
			live = append(live, entry)
		}
	}
	if len(live) == 0 {
		return nil
	}
	shares, err := domain.SplitInstallments(b.TotalAmount, len(live))
	if err != nil {
		return err
	}
	customerID := b.CustomerID
	for i := range live {
		entry := &live[i]
		entry.DueDate = utils.AddMonths(b.PartyDate, entry.InstallmentIndex-1)
		entry.Amount = shares[i]
		entry.PaymentState = domain.EntryStateFor(b.PaymentState)
		entry.CustomerID = &customerID
		entry.Description = bookingInstallmentDescription(b.ID, entry.InstallmentIndex, entry.InstallmentCount)
		if err := e.ledger.Update(ctx, entry); err != nil {
			logger.Error("Failed to update booking installment", "booking_id", b.ID, "entry_id", entry.ID, "error", err)
			return fmt.Errorf("failed to update ledger entry %d: %w", entry.ID, err)
		}
		logger.Debug("Booking installment updated", "booking_id", b.ID, "entry_id", entry.ID, "index", entry.InstallmentIndex)
		if err := e.syncBookingState(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// BookingDeleted voids every installment of the booking. Rows are kept for
// reporting.
func (e *engine) BookingDeleted(ctx context.Context, b *domain.Booking) error {
	entries, err := e.ledger.ListByBooking(ctx, b.OrgID, b.ID)
	if err != nil {
		return fmt.Errorf("failed to load installments of booking %d: %w", b.ID, err)
	}
	return e.cancelAll(ctx, entries, domain.BookingCancelledNote)
}

func (e *engine) ItemSaved(ctx context.Context, before, after *domain.InventoryItem) error {
	if !after.AcquisitionCost.Valid {
		if before == nil || !before.AcquisitionCost.Valid {
			return nil
		}
		// Cost cleared: void the previous plan.
		entries, err := e.ledger.ListByItem(ctx, after.OrgID, after.ID)
		if err != nil {
			return fmt.Errorf("failed to load investment entries of item %d: %w", after.ID, err)
		}
		return e.cancelAll(ctx, entries, domain.PlanSupersededNote)
	}
	if !domain.InvestmentChanged(before, after) {
		logger.Debug("Item investment unchanged", "item_id", after.ID)
		return nil
	}
	start := after.InvestmentStartDate()
	if start == nil {
		return domain.NewValidationError("due_date", "required when acquisition_cost is set")
	}
	n := after.InstallmentCount
	shares, err := domain.SplitInstallments(after.AcquisitionCost.Decimal, n)
	if err != nil {
		return err
	}

	existing, err := e.ledger.ListByItem(ctx, after.OrgID, after.ID)
	if err != nil {
		return fmt.Errorf("failed to load investment entries of item %d: %w", after.ID, err)
	}
	slots := make(map[int]*domain.LedgerEntry, n)
	groupID := ""
	for i := range existing {
		entry := &existing[i]
		if entry.PaymentState == domain.EntryCancelled {
			continue
		}
		if entry.InstallmentCount != n || entry.InstallmentIndex > n || slots[entry.InstallmentIndex] != nil {
			entry.Cancel(domain.PlanSupersededNote)
			if err := e.ledger.Update(ctx, entry); err != nil {
				return fmt.Errorf("failed to void ledger entry %d: %w", entry.ID, err)
			}
			logger.Debug("Superseded investment entry voided", "item_id", after.ID, "entry_id", entry.ID)
			continue
		}
		slots[entry.InstallmentIndex] = entry
		if groupID == "" {
			groupID = entry.SourceReferenceID
		}
	}
	if groupID == "" {
		groupID = e.newGroupID()
	}

	itemID := after.ID
	for i := 1; i <= n; i++ {
		due := utils.AddMonths(*start, i-1)
		desc := investmentDescription(after.Name, i, n)
		if entry := slots[i]; entry != nil {
			entry.Amount = shares[i-1]
			entry.DueDate = due
			entry.Description = desc
			if err := e.ledger.Update(ctx, entry); err != nil {
				return fmt.Errorf("failed to update ledger entry %d: %w", entry.ID, err)
			}
			logger.Debug("Investment entry updated", "item_id", itemID, "entry_id", entry.ID, "index", i)
			continue
		}
		entry := &domain.LedgerEntry{
			OrgID:             after.OrgID,
			ItemID:            &itemID,
			Origin:            domain.OriginItemInvestment,
			Direction:         domain.DirectionOutflow,
			Amount:            shares[i-1],
			Category:          domain.CategoryInvestment,
			PaymentState:      domain.EntryPlanned,
			DueDate:           due,
			InstallmentPlan:   n > 1,
			InstallmentCount:  n,
			InstallmentIndex:  i,
			Description:       desc,
			SourceReferenceID: groupID,
		}
		if err := e.ledger.Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to create investment entry %d of item %d: %w", i, itemID, err)
		}
		logger.Debug("Investment entry created", "item_id", itemID, "entry_id", entry.ID, "index", i)
	}
	return nil
}

func (e *engine) ItemDeleted(ctx context.Context, item *domain.InventoryItem) error {
	entries, err := e.ledger.ListByItem(ctx, item.OrgID, item.ID)
	if err != nil {
		return fmt.Errorf("failed to load investment entries of item %d: %w", item.ID, err)
	}
	return e.cancelAll(ctx, entries, domain.ItemCancelledNote)
}

func (e *engine) EntrySaved(ctx context.Context, entry *domain.LedgerEntry, created bool) error {
	if created && entry.Origin == domain.OriginManual && entry.InstallmentPlan &&
		entry.InstallmentIndex == 1 && entry.InstallmentCount > 1 {
		if err := e.expandManual(ctx, entry); err != nil {
			return err
		}
	}
	return e.syncBookingState(ctx, entry)
}

// expandManual creates installments 2..n of a manual plan whose first
// installment was just saved.
func (e *engine) expandManual(ctx context.Context, first *domain.LedgerEntry) error {
	n := first.InstallmentCount
	shares, err := domain.SplitInstallments(first.Amount.Mul(decimal.NewFromInt(int64(n))), n)
	if err != nil {
		return err
	}
	if first.SourceReferenceID == "" {
		first.SourceReferenceID = e.newGroupID()
		if err := e.ledger.Update(ctx, first); err != nil {
			return fmt.Errorf("failed to tag ledger entry %d: %w", first.ID, err)
		}
	}
	for i := 2; i <= n; i++ {
		sibling := *first
		sibling.ID = 0
		sibling.InstallmentIndex = i
		sibling.Amount = shares[i-1]
		sibling.DueDate = utils.AddMonths(first.DueDate, i-1)
		if err := e.ledger.Create(ctx, &sibling); err != nil {
			return fmt.Errorf("failed to create installment %d of ledger entry %d: %w", i, first.ID, err)
		}
		logger.Debug("Manual installment created", "entry_id", sibling.ID, "first_id", first.ID, "index", i)
		if err := e.EntrySaved(ctx, &sibling, true); err != nil {
			return err
		}
	}
	return nil
}

// syncBookingState copies a booking installment's payment state onto its
// booking. The equality check is what ends the booking/entry update cycle.
func (e *engine) syncBookingState(ctx context.Context, entry *domain.LedgerEntry) error {
	if entry.Origin != domain.OriginBooking || entry.BookingID == nil {
		return nil
	}
	state, ok := domain.BookingStateFor(entry.PaymentState)
	if !ok {
		return nil
	}
	b, err := e.bookings.GetByID(ctx, entry.OrgID, *entry.BookingID)
	if err != nil {
		return err
	}
	if b.PaymentState == state {
		return nil
	}
	if err := e.bookings.UpdatePaymentState(ctx, b.OrgID, b.ID, state); err != nil {
		return fmt.Errorf("failed to propagate payment state to booking %d: %w", b.ID, err)
	}
	logger.Debug("Booking payment state synced from ledger", "booking_id", b.ID, "entry_id", entry.ID, "state", state)
	b.PaymentState = state
	return e.BookingUpdated(ctx, b)
}

func (e *engine) cancelAll(ctx context.Context, entries []domain.LedgerEntry, note string) error {
	for i := range entries {
		entry := &entries[i]
		if entry.PaymentState == domain.EntryCancelled {
			continue
		}
		entry.Cancel(note)
		if err := e.ledger.Update(ctx, entry); err != nil {
			logger.Error("Failed to void ledger entry", "entry_id", entry.ID, "error", err)
			return fmt.Errorf("failed to void ledger entry %d: %w", entry.ID, err)
		}
		logger.Debug("Ledger entry voided", "entry_id", entry.ID, "org_id", entry.OrgID)
	}
	return nil
}

func bookingInstallmentDescription(bookingID int32, i, n int) string {
	return fmt.Sprintf("Installment %d/%d of booking %d", i, n, bookingID)
}

func investmentDescription(name string, i, n int) string {
	return fmt.Sprintf("Investment installment %d/%d: %s", i, n, name)
}
