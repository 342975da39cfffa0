package memory

import (
	"context"
	"sort"
	"time"

	"brinquedos-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type orgRepository struct{ st *state }

func (r *orgRepository) Create(ctx context.Context, org *domain.Organization) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	org.ID = r.st.id()
	org.CreatedOn = r.st.now()
	r.st.orgs[org.ID] = *org
	return nil
}

func (r *orgRepository) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	org, ok := r.st.orgs[id]
	if !ok {
		return nil, domain.NewReferenceError("organization", id)
	}
	return &org, nil
}

func (r *orgRepository) GetByName(ctx context.Context, name string) (*domain.Organization, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, org := range r.st.orgs {
		if org.Name == name {
			o := org
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

type userRepository struct{ st *state }

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	user.ID = r.st.id()
	user.CreatedOn = r.st.now()
	r.st.users[user.ID] = *user
	return nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, u := range r.st.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, domain.ErrNotFound
}

type customerRepository struct{ st *state }

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, existing := range r.st.customers {
		if existing.OrgID == c.OrgID && existing.Document == c.Document {
			return domain.NewValidationError("document", "already registered")
		}
	}
	c.ID = r.st.id()
	c.CreatedOn = r.st.now()
	c.UpdatedOn = c.CreatedOn
	r.st.customers[c.ID] = *c
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, orgID, id int32) (*domain.Customer, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	c, ok := r.st.customers[id]
	if !ok || c.OrgID != orgID {
		return nil, domain.NewReferenceError("customer", id)
	}
	return &c, nil
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	existing, ok := r.st.customers[c.ID]
	if !ok || existing.OrgID != c.OrgID {
		return domain.NewReferenceError("customer", c.ID)
	}
	c.CreatedOn = existing.CreatedOn
	c.UpdatedOn = r.st.now()
	r.st.customers[c.ID] = *c
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, orgID, id int32) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	c, ok := r.st.customers[id]
	if !ok || c.OrgID != orgID {
		return domain.NewReferenceError("customer", id)
	}
	delete(r.st.customers, id)
	return nil
}

func (r *customerRepository) List(ctx context.Context, orgID int32, status domain.CustomerStatus) ([]domain.Customer, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []domain.Customer
	for _, c := range r.st.customers {
		if c.OrgID == orgID && (status == "" || c.Status == status) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type itemRepository struct{ st *state }

func copyItem(it domain.InventoryItem) domain.InventoryItem {
	it.DueDate = cloneTime(it.DueDate)
	it.AcquisitionDate = cloneTime(it.AcquisitionDate)
	return it
}

func (r *itemRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	item.ID = r.st.id()
	item.CreatedOn = r.st.now()
	item.UpdatedOn = item.CreatedOn
	r.st.items[item.ID] = copyItem(*item)
	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, orgID, id int32) (*domain.InventoryItem, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	it, ok := r.st.items[id]
	if !ok || it.OrgID != orgID {
		return nil, domain.NewReferenceError("item", id)
	}
	it = copyItem(it)
	return &it, nil
}

func (r *itemRepository) GetByIDs(ctx context.Context, orgID int32, ids []int32) ([]domain.InventoryItem, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	out := make([]domain.InventoryItem, 0, len(ids))
	for _, id := range ids {
		it, ok := r.st.items[id]
		if !ok || it.OrgID != orgID {
			return nil, domain.NewReferenceError("item", id)
		}
		out = append(out, copyItem(it))
	}
	return out, nil
}

func (r *itemRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	existing, ok := r.st.items[item.ID]
	if !ok || existing.OrgID != item.OrgID {
		return domain.NewReferenceError("item", item.ID)
	}
	item.CreatedOn = existing.CreatedOn
	item.UpdatedOn = r.st.now()
	r.st.items[item.ID] = copyItem(*item)
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, orgID, id int32) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	it, ok := r.st.items[id]
	if !ok || it.OrgID != orgID {
		return domain.NewReferenceError("item", id)
	}
	delete(r.st.items, id)
	for bid, b := range r.st.bookings {
		kept := b.ItemIDs[:0:0]
		for _, iid := range b.ItemIDs {
			if iid != id {
				kept = append(kept, iid)
			}
		}
		b.ItemIDs = kept
		r.st.bookings[bid] = b
	}
	return nil
}

func (r *itemRepository) List(ctx context.Context, orgID int32) ([]domain.InventoryItem, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []domain.InventoryItem
	for _, it := range r.st.items {
		if it.OrgID == orgID {
			out = append(out, copyItem(it))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *itemRepository) ListAvailable(ctx context.Context, orgID int32, from, to time.Time) ([]domain.InventoryItem, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	busy := map[int32]bool{}
	for _, b := range r.st.bookings {
		if b.OrgID != orgID || b.Status == domain.BookingStatusFinalized {
			continue
		}
		if !b.PartyDate.After(to) && !b.TeardownDate.Before(from) {
			for _, id := range b.ItemIDs {
				busy[id] = true
			}
		}
	}
	var out []domain.InventoryItem
	for _, it := range r.st.items {
		if it.OrgID == orgID && it.Status == domain.ItemStatusActive && !busy[it.ID] {
			out = append(out, copyItem(it))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type bookingRepository struct{ st *state }

func copyBooking(b domain.Booking) domain.Booking {
	b.ItemIDs = cloneIDs(b.ItemIDs)
	return b
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	b.Recompute()
	b.ID = r.st.id()
	b.CreatedOn = r.st.now()
	b.UpdatedOn = b.CreatedOn
	r.st.bookings[b.ID] = copyBooking(*b)
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, orgID, id int32) (*domain.Booking, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	b, ok := r.st.bookings[id]
	if !ok || b.OrgID != orgID {
		return nil, domain.NewReferenceError("booking", id)
	}
	b = copyBooking(b)
	return &b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	existing, ok := r.st.bookings[b.ID]
	if !ok || existing.OrgID != b.OrgID {
		return domain.NewReferenceError("booking", b.ID)
	}
	b.Recompute()
	b.CreatedOn = existing.CreatedOn
	b.UpdatedOn = r.st.now()
	r.st.bookings[b.ID] = copyBooking(*b)
	return nil
}

func (r *bookingRepository) UpdatePaymentState(ctx context.Context, orgID, id int32, s domain.BookingPaymentState) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	b, ok := r.st.bookings[id]
	if !ok || b.OrgID != orgID {
		return domain.NewReferenceError("booking", id)
	}
	b.PaymentState = s
	b.UpdatedOn = r.st.now()
	r.st.bookings[id] = b
	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, orgID, id int32, s domain.BookingStatus) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	b, ok := r.st.bookings[id]
	if !ok || b.OrgID != orgID {
		return domain.NewReferenceError("booking", id)
	}
	b.Status = s
	b.UpdatedOn = r.st.now()
	r.st.bookings[id] = b
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, orgID, id int32) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	b, ok := r.st.bookings[id]
	if !ok || b.OrgID != orgID {
		return domain.NewReferenceError("booking", id)
	}
	delete(r.st.bookings, id)
	return nil
}

func (r *bookingRepository) filter(keep func(domain.Booking) bool) []domain.Booking {
	var out []domain.Booking
	for _, b := range r.st.bookings {
		if keep(b) {
			out = append(out, copyBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PartyDate.Equal(out[j].PartyDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].PartyDate.Before(out[j].PartyDate)
	})
	return out
}

func (r *bookingRepository) List(ctx context.Context, orgID int32, status domain.BookingStatus) ([]domain.Booking, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.filter(func(b domain.Booking) bool {
		return b.OrgID == orgID && (status == "" || b.Status == status)
	}), nil
}

func (r *bookingRepository) ListByPartyDate(ctx context.Context, orgID int32, day time.Time) ([]domain.Booking, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	y, m, d := day.Date()
	return r.filter(func(b domain.Booking) bool {
		by, bm, bd := b.PartyDate.Date()
		return b.OrgID == orgID && by == y && bm == m && bd == d
	}), nil
}

func (r *bookingRepository) ListByStatusAllOrgs(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.filter(func(b domain.Booking) bool { return b.Status == status }), nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context, orgID int32) (map[domain.BookingStatus]int32, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	counts := map[domain.BookingStatus]int32{}
	for _, b := range r.st.bookings {
		if b.OrgID == orgID {
			counts[b.Status]++
		}
	}
	return counts, nil
}

func (r *bookingRepository) CountInRange(ctx context.Context, orgID int32, from, to time.Time) (int32, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var n int32
	for _, b := range r.st.bookings {
		if b.OrgID == orgID && inRange(b.PartyDate, &from, &to) {
			n++
		}
	}
	return n, nil
}

func (r *bookingRepository) CountByCustomer(ctx context.Context, orgID, customerID int32) (int32, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var n int32
	for _, b := range r.st.bookings {
		if b.OrgID == orgID && b.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

func (r *bookingRepository) ItemUsage(ctx context.Context, orgID, itemID int32) (int32, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var n int32
	for _, b := range r.st.bookings {
		if b.OrgID != orgID {
			continue
		}
		for _, id := range b.ItemIDs {
			if id == itemID {
				n++
				break
			}
		}
	}
	return n, nil
}

type ledgerRepository struct{ st *state }

func copyEntry(e domain.LedgerEntry) domain.LedgerEntry {
	e.BookingID = cloneInt(e.BookingID)
	e.CustomerID = cloneInt(e.CustomerID)
	e.ItemID = cloneInt(e.ItemID)
	return e
}

func (r *ledgerRepository) Create(ctx context.Context, e *domain.LedgerEntry) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	e.ID = r.st.id()
	e.CreatedOn = r.st.now()
	e.UpdatedOn = e.CreatedOn
	r.st.entries[e.ID] = copyEntry(*e)
	return nil
}

func (r *ledgerRepository) GetByID(ctx context.Context, orgID, id int32) (*domain.LedgerEntry, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	e, ok := r.st.entries[id]
	if !ok || e.OrgID != orgID {
		return nil, domain.NewReferenceError("ledger entry", id)
	}
	e = copyEntry(e)
	return &e, nil
}

func (r *ledgerRepository) Update(ctx context.Context, e *domain.LedgerEntry) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	existing, ok := r.st.entries[e.ID]
	if !ok || existing.OrgID != e.OrgID {
		return domain.NewReferenceError("ledger entry", e.ID)
	}
	e.CreatedOn = existing.CreatedOn
	e.UpdatedOn = r.st.now()
	r.st.entries[e.ID] = copyEntry(*e)
	return nil
}

func (r *ledgerRepository) Delete(ctx context.Context, orgID, id int32) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	e, ok := r.st.entries[id]
	if !ok || e.OrgID != orgID {
		return domain.NewReferenceError("ledger entry", id)
	}
	delete(r.st.entries, id)
	return nil
}

func (r *ledgerRepository) collect(keep func(domain.LedgerEntry) bool, less func(a, b domain.LedgerEntry) bool) []domain.LedgerEntry {
	var out []domain.LedgerEntry
	for _, e := range r.st.entries {
		if keep(e) {
			out = append(out, copyEntry(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func byIndex(a, b domain.LedgerEntry) bool {
	if a.InstallmentIndex == b.InstallmentIndex {
		return a.ID < b.ID
	}
	return a.InstallmentIndex < b.InstallmentIndex
}

func (r *ledgerRepository) ListByBooking(ctx context.Context, orgID, bookingID int32) ([]domain.LedgerEntry, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.collect(func(e domain.LedgerEntry) bool {
		return e.OrgID == orgID && e.Origin == domain.OriginBooking && e.BookingID != nil && *e.BookingID == bookingID
	}, byIndex), nil
}

func (r *ledgerRepository) ListByItem(ctx context.Context, orgID, itemID int32) ([]domain.LedgerEntry, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.collect(func(e domain.LedgerEntry) bool {
		return e.OrgID == orgID && e.Origin == domain.OriginItemInvestment && e.ItemID != nil && *e.ItemID == itemID
	}, func(a, b domain.LedgerEntry) bool {
		if a.InstallmentCount != b.InstallmentCount {
			return a.InstallmentCount < b.InstallmentCount
		}
		return byIndex(a, b)
	}), nil
}

func (r *ledgerRepository) List(ctx context.Context, orgID int32, f domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return r.collect(func(e domain.LedgerEntry) bool {
		switch {
		case e.OrgID != orgID,
			!inRange(e.DueDate, f.From, f.To),
			f.Origin != "" && e.Origin != f.Origin,
			f.Direction != "" && e.Direction != f.Direction,
			f.PaymentState != "" && e.PaymentState != f.PaymentState,
			f.BookingID != nil && (e.BookingID == nil || *e.BookingID != *f.BookingID),
			f.ItemID != nil && (e.ItemID == nil || *e.ItemID != *f.ItemID):
			return false
		}
		return true
	}, func(a, b domain.LedgerEntry) bool {
		if a.DueDate.Equal(b.DueDate) {
			return a.ID < b.ID
		}
		return a.DueDate.Before(b.DueDate)
	}), nil
}

func (r *ledgerRepository) Totals(ctx context.Context, orgID int32, from, to time.Time) (*domain.LedgerTotals, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	t := &domain.LedgerTotals{
		PaidInflow:     decimal.Zero,
		PaidOutflow:    decimal.Zero,
		Receivable:     decimal.Zero,
		PlannedOutflow: decimal.Zero,
	}
	for _, e := range r.st.entries {
		if e.OrgID != orgID || !inRange(e.DueDate, &from, &to) {
			continue
		}
		switch {
		case e.Direction == domain.DirectionInflow && e.PaymentState == domain.EntryPaid:
			t.PaidInflow = t.PaidInflow.Add(e.Amount)
		case e.Direction == domain.DirectionInflow && (e.PaymentState == domain.EntryUnpaid || e.PaymentState == domain.EntryDeposit):
			t.Receivable = t.Receivable.Add(e.Amount)
		case e.Direction == domain.DirectionOutflow && e.PaymentState == domain.EntryPaid:
			t.PaidOutflow = t.PaidOutflow.Add(e.Amount)
		case e.Direction == domain.DirectionOutflow && (e.PaymentState == domain.EntryPlanned || e.PaymentState == domain.EntryUnpaid):
			t.PlannedOutflow = t.PlannedOutflow.Add(e.Amount)
		}
	}
	return t, nil
}
