package repository

import (
	"context"
	"time"

	"brinquedos-backend/internal/domain"
)

// Every method that touches tenant data takes the organization id and must
// never return or modify rows of another organization.

type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id int32) (*domain.Organization, error)
	GetByName(ctx context.Context, name string) (*domain.Organization, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, orgID, id int32) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, orgID, id int32) error
	List(ctx context.Context, orgID int32, status domain.CustomerStatus) ([]domain.Customer, error)
}

type ItemRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	GetByID(ctx context.Context, orgID, id int32) (*domain.InventoryItem, error)
	GetByIDs(ctx context.Context, orgID int32, ids []int32) ([]domain.InventoryItem, error)
	Update(ctx context.Context, item *domain.InventoryItem) error
	Delete(ctx context.Context, orgID, id int32) error
	List(ctx context.Context, orgID int32) ([]domain.InventoryItem, error)
	// ListAvailable returns active items not attached to an unfinished booking
	// overlapping [from, to].
	ListAvailable(ctx context.Context, orgID int32, from, to time.Time) ([]domain.InventoryItem, error)
}

type BookingRepository interface {
	// Create and Update recompute the remaining amount before writing.
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, orgID, id int32) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	// UpdatePaymentState writes only the payment_state column.
	UpdatePaymentState(ctx context.Context, orgID, id int32, state domain.BookingPaymentState) error
	UpdateStatus(ctx context.Context, orgID, id int32, status domain.BookingStatus) error
	Delete(ctx context.Context, orgID, id int32) error
	List(ctx context.Context, orgID int32, status domain.BookingStatus) ([]domain.Booking, error)
	ListByPartyDate(ctx context.Context, orgID int32, day time.Time) ([]domain.Booking, error)
	// ListByStatusAllOrgs feeds the status sweep, which runs across tenants.
	ListByStatusAllOrgs(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error)
	CountByStatus(ctx context.Context, orgID int32) (map[domain.BookingStatus]int32, error)
	CountInRange(ctx context.Context, orgID int32, from, to time.Time) (int32, error)
	CountByCustomer(ctx context.Context, orgID, customerID int32) (int32, error)
	// ItemUsage returns how many bookings reference the item.
	ItemUsage(ctx context.Context, orgID, itemID int32) (int32, error)
}

type LedgerRepository interface {
	Create(ctx context.Context, e *domain.LedgerEntry) error
	GetByID(ctx context.Context, orgID, id int32) (*domain.LedgerEntry, error)
	Update(ctx context.Context, e *domain.LedgerEntry) error
	Delete(ctx context.Context, orgID, id int32) error
	// ListByBooking returns the booking's generated entries ordered by installment index.
	ListByBooking(ctx context.Context, orgID, bookingID int32) ([]domain.LedgerEntry, error)
	// ListByItem returns the item's investment entries ordered by installment count, then index.
	ListByItem(ctx context.Context, orgID, itemID int32) ([]domain.LedgerEntry, error)
	List(ctx context.Context, orgID int32, filter domain.LedgerFilter) ([]domain.LedgerEntry, error)
	Totals(ctx context.Context, orgID int32, from, to time.Time) (*domain.LedgerTotals, error)
}

// Store bundles the repositories of one storage backend.
type Store struct {
	OrganizationRepository
	UserRepository
	CustomerRepository
	ItemRepository
	BookingRepository
	LedgerRepository
}
