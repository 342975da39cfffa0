package service

import (
	"context"
	"time"

	"brinquedos-backend/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.User, string, string, error) // user, access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
	// ProvisionAdmin creates the organization (if needed) and an admin user.
	// The boolean is false when the username already exists.
	ProvisionAdmin(ctx context.Context, orgName, username, email, password string) (*domain.User, bool, error)
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, c *domain.Customer) error
	GetCustomer(ctx context.Context, orgID, id int32) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, c *domain.Customer) error
	DeleteCustomer(ctx context.Context, orgID, id int32) error
	ListCustomers(ctx context.Context, orgID int32, status domain.CustomerStatus) ([]domain.Customer, error)
}

type ItemService interface {
	CreateItem(ctx context.Context, item *domain.InventoryItem) error
	GetItem(ctx context.Context, orgID, id int32) (*domain.InventoryItem, error)
	UpdateItem(ctx context.Context, item *domain.InventoryItem) error
	DeleteItem(ctx context.Context, orgID, id int32) error
	ListItems(ctx context.Context, orgID int32) ([]domain.InventoryItem, error)
	ListAvailableItems(ctx context.Context, orgID int32, from, to time.Time) ([]domain.InventoryItem, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, b *domain.Booking) error
	GetBooking(ctx context.Context, orgID, id int32) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, b *domain.Booking) error
	ChangeStatus(ctx context.Context, orgID, id int32, status domain.BookingStatus) (*domain.Booking, error)
	ChangePaymentState(ctx context.Context, orgID, id int32, state domain.BookingPaymentState) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, orgID, id int32) error
	ListBookings(ctx context.Context, orgID int32, status domain.BookingStatus) ([]domain.Booking, error)
	ListBookingsByDate(ctx context.Context, orgID int32, day time.Time) ([]domain.Booking, error)
}

type LedgerService interface {
	CreateEntry(ctx context.Context, e *domain.LedgerEntry) error
	GetEntry(ctx context.Context, orgID, id int32) (*domain.LedgerEntry, error)
	UpdateEntry(ctx context.Context, e *domain.LedgerEntry) error
	DeleteEntry(ctx context.Context, orgID, id int32) error
	ListEntries(ctx context.Context, orgID int32, filter domain.LedgerFilter) ([]domain.LedgerEntry, error)
}

type ReportService interface {
	Dashboard(ctx context.Context, orgID int32, from, to time.Time) (*domain.Dashboard, error)
	ItemROI(ctx context.Context, orgID, itemID int32) (*domain.ItemROI, error)
}
