package service

import (
	"context"
	"time"

	"brinquedos-backend/internal/domain"
	"brinquedos-backend/internal/ledgersync"
	"brinquedos-backend/internal/logger"
	"brinquedos-backend/internal/repository"
)

type bookingService struct {
	bookingRepo  repository.BookingRepository
	customerRepo repository.CustomerRepository
	itemRepo     repository.ItemRepository
	engine       ledgersync.Engine
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
	engine ledgersync.Engine,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		engine:       engine,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, b *domain.Booking) error {
	logger.EnterMethod("bookingService.CreateBooking", "orgID", b.OrgID, "customerID", b.CustomerID)

	b.ItemIDs = uniqueIDs(b.ItemIDs)
	b.Normalize()
	if err := b.Validate(); err != nil {
		logger.ExitMethodWithError("bookingService.CreateBooking", err)
		return err
	}
	if _, err := s.customerRepo.GetByID(ctx, b.OrgID, b.CustomerID); err != nil {
		logger.ExitMethodWithError("bookingService.CreateBooking", err)
		return err
	}
	if len(b.ItemIDs) > 0 {
		if err := s.applyItems(ctx, b); err != nil {
			logger.ExitMethodWithError("bookingService.CreateBooking", err)
			return err
		}
	}

	if err := s.bookingRepo.Create(ctx, b); err != nil {
		logger.ExitMethodWithError("bookingService.CreateBooking", err)
		return err
	}
	if err := s.engine.BookingCreated(ctx, b); err != nil {
		logger.Error("Booking ledger expansion failed", "booking_id", b.ID, "org_id", b.OrgID, "error", err)
		return err
	}

	logger.ExitMethod("bookingService.CreateBooking", "bookingID", b.ID, "total", b.TotalAmount)
	return nil
}

func (s *bookingService) GetBooking(ctx context.Context, orgID, id int32) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, orgID, id)
}

func (s *bookingService) UpdateBooking(ctx context.Context, b *domain.Booking) error {
	logger.EnterMethod("bookingService.UpdateBooking", "orgID", b.OrgID, "bookingID", b.ID)

	existing, err := s.bookingRepo.GetByID(ctx, b.OrgID, b.ID)
	if err != nil {
		logger.ExitMethodWithError("bookingService.UpdateBooking", err)
		return err
	}
	b.ItemIDs = uniqueIDs(b.ItemIDs)
	b.Normalize()
	if err := b.Validate(); err != nil {
		logger.ExitMethodWithError("bookingService.UpdateBooking", err)
		return err
	}
	if b.CustomerID != existing.CustomerID {
		if _, err := s.customerRepo.GetByID(ctx, b.OrgID, b.CustomerID); err != nil {
			logger.ExitMethodWithError("bookingService.UpdateBooking", err)
			return err
		}
	}
	if !domain.SameItems(existing.ItemIDs, b.ItemIDs) {
		if err := s.applyItems(ctx, b); err != nil {
			logger.ExitMethodWithError("bookingService.UpdateBooking", err)
			return err
		}
	}

	if err := s.bookingRepo.Update(ctx, b); err != nil {
		logger.ExitMethodWithError("bookingService.UpdateBooking", err)
		return err
	}
	if err := s.engine.BookingUpdated(ctx, b); err != nil {
		logger.Error("Booking ledger sync failed", "booking_id", b.ID, "org_id", b.OrgID, "error", err)
		return err
	}

	logger.ExitMethod("bookingService.UpdateBooking", "bookingID", b.ID)
	return nil
}

// applyItems loads the attached items and derives the booking total from them.
func (s *bookingService) applyItems(ctx context.Context, b *domain.Booking) error {
	items, err := s.itemRepo.GetByIDs(ctx, b.OrgID, b.ItemIDs)
	if err != nil {
		return err
	}
	return s.engine.ApplyItems(b, items)
}

func (s *bookingService) ChangeStatus(ctx context.Context, orgID, id int32, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("status", "invalid status")
	}
	b, err := s.bookingRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if b.Status == status {
		return b, nil
	}
	if err := s.bookingRepo.UpdateStatus(ctx, orgID, id, status); err != nil {
		return nil, err
	}
	logger.Info("Booking status changed", "booking_id", id, "from", b.Status, "to", status)
	b.Status = status
	return b, nil
}

func (s *bookingService) ChangePaymentState(ctx context.Context, orgID, id int32, state domain.BookingPaymentState) (*domain.Booking, error) {
	if !state.Valid() {
		return nil, domain.NewValidationError("payment_state", "invalid payment state")
	}
	b, err := s.bookingRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if b.PaymentState == state {
		return b, nil
	}
	if err := s.bookingRepo.UpdatePaymentState(ctx, orgID, id, state); err != nil {
		return nil, err
	}
	b.PaymentState = state
	if err := s.engine.BookingUpdated(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBooking voids the booking's ledger entries, then removes the booking.
func (s *bookingService) DeleteBooking(ctx context.Context, orgID, id int32) error {
	b, err := s.bookingRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}
	if err := s.engine.BookingDeleted(ctx, b); err != nil {
		return err
	}
	return s.bookingRepo.Delete(ctx, orgID, id)
}

func (s *bookingService) ListBookings(ctx context.Context, orgID int32, status domain.BookingStatus) ([]domain.Booking, error) {
	if status != "" && !status.Valid() {
		return nil, domain.NewValidationError("status", "invalid status")
	}
	return s.bookingRepo.List(ctx, orgID, status)
}

func (s *bookingService) ListBookingsByDate(ctx context.Context, orgID int32, day time.Time) ([]domain.Booking, error) {
	return s.bookingRepo.ListByPartyDate(ctx, orgID, day)
}

func uniqueIDs(ids []int32) []int32 {
	if len(ids) == 0 {
		return ids
	}
	seen := make(map[int32]bool, len(ids))
	out := make([]int32, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
