package service

import (
	"context"
	"fmt"

	"brinquedos-backend/internal/domain"
	"brinquedos-backend/internal/ledgersync"
	"brinquedos-backend/internal/logger"
	"brinquedos-backend/internal/repository"
)

type ledgerService struct {
	ledgerRepo   repository.LedgerRepository
	customerRepo repository.CustomerRepository
	bookingRepo  repository.BookingRepository
	engine       ledgersync.Engine
}

func NewLedgerService(ledgerRepo repository.LedgerRepository, customerRepo repository.CustomerRepository, bookingRepo repository.BookingRepository, engine ledgersync.Engine) LedgerService {
	return &ledgerService{
		ledgerRepo:   ledgerRepo,
		customerRepo: customerRepo,
		bookingRepo:  bookingRepo,
		engine:       engine,
	}
}

// CreateEntry records a manual entry. Entries owned by bookings and items are
// produced by the synchronization engine only.
func (s *ledgerService) CreateEntry(ctx context.Context, e *domain.LedgerEntry) error {
	logger.EnterMethod("ledgerService.CreateEntry", "orgID", e.OrgID, "installments", e.InstallmentCount)

	e.Normalize()
	if e.Origin != domain.OriginManual {
		err := domain.NewValidationError("origin", "only manual entries can be created")
		logger.ExitMethodWithError("ledgerService.CreateEntry", err)
		return err
	}
	if err := e.Validate(); err != nil {
		logger.ExitMethodWithError("ledgerService.CreateEntry", err)
		return err
	}
	if e.InstallmentPlan && e.InstallmentCount > 1 && e.InstallmentIndex != 1 {
		err := domain.NewValidationError("installment_index", "an installment plan starts at index 1")
		logger.ExitMethodWithError("ledgerService.CreateEntry", err)
		return err
	}
	if e.BookingID != nil || e.ItemID != nil {
		err := domain.NewValidationError("origin", "manual entries cannot reference bookings or items")
		logger.ExitMethodWithError("ledgerService.CreateEntry", err)
		return err
	}
	if e.CustomerID != nil {
		if _, err := s.customerRepo.GetByID(ctx, e.OrgID, *e.CustomerID); err != nil {
			logger.ExitMethodWithError("ledgerService.CreateEntry", err)
			return err
		}
	}

	if err := s.ledgerRepo.Create(ctx, e); err != nil {
		logger.ExitMethodWithError("ledgerService.CreateEntry", err)
		return err
	}
	if err := s.engine.EntrySaved(ctx, e, true); err != nil {
		logger.ExitMethodWithError("ledgerService.CreateEntry", err)
		return err
	}

	logger.ExitMethod("ledgerService.CreateEntry", "entryID", e.ID)
	return nil
}

func (s *ledgerService) GetEntry(ctx context.Context, orgID, id int32) (*domain.LedgerEntry, error) {
	return s.ledgerRepo.GetByID(ctx, orgID, id)
}

// UpdateEntry saves e. For generated entries only the payment state and the
// description are taken from e; every other field keeps its stored value.
func (s *ledgerService) UpdateEntry(ctx context.Context, e *domain.LedgerEntry) error {
	existing, err := s.ledgerRepo.GetByID(ctx, e.OrgID, e.ID)
	if err != nil {
		return err
	}

	if existing.Generated() {
		if existing.PaymentState == domain.EntryCancelled {
			return domain.NewValidationError("payment_state", "voided entries cannot be changed")
		}
		e.Normalize()
		if e.Origin != existing.Origin || !e.Amount.Equal(existing.Amount) || !e.DueDate.Equal(existing.DueDate) ||
			e.Direction != existing.Direction || e.Category != existing.Category {
			return domain.NewValidationError("origin", "generated entries only accept payment_state and description changes")
		}
		if !existing.Origin.AllowsState(e.PaymentState) {
			return domain.NewValidationError("payment_state", fmt.Sprintf("%q is not allowed for %s entries", e.PaymentState, existing.Origin))
		}
		if existing.Origin == domain.OriginBooking && existing.BookingID != nil {
			if _, err := s.bookingRepo.GetByID(ctx, existing.OrgID, *existing.BookingID); err != nil {
				return err
			}
		}
		updated := *existing
		updated.PaymentState = e.PaymentState
		updated.Description = e.Description
		*e = updated
	} else {
		e.Normalize()
		if e.Origin != domain.OriginManual {
			return domain.NewValidationError("origin", "cannot change the origin of a manual entry")
		}
		e.SourceReferenceID = existing.SourceReferenceID
		e.CreatedOn = existing.CreatedOn
	}
	if err := e.Validate(); err != nil {
		return err
	}

	if err := s.ledgerRepo.Update(ctx, e); err != nil {
		return err
	}
	return s.engine.EntrySaved(ctx, e, false)
}

func (s *ledgerService) DeleteEntry(ctx context.Context, orgID, id int32) error {
	existing, err := s.ledgerRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return err
	}
	if existing.Generated() {
		return domain.NewValidationError("origin", "generated entries cannot be deleted")
	}
	return s.ledgerRepo.Delete(ctx, orgID, id)
}

func (s *ledgerService) ListEntries(ctx context.Context, orgID int32, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, domain.NewValidationError("from", "must not be after to")
	}
	return s.ledgerRepo.List(ctx, orgID, filter)
}
