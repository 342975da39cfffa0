package service

import (
	"context"
	"time"

	"brinquedos-backend/internal/domain"
	"brinquedos-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type reportService struct {
	ledgerRepo   repository.LedgerRepository
	bookingRepo  repository.BookingRepository
	customerRepo repository.CustomerRepository
	itemRepo     repository.ItemRepository
}

func NewReportService(
	ledgerRepo repository.LedgerRepository,
	bookingRepo repository.BookingRepository,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
) ReportService {
	return &reportService{
		ledgerRepo:   ledgerRepo,
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
	}
}

func (s *reportService) Dashboard(ctx context.Context, orgID int32, from, to time.Time) (*domain.Dashboard, error) {
	if from.After(to) {
		return nil, domain.NewValidationError("from", "must not be after to")
	}
	totals, err := s.ledgerRepo.Totals(ctx, orgID, from, to)
	if err != nil {
		return nil, err
	}
	counts, err := s.bookingRepo.CountByStatus(ctx, orgID)
	if err != nil {
		return nil, err
	}
	inRange, err := s.bookingRepo.CountInRange(ctx, orgID, from, to)
	if err != nil {
		return nil, err
	}
	active, err := s.customerRepo.List(ctx, orgID, domain.CustomerStatusActive)
	if err != nil {
		return nil, err
	}

	return &domain.Dashboard{
		PaidInflow:      totals.PaidInflow,
		PaidOutflow:     totals.PaidOutflow,
		Balance:         totals.PaidInflow.Sub(totals.PaidOutflow),
		Receivable:      totals.Receivable,
		PlannedOutflow:  totals.PlannedOutflow,
		BookingsInRange: inRange,
		StatusCount:     counts,
		ActiveCustomers: int32(len(active)),
	}, nil
}

func (s *reportService) ItemROI(ctx context.Context, orgID, itemID int32) (*domain.ItemROI, error) {
	item, err := s.itemRepo.GetByID(ctx, orgID, itemID)
	if err != nil {
		return nil, err
	}
	usage, err := s.bookingRepo.ItemUsage(ctx, orgID, itemID)
	if err != nil {
		return nil, err
	}

	revenue := item.DailyRate.Mul(decimal.NewFromInt32(usage))
	cost := decimal.Zero
	if item.AcquisitionCost.Valid {
		cost = item.AcquisitionCost.Decimal
	}
	roi := &domain.ItemROI{
		ItemID:           item.ID,
		Name:             item.Name,
		Revenue:          domain.RoundMoney(revenue),
		Cost:             cost,
		ROIPercent:       decimal.Zero,
		BookingCount:     usage,
		BreakEvenReached: revenue.GreaterThanOrEqual(cost),
	}
	if cost.IsPositive() {
		roi.ROIPercent = domain.RoundMoney(revenue.Sub(cost).Div(cost).Mul(decimal.NewFromInt(100)))
		if item.DailyRate.IsPositive() {
			roi.BreakEvenBookings = int32(cost.Div(item.DailyRate).Ceil().IntPart())
		}
	}
	return roi, nil
}
