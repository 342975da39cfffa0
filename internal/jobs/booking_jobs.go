package jobs

import (
	"context"
	"time"

	"brinquedos-backend/internal/domain"
	"brinquedos-backend/internal/logger"
	"brinquedos-backend/internal/utils"
)

// AdvanceTeardownStatus moves set_up bookings whose teardown moment has
// passed to to_collect.
func (jr *JobRunner) AdvanceTeardownStatus() {
	jr.runWithRecovery("AdvanceTeardownStatus", func() {
		n, err := jr.advanceTeardownStatus(context.Background())
		if err != nil {
			logger.Error("Failed to advance teardown status", "error", err, "advanced", n)
			return
		}
		logger.Info("Bookings ready to collect", "count", n)
	})
}

func (jr *JobRunner) advanceTeardownStatus(ctx context.Context) (int, error) {
	bookings, err := jr.bookings.ListByStatusAllOrgs(ctx, domain.BookingStatusSetUp)
	if err != nil {
		return 0, err
	}

	now := jr.now().In(jr.loc)
	advanced := 0
	for _, b := range bookings {
		teardown, err := utils.CombineDateTime(b.TeardownDate, b.TeardownTime, jr.loc)
		if err != nil {
			logger.Warn("Skipping booking with unreadable teardown time",
				"booking_id", b.ID, "org_id", b.OrgID, "teardown_time", b.TeardownTime)
			continue
		}
		if now.Before(teardown) {
			continue
		}
		if err := jr.bookings.UpdateStatus(ctx, b.OrgID, b.ID, domain.BookingStatusToCollect); err != nil {
			return advanced, err
		}
		logger.Debug("Booking moved to to_collect",
			"booking_id", b.ID,
			"org_id", b.OrgID,
			"teardown", teardown.Format(time.RFC3339))
		advanced++
	}
	return advanced, nil
}

// LogTodayParties logs how many parties happen today, per organization.
func (jr *JobRunner) LogTodayParties() {
	jr.runWithRecovery("LogTodayParties", func() {
		perOrg, err := jr.todayParties(context.Background())
		if err != nil {
			logger.Error("Failed to count today's parties", "error", err)
			return
		}
		total := 0
		for orgID, n := range perOrg {
			logger.Info("Parties today", "org_id", orgID, "count", n)
			total += n
		}
		logger.Info("Parties today across organizations", "count", total)
	})
}

func (jr *JobRunner) todayParties(ctx context.Context) (map[int32]int, error) {
	now := jr.now().In(jr.loc)
	y, m, d := now.Date()

	perOrg := map[int32]int{}
	for _, status := range []domain.BookingStatus{
		domain.BookingStatusPending,
		domain.BookingStatusConfirmed,
		domain.BookingStatusSetUp,
		domain.BookingStatusToCollect,
		domain.BookingStatusFinalized,
	} {
		bookings, err := jr.bookings.ListByStatusAllOrgs(ctx, status)
		if err != nil {
			return nil, err
		}
		for _, b := range bookings {
			by, bm, bd := b.PartyDate.Date()
			if by == y && bm == m && bd == d {
				perOrg[b.OrgID]++
			}
		}
	}
	return perOrg, nil
}
