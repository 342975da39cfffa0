package domain

import "github.com/shopspring/decimal"

type Dashboard struct {
	PaidInflow      decimal.Decimal         `json:"paid_inflow"`
	PaidOutflow     decimal.Decimal         `json:"paid_outflow"`
	Balance         decimal.Decimal         `json:"balance"`
	Receivable      decimal.Decimal         `json:"receivable"`
	PlannedOutflow  decimal.Decimal         `json:"planned_outflow"`
	BookingsInRange int32                   `json:"bookings_in_range"`
	StatusCount     map[BookingStatus]int32 `json:"status_count"`
	ActiveCustomers int32                   `json:"active_customers"`
}

type ItemROI struct {
	ItemID            int32           `json:"item_id"`
	Name              string          `json:"name"`
	Revenue           decimal.Decimal `json:"revenue"`
	Cost              decimal.Decimal `json:"cost"`
	ROIPercent        decimal.Decimal `json:"roi_percent"`
	BookingCount      int32           `json:"booking_count"`
	BreakEvenBookings int32           `json:"break_even_bookings"`
	BreakEvenReached  bool            `json:"break_even_reached"`
}

// LedgerTotals is the raw aggregate the reporting layer reads from storage.
type LedgerTotals struct {
	PaidInflow     decimal.Decimal
	PaidOutflow    decimal.Decimal
	Receivable     decimal.Decimal
	PlannedOutflow decimal.Decimal
}
