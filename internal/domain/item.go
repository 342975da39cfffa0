package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "active"
	ItemStatusInactive ItemStatus = "inactive"
)

type Voltage string

const (
	Voltage110    Voltage = "110v"
	Voltage220    Voltage = "220v"
	VoltageBivolt Voltage = "bivolt"
)

// InventoryItem is a rentable unit. The acquisition fields are optional; when
// AcquisitionCost is set the item owns a group of investment ledger entries.
type InventoryItem struct {
	ID                int32           `json:"id"`
	OrgID             int32           `json:"org_id"`
	Name              string          `json:"name"`
	DailyRate         decimal.Decimal `json:"daily_rate"`
	TotalQuantity     int32           `json:"total_quantity"`
	AvailableQuantity int32           `json:"available_quantity"`
	Status            ItemStatus      `json:"status"`
	Size              string          `json:"size"`
	Voltage           Voltage         `json:"voltage,omitempty"`
	NeedsPower        bool            `json:"needs_power"`
	Inflatable        bool            `json:"inflatable"`
	Description       string          `json:"description"`

	AcquisitionCost  decimal.NullDecimal `json:"acquisition_cost"`
	InstallmentCount int                 `json:"installment_count"`
	DueDate          *time.Time          `json:"due_date,omitempty"`
	AcquisitionDate  *time.Time          `json:"acquisition_date,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

func (it *InventoryItem) Normalize() {
	it.Name = strings.TrimSpace(it.Name)
	it.DailyRate = RoundMoney(it.DailyRate)
	if it.Status == "" {
		it.Status = ItemStatusActive
	}
	if it.AcquisitionCost.Valid {
		it.AcquisitionCost.Decimal = RoundMoney(it.AcquisitionCost.Decimal)
		if it.InstallmentCount == 0 {
			it.InstallmentCount = 1
		}
	}
}

func (it *InventoryItem) Validate() error {
	v := Violations{}
	if it.Name == "" {
		v.Add("name", "required")
	}
	if it.DailyRate.IsNegative() {
		v.Add("daily_rate", "must not be negative")
	}
	if it.TotalQuantity < 0 {
		v.Add("total_quantity", "must not be negative")
	}
	if it.AvailableQuantity < 0 || it.AvailableQuantity > it.TotalQuantity {
		v.Add("available_quantity", "must be between 0 and total_quantity")
	}
	if it.Status != ItemStatusActive && it.Status != ItemStatusInactive {
		v.Add("status", "must be active or inactive")
	}
	switch it.Voltage {
	case "", Voltage110, Voltage220, VoltageBivolt:
	default:
		v.Add("voltage", "must be 110v, 220v or bivolt")
	}
	if it.AcquisitionCost.Valid {
		if it.AcquisitionCost.Decimal.IsNegative() {
			v.Add("acquisition_cost", "must not be negative")
		}
		if it.InvestmentStartDate() == nil {
			v.Add("due_date", "required when acquisition_cost is set")
		}
	}
	return v.Err()
}

// InvestmentStartDate is the date of the first investment installment: the due
// date, falling back to the acquisition date.
func (it *InventoryItem) InvestmentStartDate() *time.Time {
	if it.DueDate != nil {
		return it.DueDate
	}
	return it.AcquisitionDate
}

// InvestmentChanged reports whether any field that feeds the investment
// ledger entries differs between before and after. A nil before means the
// item is new.
func InvestmentChanged(before, after *InventoryItem) bool {
	if before == nil {
		return true
	}
	if before.AcquisitionCost.Valid != after.AcquisitionCost.Valid {
		return true
	}
	if after.AcquisitionCost.Valid && !before.AcquisitionCost.Decimal.Equal(after.AcquisitionCost.Decimal) {
		return true
	}
	return before.InstallmentCount != after.InstallmentCount ||
		!sameDate(before.DueDate, after.DueDate) ||
		!sameDate(before.AcquisitionDate, after.AcquisitionDate) ||
		before.Name != after.Name
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
