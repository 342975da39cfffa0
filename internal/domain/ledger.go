package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type EntryOrigin string

const (
	OriginManual         EntryOrigin = "manual"
	OriginBooking        EntryOrigin = "booking"
	OriginItemInvestment EntryOrigin = "item_investment"
)

type Direction string

const (
	DirectionInflow  Direction = "inflow"
	DirectionOutflow Direction = "outflow"
)

type EntryPaymentState string

const (
	EntryPaid      EntryPaymentState = "paid"
	EntryDeposit   EntryPaymentState = "deposit"
	EntryUnpaid    EntryPaymentState = "unpaid"
	EntryPlanned   EntryPaymentState = "planned"
	EntryCancelled EntryPaymentState = "cancelled"
)

func (s EntryPaymentState) Valid() bool {
	switch s {
	case EntryPaid, EntryDeposit, EntryUnpaid, EntryPlanned, EntryCancelled:
		return true
	}
	return false
}

const (
	CategoryRental     = "rental"
	CategoryInvestment = "investment"
)

// Annotations appended to descriptions when generated entries are voided.
const (
	BookingCancelledNote = " (cancelled together with the booking)"
	ItemCancelledNote    = " (cancelled together with the item)"
	PlanSupersededNote   = " (superseded by a new installment plan)"
)

// LedgerEntry is a financial record. Entries with origin booking or
// item_investment are owned by the ledger synchronization engine.
type LedgerEntry struct {
	ID         int32  `json:"id"`
	OrgID      int32  `json:"org_id"`
	BookingID  *int32 `json:"booking_id,omitempty"`
	CustomerID *int32 `json:"customer_id,omitempty"`
	ItemID     *int32 `json:"item_id,omitempty"`

	Origin       EntryOrigin       `json:"origin"`
	Direction    Direction         `json:"direction"`
	Amount       decimal.Decimal   `json:"amount"`
	Category     string            `json:"category"`
	PaymentState EntryPaymentState `json:"payment_state"`
	DueDate      time.Time         `json:"due_date"`

	InstallmentPlan   bool   `json:"installment_plan"`
	InstallmentCount  int    `json:"installment_count"`
	InstallmentIndex  int    `json:"installment_index"`
	Description       string `json:"description"`
	SourceReferenceID string `json:"source_reference_id"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Generated reports whether the entry belongs to the synchronization engine.
func (e *LedgerEntry) Generated() bool {
	return e.Origin == OriginBooking || e.Origin == OriginItemInvestment
}

// AllowsState reports whether a client may move an entry of origin o to s.
// Voiding generated entries is left to the synchronization engine.
func (o EntryOrigin) AllowsState(s EntryPaymentState) bool {
	switch o {
	case OriginBooking:
		return s == EntryUnpaid || s == EntryDeposit || s == EntryPaid
	case OriginItemInvestment:
		return s == EntryPlanned || s == EntryPaid
	}
	return s.Valid()
}

// Cancel voids the entry without deleting it, appending note to the description.
func (e *LedgerEntry) Cancel(note string) {
	e.PaymentState = EntryCancelled
	if !strings.HasSuffix(e.Description, note) {
		e.Description += note
	}
}

func (e *LedgerEntry) Normalize() {
	e.Amount = RoundMoney(e.Amount)
	e.Category = strings.TrimSpace(e.Category)
	if e.Origin == "" {
		e.Origin = OriginManual
	}
	if e.PaymentState == "" {
		e.PaymentState = EntryUnpaid
	}
	if e.InstallmentCount == 0 {
		e.InstallmentCount = 1
	}
	if e.InstallmentIndex == 0 {
		e.InstallmentIndex = 1
	}
}

func (e *LedgerEntry) Validate() error {
	v := Violations{}
	switch e.Origin {
	case OriginManual, OriginBooking, OriginItemInvestment:
	default:
		v.Add("origin", "invalid origin")
	}
	if e.Direction != DirectionInflow && e.Direction != DirectionOutflow {
		v.Add("direction", "must be inflow or outflow")
	}
	if e.Amount.IsNegative() {
		v.Add("amount", "must not be negative")
	}
	if e.Category == "" {
		v.Add("category", "required")
	}
	if !e.PaymentState.Valid() {
		v.Add("payment_state", "invalid payment state")
	}
	if e.DueDate.IsZero() {
		v.Add("due_date", "required")
	}
	if e.InstallmentCount < 1 {
		v.Add("installment_count", "must be positive")
	}
	if e.InstallmentIndex < 1 || e.InstallmentIndex > e.InstallmentCount {
		v.Add("installment_index", "must be between 1 and installment_count")
	}
	return v.Err()
}

// EntryStateFor maps a booking payment state onto its ledger counterpart.
func EntryStateFor(s BookingPaymentState) EntryPaymentState {
	switch s {
	case BookingPaid:
		return EntryPaid
	case BookingDepositPaid:
		return EntryDeposit
	default:
		return EntryUnpaid
	}
}

// BookingStateFor maps a ledger payment state back onto the booking. The
// second result is false for planned and cancelled, which have no booking
// counterpart.
func BookingStateFor(s EntryPaymentState) (BookingPaymentState, bool) {
	switch s {
	case EntryPaid:
		return BookingPaid, true
	case EntryDeposit:
		return BookingDepositPaid, true
	case EntryUnpaid:
		return BookingUnpaid, true
	}
	return "", false
}

// LedgerFilter narrows ledger queries; zero values are ignored.
type LedgerFilter struct {
	From         *time.Time
	To           *time.Time
	Origin       EntryOrigin
	Direction    Direction
	PaymentState EntryPaymentState
	BookingID    *int32
	ItemID       *int32
}
