package domain

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusSetUp     BookingStatus = "set_up"
	BookingStatusToCollect BookingStatus = "to_collect"
	BookingStatusFinalized BookingStatus = "finalized"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusSetUp, BookingStatusToCollect, BookingStatusFinalized:
		return true
	}
	return false
}

type BookingPaymentState string

const (
	BookingUnpaid      BookingPaymentState = "unpaid"
	BookingDepositPaid BookingPaymentState = "deposit_paid"
	BookingPaid        BookingPaymentState = "paid"
)

func (s BookingPaymentState) Valid() bool {
	switch s {
	case BookingUnpaid, BookingDepositPaid, BookingPaid:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodPix  PaymentMethod = "pix"
)

// DefaultDepositPercent is applied to the derived total when no entry amount
// was given.
const DefaultDepositPercent = 30

type Booking struct {
	ID         int32   `json:"id"`
	OrgID      int32   `json:"org_id"`
	CustomerID int32   `json:"customer_id"`
	ItemIDs    []int32 `json:"item_ids"`

	PartyDate    time.Time `json:"party_date"`
	PartyTime    string    `json:"party_time,omitempty"` // HH:MM
	SetupTime    string    `json:"setup_time,omitempty"`
	TeardownDate time.Time `json:"teardown_date"`
	TeardownTime string    `json:"teardown_time,omitempty"`
	Installer    string    `json:"installer,omitempty"`

	Surcharges       decimal.Decimal     `json:"surcharges"`
	Discounts        decimal.Decimal     `json:"discounts"`
	EntryAmount      decimal.Decimal     `json:"entry_amount"`
	TotalAmount      decimal.Decimal     `json:"total_amount"`
	RemainingAmount  decimal.Decimal     `json:"remaining_amount"`
	InstallmentCount int                 `json:"installment_count"`
	PaymentMethod    PaymentMethod       `json:"payment_method,omitempty"`
	PaymentState     BookingPaymentState `json:"payment_state"`
	Status           BookingStatus       `json:"status"`

	Description string    `json:"description,omitempty"`
	Address     Address   `json:"address"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}

// Recompute enforces remaining = total - entry. Repositories call it on every
// persist.
func (b *Booking) Recompute() {
	b.TotalAmount = RoundMoney(b.TotalAmount)
	b.EntryAmount = RoundMoney(b.EntryAmount)
	b.RemainingAmount = b.TotalAmount.Sub(b.EntryAmount)
}

// Installments returns the effective installment count (at least one).
func (b *Booking) Installments() int {
	if b.InstallmentCount <= 0 {
		return 1
	}
	return b.InstallmentCount
}

func (b *Booking) Normalize() {
	if b.Status == "" {
		b.Status = BookingStatusPending
	}
	if b.PaymentState == "" {
		b.PaymentState = BookingUnpaid
	}
	if b.InstallmentCount == 0 {
		b.InstallmentCount = 1
	}
	if b.Address.Number == "" {
		b.Address.Number = "S/N"
	}
	if b.Address.Country == "" {
		b.Address.Country = "Brasil"
	}
	b.Surcharges = RoundMoney(b.Surcharges)
	b.Discounts = RoundMoney(b.Discounts)
	b.Recompute()
}

var clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func (b *Booking) Validate() error {
	v := Violations{}
	if b.CustomerID == 0 {
		v.Add("customer_id", "required")
	}
	if b.PartyDate.IsZero() {
		v.Add("party_date", "required")
	}
	if b.TeardownDate.IsZero() {
		v.Add("teardown_date", "required")
	}
	if !b.PartyDate.IsZero() && !b.TeardownDate.IsZero() && b.PartyDate.After(b.TeardownDate) {
		v.Add("party_date", "must not be after teardown_date")
	}
	for field, clock := range map[string]string{"party_time": b.PartyTime, "setup_time": b.SetupTime, "teardown_time": b.TeardownTime} {
		if clock != "" && !clockRe.MatchString(clock) {
			v.Add(field, "must be HH:MM")
		}
	}
	if !b.Status.Valid() {
		v.Add("status", "invalid status")
	}
	if !b.PaymentState.Valid() {
		v.Add("payment_state", "invalid payment state")
	}
	switch b.PaymentMethod {
	case "", PaymentMethodCash, PaymentMethodCard, PaymentMethodPix:
	default:
		v.Add("payment_method", "must be cash, card or pix")
	}
	if b.InstallmentCount < 0 {
		v.Add("installment_count", "must be positive")
	}
	for field, amount := range map[string]decimal.Decimal{
		"surcharges":   b.Surcharges,
		"discounts":    b.Discounts,
		"entry_amount": b.EntryAmount,
		"total_amount": b.TotalAmount,
	} {
		if amount.IsNegative() {
			v.Add(field, "must not be negative")
		}
	}
	return v.Err()
}

// SameItems reports whether two item id sets hold the same members.
func SameItems(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[int32]int, len(a))
	for _, id := range a {
		seen[id]++
	}
	for _, id := range b {
		if seen[id] == 0 {
			return false
		}
		seen[id]--
	}
	return true
}
