package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"brinquedos-backend/internal/utils"
)

// Calendar-day fields travel as "yyyy-mm-dd". RFC3339 input is also
// accepted; the day is taken as written, before any offset conversion.

func parseDay(s string) (time.Time, error) {
	if d, err := utils.ParseDate(s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(utils.DateLayout)
}

func formatOptDay(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDay(*t)
	return &s
}

// dayField decodes a date into dst. An absent key leaves dst untouched.
type dayField struct {
	dst *time.Time
}

func (f dayField) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}
	if s == nil || *s == "" {
		*f.dst = time.Time{}
		return nil
	}
	d, err := parseDay(*s)
	if err != nil {
		return err
	}
	*f.dst = d
	return nil
}

// optDayField is dayField for nullable dates.
type optDayField struct {
	dst **time.Time
}

func (f optDayField) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}
	if s == nil || *s == "" {
		*f.dst = nil
		return nil
	}
	d, err := parseDay(*s)
	if err != nil {
		return err
	}
	*f.dst = &d
	return nil
}

func (b Booking) MarshalJSON() ([]byte, error) {
	type plain Booking
	return json.Marshal(struct {
		plain
		PartyDate    string `json:"party_date"`
		TeardownDate string `json:"teardown_date"`
	}{plain(b), formatDay(b.PartyDate), formatDay(b.TeardownDate)})
}

func (b *Booking) UnmarshalJSON(data []byte) error {
	type plain Booking
	aux := struct {
		*plain
		PartyDate    dayField `json:"party_date"`
		TeardownDate dayField `json:"teardown_date"`
	}{(*plain)(b), dayField{&b.PartyDate}, dayField{&b.TeardownDate}}
	return json.Unmarshal(data, &aux)
}

func (it InventoryItem) MarshalJSON() ([]byte, error) {
	type plain InventoryItem
	return json.Marshal(struct {
		plain
		DueDate         *string `json:"due_date,omitempty"`
		AcquisitionDate *string `json:"acquisition_date,omitempty"`
	}{plain(it), formatOptDay(it.DueDate), formatOptDay(it.AcquisitionDate)})
}

func (it *InventoryItem) UnmarshalJSON(data []byte) error {
	type plain InventoryItem
	aux := struct {
		*plain
		DueDate         optDayField `json:"due_date"`
		AcquisitionDate optDayField `json:"acquisition_date"`
	}{(*plain)(it), optDayField{&it.DueDate}, optDayField{&it.AcquisitionDate}}
	return json.Unmarshal(data, &aux)
}

func (e LedgerEntry) MarshalJSON() ([]byte, error) {
	type plain LedgerEntry
	return json.Marshal(struct {
		plain
		DueDate string `json:"due_date"`
	}{plain(e), formatDay(e.DueDate)})
}

func (e *LedgerEntry) UnmarshalJSON(data []byte) error {
	type plain LedgerEntry
	aux := struct {
		*plain
		DueDate dayField `json:"due_date"`
	}{(*plain)(e), dayField{&e.DueDate}}
	return json.Unmarshal(data, &aux)
}
