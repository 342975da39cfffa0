package domain

import (
	"strings"
	"time"
	"unicode"
)

type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

type Customer struct {
	ID        int32          `json:"id"`
	OrgID     int32          `json:"org_id"`
	Name      string         `json:"name"`
	Document  string         `json:"document"` // CPF or CNPJ, digits only
	Phone     string         `json:"phone"`
	Email     string         `json:"email"`
	Address   Address        `json:"address"`
	Status    CustomerStatus `json:"status"`
	Notes     string         `json:"notes"`
	CreatedOn time.Time      `json:"created_on"`
	UpdatedOn time.Time      `json:"updated_on"`
}

// Normalize strips punctuation from the document and fills defaults.
func (c *Customer) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Document = strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, c.Document)
	if c.Status == "" {
		c.Status = CustomerStatusActive
	}
	if c.Address.Number == "" {
		c.Address.Number = "S/N"
	}
	if c.Address.Country == "" {
		c.Address.Country = "Brasil"
	}
}

func (c *Customer) Validate() error {
	v := Violations{}
	if c.Name == "" {
		v.Add("name", "required")
	}
	switch len(c.Document) {
	case 11, 14:
	case 0:
		v.Add("document", "required")
	default:
		v.Add("document", "must have 11 (CPF) or 14 (CNPJ) digits")
	}
	if strings.TrimSpace(c.Phone) == "" {
		v.Add("phone", "required")
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		v.Add("email", "invalid")
	}
	if c.Status != CustomerStatusActive && c.Status != CustomerStatusInactive {
		v.Add("status", "must be active or inactive")
	}
	return v.Err()
}
