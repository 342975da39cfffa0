// Package memory keeps every repository in process memory. It backs the
// "memory" database driver used for demos and for exercising the ledger
// synchronization engine without PostgreSQL.
package memory

import (
	"sync"
	"time"

	"brinquedos-backend/internal/domain"
	"brinquedos-backend/internal/repository"
)

type state struct {
	mu     sync.Mutex
	nextID int32
	now    func() time.Time

	orgs      map[int32]domain.Organization
	users     map[int32]domain.User
	customers map[int32]domain.Customer
	items     map[int32]domain.InventoryItem
	bookings  map[int32]domain.Booking
	entries   map[int32]domain.LedgerEntry
}

func (s *state) id() int32 {
	s.nextID++
	return s.nextID
}

type Store = repository.Store

func NewStore() *Store {
	st := &state{
		now:       time.Now,
		orgs:      map[int32]domain.Organization{},
		users:     map[int32]domain.User{},
		customers: map[int32]domain.Customer{},
		items:     map[int32]domain.InventoryItem{},
		bookings:  map[int32]domain.Booking{},
		entries:   map[int32]domain.LedgerEntry{},
	}
	return &Store{
		OrganizationRepository: &orgRepository{st},
		UserRepository:         &userRepository{st},
		CustomerRepository:     &customerRepository{st},
		ItemRepository:         &itemRepository{st},
		BookingRepository:      &bookingRepository{st},
		LedgerRepository:       &ledgerRepository{st},
	}
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func cloneIDs(ids []int32) []int32 {
	if ids == nil {
		return nil
	}
	return append([]int32(nil), ids...)
}

func cloneInt(p *int32) *int32 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
