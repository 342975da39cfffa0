package service

import (
	"context"

	"brinquedos-backend/internal/domain"
	"brinquedos-backend/internal/repository"
)

type customerService struct {
	customerRepo repository.CustomerRepository
	bookingRepo  repository.BookingRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, bookingRepo repository.BookingRepository) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		bookingRepo:  bookingRepo,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	c.Normalize()
	if err := c.Validate(); err != nil {
		return err
	}
	return s.customerRepo.Create(ctx, c)
}

func (s *customerService) GetCustomer(ctx context.Context, orgID, id int32) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, orgID, id)
}

func (s *customerService) UpdateCustomer(ctx context.Context, c *domain.Customer) error {
	c.Normalize()
	if err := c.Validate(); err != nil {
		return err
	}
	return s.customerRepo.Update(ctx, c)
}

// DeleteCustomer refuses to remove customers that still have bookings.
func (s *customerService) DeleteCustomer(ctx context.Context, orgID, id int32) error {
	if _, err := s.customerRepo.GetByID(ctx, orgID, id); err != nil {
		return err
	}
	n, err := s.bookingRepo.CountByCustomer(ctx, orgID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.NewValidationError("customer", "has bookings and cannot be deleted")
	}
	return s.customerRepo.Delete(ctx, orgID, id)
}

func (s *customerService) ListCustomers(ctx context.Context, orgID int32, status domain.CustomerStatus) ([]domain.Customer, error) {
	return s.customerRepo.List(ctx, orgID, status)
}
