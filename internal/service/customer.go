package service

import (
	"context"
	"fmt"
	"strings"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/repository"
)

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func normalizeCustomer(c *domain.Customer) error {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(strings.ToLower(c.Email))
	c.IDNumber = strings.TrimSpace(c.IDNumber)
	if c.FirstName == "" && c.LastName == "" {
		return fmt.Errorf("%w: customer name is required", domain.ErrInvalidInput)
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return fmt.Errorf("%w: invalid email %q", domain.ErrInvalidInput, c.Email)
	}
	return nil
}

func (s *customerService) CreateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	if err := normalizeCustomer(c); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	logger.Info("Customer created", "customerID", c.ID)
	return c, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id int32) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) UpdateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	existing, err := s.customerRepo.GetByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if err := normalizeCustomer(c); err != nil {
		return nil, err
	}
	c.CreatedOn = existing.CreatedOn
	if err := s.customerRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCustomer fails with ErrInvalidInput while reservations reference the customer
func (s *customerService) DeleteCustomer(ctx context.Context, id int32) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Customer deleted", "customerID", id)
	return nil
}

func (s *customerService) SearchCustomers(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error) {
	return s.customerRepo.List(ctx, strings.TrimSpace(query), page, pageSize)
}
