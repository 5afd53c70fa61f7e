package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/filsammy/mariclaire-waterstation-system/internal/apperr"
)

// Service defines customer profile business logic.
type Service interface {
	GetCustomer(ctx context.Context, id string) (*Customer, error)
	GetCustomerByUser(ctx context.Context, userID string) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, id string, req UpdateCustomerRequest) (*Customer, error)
}

type service struct {
	repo Repository
}

// NewService creates a new customer service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	c, err := s.repo.GetCustomerByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("customer %s: %w", id, apperr.ErrNotFound)
	}
	return c, err
}

func (s *service) GetCustomerByUser(ctx context.Context, userID string) (*Customer, error) {
	c, err := s.repo.GetCustomerByUserID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("customer profile: %w", apperr.ErrNotFound)
	}
	return c, err
}

func (s *service) ListCustomers(ctx context.Context) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *service) UpdateCustomer(ctx context.Context, id string, req UpdateCustomerRequest) (*Customer, error) {
	c, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerType != "" {
		t := CustomerType(req.CustomerType)
		if t != TypeRegular && t != TypeOutletReseller {
			return nil, fmt.Errorf("unknown customer type %q: %w", req.CustomerType, apperr.ErrValidation)
		}
		c.CustomerType = t
	}
	if req.Name != "" {
		if len(req.Name) < 2 {
			return nil, fmt.Errorf("name must be at least 2 characters: %w", apperr.ErrValidation)
		}
		c.Name = req.Name
	}
	if req.Phone != "" {
		if len(req.Phone) < 10 {
			return nil, fmt.Errorf("phone number must be valid: %w", apperr.ErrValidation)
		}
		c.Phone = req.Phone
	}
	if req.Barangay != "" {
		c.Barangay = req.Barangay
	}
	if req.Address != "" {
		if len(req.Address) < 5 {
			return nil, fmt.Errorf("address is too short: %w", apperr.ErrValidation)
		}
		c.Address = req.Address
	}

	if err := s.repo.UpdateCustomer(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
