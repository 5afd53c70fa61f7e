package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/filsammy/mariclaire-waterstation-system/internal/apperr"
)

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RegisterCustomer(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("email already registered: %w", apperr.ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hashedPassword),
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         RoleCustomer,
		Status:       StatusActive,
	}

	if err := s.repo.CreateCustomerAccount(ctx, u, req.Barangay, req.Address); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func validateRegistration(req RegisterRequest) error {
	switch {
	case len(strings.TrimSpace(req.Name)) < 2:
		return fmt.Errorf("name must be at least 2 characters: %w", apperr.ErrValidation)
	case !strings.Contains(req.Email, "@"):
		return fmt.Errorf("invalid email address: %w", apperr.ErrValidation)
	case len(req.Phone) < 10:
		return fmt.Errorf("phone number must be valid: %w", apperr.ErrValidation)
	case len(req.Password) < 6:
		return fmt.Errorf("password must be at least 6 characters: %w", apperr.ErrValidation)
	case strings.TrimSpace(req.Barangay) == "":
		return fmt.Errorf("barangay is required: %w", apperr.ErrValidation)
	case len(strings.TrimSpace(req.Address)) < 5:
		return fmt.Errorf("address is too short: %w", apperr.ErrValidation)
	}
	return nil
}
