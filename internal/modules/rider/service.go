package rider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/filsammy/mariclaire-waterstation-system/internal/apperr"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/auth"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/user"
)

// Service manages rider accounts. Deactivating or suspending a rider
// escalates every order the rider was carrying back to the admin queue in
// the same transaction as the status change.
type Service interface {
	CreateRider(ctx context.Context, req CreateRiderRequest) (*Rider, error)
	GetRider(ctx context.Context, id string) (*Rider, error)
	ListRiders(ctx context.Context) ([]*Rider, error)
	UpdateRider(ctx context.Context, actor auth.Actor, id string, req UpdateRiderRequest) (*UpdateRiderResult, error)
	DeleteRider(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateRider(ctx context.Context, req CreateRiderRequest) (*Rider, error) {
	if len(strings.TrimSpace(req.Name)) < 2 {
		return nil, fmt.Errorf("name is required: %w", apperr.ErrValidation)
	}
	if !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("invalid email address: %w", apperr.ErrValidation)
	}
	if len(req.Phone) < 10 {
		return nil, fmt.Errorf("invalid phone number: %w", apperr.ErrValidation)
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters: %w", apperr.ErrValidation)
	}

	vehicle := VehicleType(strings.ToUpper(req.VehicleType))
	if vehicle == "" {
		vehicle = VehicleTricycle
	}
	if vehicle != VehicleTricycle && vehicle != VehicleTruck {
		return nil, fmt.Errorf("unknown vehicle type %q: %w", req.VehicleType, apperr.ErrValidation)
	}

	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("email already registered: %w", apperr.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	rd := &Rider{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		VehicleType: vehicle,
		PlateNumber: req.PlateNumber,
		Status:      user.StatusActive,
	}
	if err := s.repo.CreateRider(ctx, rd, string(hash)); err != nil {
		return nil, err
	}
	return rd, nil
}

func (s *service) GetRider(ctx context.Context, id string) (*Rider, error) {
	rd, err := s.repo.GetRiderByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("rider: %w", apperr.ErrNotFound)
	}
	return rd, err
}

func (s *service) ListRiders(ctx context.Context) ([]*Rider, error) {
	return s.repo.ListRiders(ctx)
}

func (s *service) UpdateRider(ctx context.Context, actor auth.Actor, id string, req UpdateRiderRequest) (*UpdateRiderResult, error) {
	rd, err := s.GetRider(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if len(strings.TrimSpace(*req.Name)) < 2 {
			return nil, fmt.Errorf("name is required: %w", apperr.ErrValidation)
		}
		rd.Name = *req.Name
	}
	if req.Phone != nil {
		if len(*req.Phone) < 10 {
			return nil, fmt.Errorf("invalid phone number: %w", apperr.ErrValidation)
		}
		rd.Phone = *req.Phone
	}
	if req.VehicleType != nil {
		v := VehicleType(strings.ToUpper(*req.VehicleType))
		if v != VehicleTricycle && v != VehicleTruck {
			return nil, fmt.Errorf("unknown vehicle type %q: %w", *req.VehicleType, apperr.ErrValidation)
		}
		rd.VehicleType = v
	}
	if req.PlateNumber != nil {
		rd.PlateNumber = *req.PlateNumber
	}

	if err := s.repo.UpdateProfile(ctx, rd); err != nil {
		return nil, err
	}

	if req.Password != nil {
		if len(*req.Password) < 6 {
			return nil, fmt.Errorf("password must be at least 6 characters: %w", apperr.ErrValidation)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		if err := s.repo.SetPassword(ctx, id, string(hash)); err != nil {
			return nil, err
		}
	}

	result := &UpdateRiderResult{Rider: rd}

	if req.Status != nil {
		next := user.AccountStatus(strings.ToUpper(*req.Status))
		switch next {
		case user.StatusActive, user.StatusInactive, user.StatusSuspended:
		default:
			return nil, fmt.Errorf("unknown account status %q: %w", *req.Status, apperr.ErrValidation)
		}

		if next != rd.Status {
			escalated, err := s.repo.CascadeStatus(ctx, id, string(next), actor.UserID)
			if err != nil {
				return nil, err
			}
			rd.Status = next
			result.EscalatedOrders = escalated
		}
	}
	return result, nil
}

func (s *service) DeleteRider(ctx context.Context, id string) error {
	if _, err := s.GetRider(ctx, id); err != nil {
		return err
	}

	active, err := s.repo.CountActiveDeliveries(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return fmt.Errorf("rider has %d in-flight deliveries, deactivate instead: %w", active, apperr.ErrConflict)
	}
	return s.repo.DeleteRider(ctx, id)
}
