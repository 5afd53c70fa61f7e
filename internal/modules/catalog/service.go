package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/filsammy/mariclaire-waterstation-system/internal/apperr"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, activeOnly bool) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error)
}

type service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if len(strings.TrimSpace(req.Name)) < 2 {
		return nil, fmt.Errorf("product name must be at least 2 characters: %w", apperr.ErrValidation)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("price must be positive: %w", apperr.ErrValidation)
	}
	if req.InitialStock < 0 || req.MinStock < 0 {
		return nil, fmt.Errorf("stock must be non-negative: %w", apperr.ErrValidation)
	}

	productType := ProductType(strings.ToUpper(req.Type))
	if productType != TypeWater && productType != TypeContainer {
		return nil, fmt.Errorf("unknown product type %q: %w", req.Type, apperr.ErrValidation)
	}

	unit := req.Unit
	if unit == "" {
		if productType == TypeWater {
			unit = "gallon"
		} else {
			unit = "piece"
		}
	}

	p := &Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Type:        productType,
		Price:       req.Price,
		Unit:        unit,
		IsActive:    true,
	}
	if productType == TypeWater {
		wt := WaterMineral
		p.WaterType = &wt
	}

	if err := s.repo.CreateProduct(ctx, p, req.InitialStock, req.MinStock); err != nil {
		return nil, err
	}
	stock := req.InitialStock
	p.CurrentStock = &stock
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.GetProductByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %s: %w", id, apperr.ErrNotFound)
	}
	return p, err
}

func (s *service) ListProducts(ctx context.Context, activeOnly bool) ([]*Product, error) {
	return s.repo.ListProducts(ctx, activeOnly)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.Price != 0 {
		if req.Price < 0 {
			return nil, fmt.Errorf("price must be positive: %w", apperr.ErrValidation)
		}
		p.Price = req.Price
	}
	if req.Unit != "" {
		p.Unit = req.Unit
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
