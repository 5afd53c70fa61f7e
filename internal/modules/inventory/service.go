package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/filsammy/mariclaire-waterstation-system/internal/apperr"
)

// Service defines inventory business logic.
type Service interface {
	GetStock(ctx context.Context, productID string) (*StockRecord, error)
	ListStock(ctx context.Context) ([]*StockRecord, error)
	ListLowStock(ctx context.Context) ([]*StockRecord, error)
	AdjustStock(ctx context.Context, productID string, req AdjustStockRequest) (*StockRecord, error)
	SetMinStock(ctx context.Context, productID string, req SetMinStockRequest) (*StockRecord, error)
}

type service struct {
	repo Repository
}

// NewService creates a new inventory service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) GetStock(ctx context.Context, productID string) (*StockRecord, error) {
	rec, err := s.repo.GetByProductID(ctx, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("inventory for product %s: %w", productID, apperr.ErrNotFound)
	}
	return rec, err
}

func (s *service) ListStock(ctx context.Context) ([]*StockRecord, error) {
	return s.repo.ListStock(ctx)
}

func (s *service) ListLowStock(ctx context.Context) ([]*StockRecord, error) {
	return s.repo.ListLowStock(ctx)
}

func (s *service) AdjustStock(ctx context.Context, productID string, req AdjustStockRequest) (*StockRecord, error) {
	if req.Delta == 0 {
		return nil, fmt.Errorf("delta must be non-zero: %w", apperr.ErrValidation)
	}

	// Existence check first so an unknown product reads as not-found
	// rather than an underflow rejection.
	if _, err := s.GetStock(ctx, productID); err != nil {
		return nil, err
	}

	ok, err := s.repo.AdjustStock(ctx, productID, req.Delta)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("adjustment would drive stock below zero: %w", apperr.ErrValidation)
	}
	return s.GetStock(ctx, productID)
}

func (s *service) SetMinStock(ctx context.Context, productID string, req SetMinStockRequest) (*StockRecord, error) {
	if req.MinStock < 0 {
		return nil, fmt.Errorf("min_stock must be non-negative: %w", apperr.ErrValidation)
	}
	if _, err := s.GetStock(ctx, productID); err != nil {
		return nil, err
	}
	if err := s.repo.SetMinStock(ctx, productID, req.MinStock); err != nil {
		return nil, err
	}
	return s.GetStock(ctx, productID)
}
