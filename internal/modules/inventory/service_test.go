package inventory

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filsammy/mariclaire-waterstation-system/internal/apperr"
)

type memRepo struct {
	records map[string]*StockRecord
}

func (m *memRepo) GetByProductID(_ context.Context, productID string) (*StockRecord, error) {
	rec, ok := m.records[productID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return rec, nil
}

func (m *memRepo) ListStock(_ context.Context) ([]*StockRecord, error) {
	out := []*StockRecord{}
	for _, rec := range m.records {
		out = append(out, rec)
	}
	return out, nil
}

func (m *memRepo) ListLowStock(_ context.Context) ([]*StockRecord, error) {
	out := []*StockRecord{}
	for _, rec := range m.records {
		if rec.CurrentStock <= rec.MinStock {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memRepo) AdjustStock(_ context.Context, productID string, delta int) (bool, error) {
	rec := m.records[productID]
	if rec.CurrentStock+delta < 0 {
		return false, nil
	}
	rec.CurrentStock += delta
	return true, nil
}

func (m *memRepo) SetMinStock(_ context.Context, productID string, minStock int) error {
	m.records[productID].MinStock = minStock
	return nil
}

func seed(stock, min int) (*memRepo, string) {
	productID := uuid.New()
	repo := &memRepo{records: map[string]*StockRecord{
		productID.String(): {
			ID: uuid.New(), ProductID: productID,
			CurrentStock: stock, MinStock: min,
			ProductName: "5-Gallon Mineral Refill", ProductType: "WATER",
		},
	}}
	return repo, productID.String()
}

func TestAdjustStockRestock(t *testing.T) {
	repo, productID := seed(10, 5)
	svc := NewService(repo)

	rec, err := svc.AdjustStock(context.Background(), productID, AdjustStockRequest{Delta: 40})
	require.NoError(t, err)
	assert.Equal(t, 50, rec.CurrentStock)
}

func TestAdjustStockUnderflowRejected(t *testing.T) {
	repo, productID := seed(3, 5)
	svc := NewService(repo)

	_, err := svc.AdjustStock(context.Background(), productID, AdjustStockRequest{Delta: -5})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	assert.Equal(t, 3, repo.records[productID].CurrentStock)
}

func TestAdjustStockZeroDeltaRejected(t *testing.T) {
	repo, productID := seed(3, 5)
	svc := NewService(repo)

	_, err := svc.AdjustStock(context.Background(), productID, AdjustStockRequest{Delta: 0})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestAdjustStockUnknownProduct(t *testing.T) {
	repo, _ := seed(3, 5)
	svc := NewService(repo)

	_, err := svc.AdjustStock(context.Background(), uuid.New().String(), AdjustStockRequest{Delta: 1})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestListLowStock(t *testing.T) {
	repo, productID := seed(4, 5)
	svc := NewService(repo)

	low, err := svc.ListLowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, productID, low[0].ProductID.String())
}

func TestSetMinStock(t *testing.T) {
	repo, productID := seed(10, 5)
	svc := NewService(repo)

	rec, err := svc.SetMinStock(context.Background(), productID, SetMinStockRequest{MinStock: 8})
	require.NoError(t, err)
	assert.Equal(t, 8, rec.MinStock)

	_, err = svc.SetMinStock(context.Background(), productID, SetMinStockRequest{MinStock: -1})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}
