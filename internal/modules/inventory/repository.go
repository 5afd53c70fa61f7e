package inventory

import "context"

// Repository defines data access for stock records.
type Repository interface {
	// GetByProductID retrieves the stock record for a product.
	GetByProductID(ctx context.Context, productID string) (*StockRecord, error)

	// ListStock returns all stock records joined with product fields.
	ListStock(ctx context.Context) ([]*StockRecord, error)

	// ListLowStock returns records where current_stock <= min_stock.
	ListLowStock(ctx context.Context) ([]*StockRecord, error)

	// AdjustStock applies a signed delta; the update is guarded so the
	// count can never go below zero (zero rows affected means the delta
	// would underflow).
	AdjustStock(ctx context.Context, productID string, delta int) (bool, error)

	// SetMinStock updates the low-stock threshold.
	SetMinStock(ctx context.Context, productID string, minStock int) error
}
