package inventory

import (
	"time"

	"github.com/google/uuid"
)

// StockRecord tracks the on-hand count for one catalog product.
// Order placement decrements current_stock inside the order transaction;
// cancellation never re-increments it.
type StockRecord struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	CurrentStock int       `json:"current_stock"`
	MinStock     int       `json:"min_stock"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Joined from the product row for admin listings.
	ProductName string `json:"product_name,omitempty"`
	ProductType string `json:"product_type,omitempty"`
}

// AdjustStockRequest changes the on-hand count by a signed delta
// (restock deliveries, spoilage, manual corrections).
type AdjustStockRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason,omitempty"`
}

// SetMinStockRequest updates the low-stock alert threshold.
type SetMinStockRequest struct {
	MinStock int `json:"min_stock"`
}
