package report

import (
	"context"
	"time"
)

// Repository defines the read-only aggregate queries behind the admin
// dashboards.
type Repository interface {
	CountOrdersByStatus(ctx context.Context, status string) (int, error)
	CountActiveDeliveries(ctx context.Context) (int, error)
	CountLowStockProducts(ctx context.Context) (int, error)
	DeliveredSince(ctx context.Context, since time.Time) (int, float64, error)
	SalesByDay(ctx context.Context, from, to time.Time) ([]SalesRow, error)
}
