package report

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/order"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a PostgreSQL-backed report repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CountOrdersByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE status = $1`, status).Scan(&n)
	return n, err
}

func (r *postgresRepository) CountActiveDeliveries(ctx context.Context) (int, error) {
	statuses := make([]string, len(order.ActiveDeliveryStatuses))
	for i, s := range order.ActiveDeliveryStatuses {
		statuses[i] = string(s)
	}

	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM deliveries WHERE status = ANY($1)`,
		pq.Array(statuses)).Scan(&n)
	return n, err
}

func (r *postgresRepository) CountLowStockProducts(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inventory WHERE current_stock <= min_stock`).Scan(&n)
	return n, err
}

func (r *postgresRepository) DeliveredSince(ctx context.Context, since time.Time) (int, float64, error) {
	var count int
	var revenue float64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE status = $1 AND updated_at >= $2`,
		order.StatusDelivered, since).Scan(&count, &revenue)
	return count, revenue, err
}

func (r *postgresRepository) SalesByDay(ctx context.Context, from, to time.Time) ([]SalesRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DATE_TRUNC('day', updated_at) AS day, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE status = $1 AND updated_at >= $2 AND updated_at < $3
		GROUP BY day
		ORDER BY day ASC`,
		order.StatusDelivered, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SalesRow{}
	for rows.Next() {
		var row SalesRow
		if err := rows.Scan(&row.Day, &row.OrderCount, &row.Revenue); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
