package inventory

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) GetByProductID(ctx context.Context, productID string) (*StockRecord, error) {
	uid, err := uuid.Parse(productID)
	if err != nil {
		return nil, err
	}
	rec := &StockRecord{}
	err = r.db.QueryRowContext(ctx, `
		SELECT i.id, i.product_id, i.current_stock, i.min_stock, i.updated_at, p.name, p.type
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.product_id = $1`, uid).Scan(
		&rec.ID, &rec.ProductID, &rec.CurrentStock, &rec.MinStock,
		&rec.UpdatedAt, &rec.ProductName, &rec.ProductType)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *postgresRepo) ListStock(ctx context.Context) ([]*StockRecord, error) {
	return r.queryStock(ctx, `
		SELECT i.id, i.product_id, i.current_stock, i.min_stock, i.updated_at, p.name, p.type
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		ORDER BY p.name ASC`)
}

func (r *postgresRepo) ListLowStock(ctx context.Context) ([]*StockRecord, error) {
	return r.queryStock(ctx, `
		SELECT i.id, i.product_id, i.current_stock, i.min_stock, i.updated_at, p.name, p.type
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.current_stock <= i.min_stock
		ORDER BY p.name ASC`)
}

// AdjustStock applies the delta with a floor of zero enforced in the WHERE clause.
func (r *postgresRepo) AdjustStock(ctx context.Context, productID string, delta int) (bool, error) {
	uid, err := uuid.Parse(productID)
	if err != nil {
		return false, err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE inventory
		SET current_stock = current_stock + $1, updated_at = $2
		WHERE product_id = $3 AND current_stock + $1 >= 0`,
		delta, time.Now(), uid)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *postgresRepo) SetMinStock(ctx context.Context, productID string, minStock int) error {
	uid, err := uuid.Parse(productID)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE inventory SET min_stock = $1, updated_at = $2 WHERE product_id = $3`,
		minStock, time.Now(), uid)
	return err
}

func (r *postgresRepo) queryStock(ctx context.Context, query string) ([]*StockRecord, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*StockRecord
	for rows.Next() {
		rec := &StockRecord{}
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.CurrentStock, &rec.MinStock,
			&rec.UpdatedAt, &rec.ProductName, &rec.ProductType); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
