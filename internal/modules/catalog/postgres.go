package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// CreateProduct inserts the product and its inventory record inside a single transaction.
func (r *postgresRepo) CreateProduct(ctx context.Context, p *Product, initialStock, minStock int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO products (id, name, description, type, water_type, price, unit, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.Name, p.Description, p.Type, p.WaterType, p.Price, p.Unit, p.IsActive)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO inventory (id, product_id, current_stock, min_stock)
		VALUES ($1,$2,$3,$4)`,
		uuid.New(), p.ID, initialStock, minStock)
	if err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepo) GetProductByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanProduct(r.db.QueryRowContext(ctx, `
		SELECT p.id, p.name, p.description, p.type, p.water_type, p.price, p.unit,
		       p.is_active, p.created_at, p.updated_at, i.current_stock
		FROM products p
		LEFT JOIN inventory i ON i.product_id = p.id
		WHERE p.id = $1`, uid))
}

func (r *postgresRepo) ListProducts(ctx context.Context, activeOnly bool) ([]*Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.type, p.water_type, p.price, p.unit,
		       p.is_active, p.created_at, p.updated_at, i.current_stock
		FROM products p
		LEFT JOIN inventory i ON i.product_id = p.id`
	if activeOnly {
		query += ` WHERE p.is_active`
	}
	query += ` ORDER BY p.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p := &Product{}
		var stock sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Type, &p.WaterType,
			&p.Price, &p.Unit, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &stock); err != nil {
			return nil, err
		}
		if stock.Valid {
			n := int(stock.Int64)
			p.CurrentStock = &n
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) UpdateProduct(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products SET name=$1, description=$2, price=$3, unit=$4, is_active=$5, updated_at=$6
		WHERE id=$7`,
		p.Name, p.Description, p.Price, p.Unit, p.IsActive, time.Now(), p.ID)
	return err
}

func scanProduct(row *sql.Row) (*Product, error) {
	p := &Product{}
	var stock sql.NullInt64
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Type, &p.WaterType,
		&p.Price, &p.Unit, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &stock)
	if err != nil {
		return nil, err
	}
	if stock.Valid {
		n := int(stock.Int64)
		p.CurrentStock = &n
	}
	return p, nil
}
