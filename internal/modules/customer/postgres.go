package customer

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const customerColumns = `
	c.id, c.user_id, c.customer_type, c.barangay, c.address, c.created_at, c.updated_at,
	u.name, u.email, u.phone`

func (r *postgresRepo) GetCustomerByID(ctx context.Context, id string) (*Customer, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanCustomer(r.db.QueryRowContext(ctx, `
		SELECT `+customerColumns+`
		FROM customers c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1`, uid))
}

func (r *postgresRepo) GetCustomerByUserID(ctx context.Context, userID string) (*Customer, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	return scanCustomer(r.db.QueryRowContext(ctx, `
		SELECT `+customerColumns+`
		FROM customers c
		JOIN users u ON u.id = c.user_id
		WHERE c.user_id = $1`, uid))
}

func (r *postgresRepo) ListCustomers(ctx context.Context) ([]*Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+customerColumns+`
		FROM customers c
		JOIN users u ON u.id = c.user_id
		ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*Customer
	for rows.Next() {
		c := &Customer{}
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.CustomerType, &c.Barangay, &c.Address,
			&c.CreatedAt, &c.UpdatedAt, &c.Name, &c.Email, &c.Phone); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// UpdateCustomer writes the profile row and the user row inside one transaction.
func (r *postgresRepo) UpdateCustomer(ctx context.Context, c *Customer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		UPDATE customers SET customer_type=$1, barangay=$2, address=$3, updated_at=$4
		WHERE id=$5`,
		c.CustomerType, c.Barangay, c.Address, now, c.ID)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET name=$1, phone=$2, updated_at=$3
		WHERE id=$4`,
		c.Name, c.Phone, now, c.UserID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	return tx.Commit()
}

func scanCustomer(row *sql.Row) (*Customer, error) {
	c := &Customer{}
	err := row.Scan(
		&c.ID, &c.UserID, &c.CustomerType, &c.Barangay, &c.Address,
		&c.CreatedAt, &c.UpdatedAt, &c.Name, &c.Email, &c.Phone)
	if err != nil {
		return nil, err
	}
	return c, nil
}
