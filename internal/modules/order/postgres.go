package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/filsammy/mariclaire-waterstation-system/internal/apperr"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a PostgreSQL-backed order repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const orderColumns = `id, order_number, customer_id, status, delivery_type,
	delivery_barangay, delivery_address, delivery_notes, payment_method,
	total_amount, failure_reasons, delivery_attempts, escalated_to_admin,
	escalated_at, created_at, updated_at`

func (r *postgresRepository) GetCustomerByUserID(ctx context.Context, userID string) (*CustomerRef, error) {
	query := `SELECT id, user_id, customer_type FROM customers WHERE user_id = $1`

	c := &CustomerRef{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&c.ID, &c.UserID, &c.Type)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepository) GetProductLines(ctx context.Context, productIDs []string) (map[string]*ProductLine, error) {
	query := `
		SELECT p.id, p.name, p.type, p.price, p.is_active, COALESCE(i.current_stock, 0)
		FROM products p
		LEFT JOIN inventory i ON i.product_id = p.id
		WHERE p.id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(productIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make(map[string]*ProductLine)
	for rows.Next() {
		p := &ProductLine{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Price, &p.IsActive, &p.Stock); err != nil {
			return nil, err
		}
		lines[p.ID.String()] = p
	}
	return lines, rows.Err()
}

func (r *postgresRepository) GetRider(ctx context.Context, riderID string) (*RiderRef, error) {
	query := `
		SELECT dr.id, dr.user_id, u.name, u.status
		FROM delivery_riders dr
		JOIN users u ON u.id = dr.user_id
		WHERE dr.id = $1`

	rider := &RiderRef{}
	err := r.db.QueryRowContext(ctx, query, riderID).
		Scan(&rider.ID, &rider.UserID, &rider.Name, &rider.AccountStatus)
	if err != nil {
		return nil, err
	}
	return rider, nil
}

func (r *postgresRepository) GetRiderByUserID(ctx context.Context, userID string) (*RiderRef, error) {
	query := `
		SELECT dr.id, dr.user_id, u.name, u.status
		FROM delivery_riders dr
		JOIN users u ON u.id = dr.user_id
		WHERE dr.user_id = $1`

	rider := &RiderRef{}
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&rider.ID, &rider.UserID, &rider.Name, &rider.AccountStatus)
	if err != nil {
		return nil, err
	}
	return rider, nil
}

func (r *postgresRepository) CreateOrder(ctx context.Context, o *Order, entry *HistoryEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Guarded decrement. Zero rows means another order drained the stock
	// between pricing and commit.
	for _, item := range o.Items {
		res, err := tx.ExecContext(ctx, `
			UPDATE inventory
			SET current_stock = current_stock - $1, updated_at = NOW()
			WHERE product_id = $2 AND current_stock >= $1`,
			item.Quantity, item.ProductID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("insufficient stock for %s: %w", item.ProductName, apperr.ErrInsufficientStock)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, order_number, customer_id, status, delivery_type,
			delivery_barangay, delivery_address, delivery_notes, payment_method,
			total_amount, failure_reasons, delivery_attempts, escalated_to_admin,
			escalated_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		o.ID, o.OrderNumber, o.CustomerID, o.Status, o.DeliveryType,
		o.DeliveryBarangay, o.DeliveryAddress, o.DeliveryNotes, o.PaymentMethod,
		o.TotalAmount, pq.Array(o.FailureReasons), o.DeliveryAttempts,
		o.EscalatedToAdmin, o.EscalatedAt, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return err
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal)
		if err != nil {
			return err
		}
	}

	if err := insertHistory(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresRepository) SaveTransition(ctx context.Context, o *Order, d *Delivery, entry *HistoryEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, failure_reasons = $2, delivery_attempts = $3,
			escalated_to_admin = $4, escalated_at = $5, updated_at = NOW()
		WHERE id = $6`,
		o.Status, pq.Array(o.FailureReasons), o.DeliveryAttempts,
		o.EscalatedToAdmin, o.EscalatedAt, o.ID)
	if err != nil {
		return err
	}

	if d != nil {
		// One delivery record per order. Reassignment and retries update
		// the existing row in place.
		_, err = tx.ExecContext(ctx, `
			INSERT INTO deliveries (id, order_id, rider_id, delivery_type, status,
				notes, assigned_at, picked_up_at, delivered_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
			ON CONFLICT (order_id) DO UPDATE SET
				rider_id = EXCLUDED.rider_id,
				status = EXCLUDED.status,
				notes = EXCLUDED.notes,
				assigned_at = EXCLUDED.assigned_at,
				picked_up_at = EXCLUDED.picked_up_at,
				delivered_at = EXCLUDED.delivered_at,
				updated_at = NOW()`,
			d.ID, d.OrderID, d.RiderID, d.DeliveryType, d.Status,
			d.Notes, d.AssignedAt, d.PickedUpAt, d.DeliveredAt)
		if err != nil {
			return err
		}
	}

	if err := insertHistory(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit()
}

func insertHistory(ctx context.Context, tx *sql.Tx, entry *HistoryEntry) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO order_history (id, order_id, status, description,
			failure_reason, is_escalation, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.OrderID, entry.Status, entry.Description,
		nullable(entry.FailureReason), entry.IsEscalation, entry.CreatedBy, entry.CreatedAt)
	return err
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *postgresRepository) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepository) GetOrderByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, orderNumber))
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepository) ListOrders(ctx context.Context, status string) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	return r.queryOrders(ctx, query, args...)
}

func (r *postgresRepository) ListOrdersByCustomer(ctx context.Context, customerID string) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, customerID)
}

func (r *postgresRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		if err := r.attachItems(ctx, o); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*Order, error) {
	o := &Order{}
	var notes sql.NullString
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.Status, &o.DeliveryType,
		&o.DeliveryBarangay, &o.DeliveryAddress, &notes, &o.PaymentMethod,
		&o.TotalAmount, pq.Array(&o.FailureReasons), &o.DeliveryAttempts,
		&o.EscalatedToAdmin, &o.EscalatedAt, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.DeliveryNotes = notes.String
	return o, nil
}

func (r *postgresRepository) attachItems(ctx context.Context, o *Order) error {
	query := `
		SELECT oi.id, oi.order_id, oi.product_id, p.name, oi.quantity, oi.unit_price, oi.subtotal
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1`

	rows, err := r.db.QueryContext(ctx, query, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		item := &OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return err
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

const deliveryColumns = `id, order_id, rider_id, delivery_type, status,
	COALESCE(notes, ''), assigned_at, picked_up_at, delivered_at, created_at, updated_at`

func (r *postgresRepository) GetDeliveryByID(ctx context.Context, id string) (*Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE id = $1`
	return scanDelivery(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresRepository) GetDeliveryByOrderID(ctx context.Context, orderID string) (*Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE order_id = $1`
	return scanDelivery(r.db.QueryRowContext(ctx, query, orderID))
}

func scanDelivery(row rowScanner) (*Delivery, error) {
	d := &Delivery{}
	err := row.Scan(&d.ID, &d.OrderID, &d.RiderID, &d.DeliveryType, &d.Status,
		&d.Notes, &d.AssignedAt, &d.PickedUpAt, &d.DeliveredAt, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *postgresRepository) ListRiderTasks(ctx context.Context, riderID string) ([]*Delivery, error) {
	query := `
		SELECT d.id, d.order_id, d.rider_id, d.delivery_type, d.status,
			COALESCE(d.notes, ''), d.assigned_at, d.picked_up_at, d.delivered_at,
			d.created_at, d.updated_at,
			o.order_number, o.status, o.delivery_barangay, o.delivery_address,
			COALESCE(o.delivery_notes, ''), o.payment_method, o.total_amount
		FROM deliveries d
		JOIN orders o ON o.id = d.order_id
		WHERE d.rider_id = $1 AND d.status = ANY($2)
		ORDER BY d.assigned_at ASC`

	statuses := make([]string, len(ActiveDeliveryStatuses))
	for i, s := range ActiveDeliveryStatuses {
		statuses[i] = string(s)
	}

	rows, err := r.db.QueryContext(ctx, query, riderID, pq.Array(statuses))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []*Delivery{}
	for rows.Next() {
		d := &Delivery{Order: &Order{}}
		err := rows.Scan(&d.ID, &d.OrderID, &d.RiderID, &d.DeliveryType, &d.Status,
			&d.Notes, &d.AssignedAt, &d.PickedUpAt, &d.DeliveredAt,
			&d.CreatedAt, &d.UpdatedAt,
			&d.Order.OrderNumber, &d.Order.Status, &d.Order.DeliveryBarangay,
			&d.Order.DeliveryAddress, &d.Order.DeliveryNotes,
			&d.Order.PaymentMethod, &d.Order.TotalAmount)
		if err != nil {
			return nil, err
		}
		d.Order.ID = d.OrderID
		tasks = append(tasks, d)
	}
	return tasks, rows.Err()
}

func (r *postgresRepository) ListHistory(ctx context.Context, orderID string) ([]*HistoryEntry, error) {
	query := `
		SELECT id, order_id, status, description, COALESCE(failure_reason, ''),
			is_escalation, created_by, created_at
		FROM order_history
		WHERE order_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*HistoryEntry{}
	for rows.Next() {
		e := &HistoryEntry{}
		err := rows.Scan(&e.ID, &e.OrderID, &e.Status, &e.Description,
			&e.FailureReason, &e.IsEscalation, &e.CreatedBy, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
