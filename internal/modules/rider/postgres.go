package rider

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/order"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/user"
)

// cascadeReason is recorded on every order escalated because its rider's
// account was taken out of service.
const cascadeReason = "Rider account deactivated/suspended"

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a PostgreSQL-backed rider repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateRider(ctx context.Context, rd *Rider, passwordHash string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, name, phone, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())`,
		rd.UserID, rd.Email, passwordHash, rd.Name, rd.Phone, user.RoleDelivery, user.StatusActive)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO delivery_riders (id, user_id, vehicle_type, plate_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())`,
		rd.ID, rd.UserID, rd.VehicleType, nullable(rd.PlateNumber))
	if err != nil {
		return err
	}
	return tx.Commit()
}

const riderColumns = `
	dr.id, dr.user_id, u.name, u.email, u.phone, dr.vehicle_type,
	COALESCE(dr.plate_number, ''), u.status, dr.created_at, dr.updated_at`

func (r *postgresRepository) GetRiderByID(ctx context.Context, id string) (*Rider, error) {
	query := `SELECT` + riderColumns + `
		FROM delivery_riders dr
		JOIN users u ON u.id = dr.user_id
		WHERE dr.id = $1`

	rd := &Rider{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rd.ID, &rd.UserID, &rd.Name, &rd.Email, &rd.Phone, &rd.VehicleType,
		&rd.PlateNumber, &rd.Status, &rd.CreatedAt, &rd.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rd, nil
}

func (r *postgresRepository) ListRiders(ctx context.Context) ([]*Rider, error) {
	query := `SELECT` + riderColumns + `,
		(SELECT COUNT(*) FROM deliveries d
			WHERE d.rider_id = dr.id AND d.status = ANY($1)) AS active_tasks
		FROM delivery_riders dr
		JOIN users u ON u.id = dr.user_id
		ORDER BY u.name ASC`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(activeStatuses()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	riders := []*Rider{}
	for rows.Next() {
		rd := &Rider{}
		err := rows.Scan(&rd.ID, &rd.UserID, &rd.Name, &rd.Email, &rd.Phone,
			&rd.VehicleType, &rd.PlateNumber, &rd.Status, &rd.CreatedAt,
			&rd.UpdatedAt, &rd.ActiveTasks)
		if err != nil {
			return nil, err
		}
		riders = append(riders, rd)
	}
	return riders, rows.Err()
}

func (r *postgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, rd *Rider) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET name = $1, phone = $2, updated_at = NOW()
		WHERE id = $3`,
		rd.Name, rd.Phone, rd.UserID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE delivery_riders SET vehicle_type = $1, plate_number = $2, updated_at = NOW()
		WHERE id = $3`,
		rd.VehicleType, nullable(rd.PlateNumber), rd.ID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresRepository) SetPassword(ctx context.Context, riderID, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET password_hash = $1, updated_at = NOW()
		WHERE id = (SELECT user_id FROM delivery_riders WHERE id = $2)`,
		passwordHash, riderID)
	return err
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *postgresRepository) CountActiveDeliveries(ctx context.Context, riderID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM deliveries
		WHERE rider_id = $1 AND status = ANY($2)`,
		riderID, pq.Array(activeStatuses())).Scan(&n)
	return n, err
}

func (r *postgresRepository) CascadeStatus(ctx context.Context, riderID, status, changedBy string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET status = $1, updated_at = NOW()
		WHERE id = (SELECT user_id FROM delivery_riders WHERE id = $2)`,
		status, riderID)
	if err != nil {
		return 0, err
	}

	if status == string(user.StatusActive) {
		return 0, tx.Commit()
	}

	// Every order behind one of the rider's in-flight deliveries moves to
	// the admin queue. The delivery row stays put so reassignment can
	// reuse it.
	rows, err := tx.QueryContext(ctx, `
		SELECT d.order_id FROM deliveries d
		JOIN orders o ON o.id = d.order_id
		WHERE d.rider_id = $1 AND d.status = ANY($2)
		AND o.status NOT IN ($3, $4, $5)`,
		riderID, pq.Array(activeStatuses()),
		order.StatusDelivered, order.StatusCancelled, order.StatusRejected)
	if err != nil {
		return 0, err
	}

	var orderIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, err
		}
		orderIDs = append(orderIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, orderID := range orderIDs {
		_, err = tx.ExecContext(ctx, `
			UPDATE orders
			SET status = $1, escalated_to_admin = TRUE, escalated_at = NOW(), updated_at = NOW()
			WHERE id = $2`,
			order.StatusEscalated, orderID)
		if err != nil {
			return 0, err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_history (id, order_id, status, description,
				failure_reason, is_escalation, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, TRUE, $6, NOW())`,
			uuid.New(), orderID, order.StatusEscalated,
			"Order escalated to admin: assigned rider is no longer available",
			cascadeReason, changedBy)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(orderIDs), nil
}

func (r *postgresRepository) DeleteRider(ctx context.Context, riderID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var userID uuid.UUID
	err = tx.QueryRowContext(ctx,
		`DELETE FROM delivery_riders WHERE id = $1 RETURNING user_id`, riderID).Scan(&userID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func activeStatuses() []string {
	out := make([]string, len(order.ActiveDeliveryStatuses))
	for i, s := range order.ActiveDeliveryStatuses {
		out[i] = string(s)
	}
	return out
}
