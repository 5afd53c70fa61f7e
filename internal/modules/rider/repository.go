package rider

import "context"

// Repository defines data access for rider profiles and the deactivation
// cascade.
type Repository interface {
	// CreateRider inserts the user account and rider profile in one
	// transaction.
	CreateRider(ctx context.Context, r *Rider, passwordHash string) error

	GetRiderByID(ctx context.Context, id string) (*Rider, error)
	ListRiders(ctx context.Context) ([]*Rider, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	// UpdateProfile updates the rider profile and its user row together.
	UpdateProfile(ctx context.Context, r *Rider) error

	// SetPassword replaces the rider's login password hash.
	SetPassword(ctx context.Context, riderID, passwordHash string) error

	// CountActiveDeliveries returns the rider's in-flight delivery count.
	CountActiveDeliveries(ctx context.Context, riderID string) (int, error)

	// CascadeStatus sets the rider's account status and, when the new
	// status is not ACTIVE, escalates every order behind an in-flight
	// delivery in the same transaction: order status, escalation flag
	// and timestamp, and one history entry per order. Returns the number
	// of orders escalated.
	CascadeStatus(ctx context.Context, riderID, status, changedBy string) (int, error)

	// DeleteRider removes the profile and its user account.
	DeleteRider(ctx context.Context, riderID string) error
}
