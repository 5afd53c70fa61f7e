package order

import (
	"context"

	"github.com/google/uuid"
)

// CustomerRef is the slice of a customer profile the lifecycle manager needs.
type CustomerRef struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Type   string // REGULAR or OUTLET_RESELLER
}

// ProductLine is a catalog snapshot row read inside the order transaction.
type ProductLine struct {
	ID       uuid.UUID
	Name     string
	Type     string // WATER or CONTAINER
	Price    float64
	IsActive bool
	Stock    int
}

// RiderRef is the slice of a rider profile the lifecycle manager needs.
type RiderRef struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	AccountStatus string // ACTIVE, INACTIVE, SUSPENDED
}

// Repository defines data access for the order lifecycle. Every mutating
// method runs as one atomic transaction: order, delivery, inventory, and
// history writes commit or roll back together.
type Repository interface {
	// Lookups feeding validation and pricing.
	GetCustomerByUserID(ctx context.Context, userID string) (*CustomerRef, error)
	GetProductLines(ctx context.Context, productIDs []string) (map[string]*ProductLine, error)
	GetRider(ctx context.Context, riderID string) (*RiderRef, error)
	GetRiderByUserID(ctx context.Context, userID string) (*RiderRef, error)

	// CreateOrder persists the order, its items, the guarded inventory
	// decrement, and the first history entry atomically. It fails without
	// side effects when any line's stock is insufficient.
	CreateOrder(ctx context.Context, o *Order, entry *HistoryEntry) error

	// SaveTransition persists an order state change, the delivery upsert
	// (when d is non-nil), and the history entry atomically.
	SaveTransition(ctx context.Context, o *Order, d *Delivery, entry *HistoryEntry) error

	GetOrderByID(ctx context.Context, id string) (*Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*Order, error)
	ListOrders(ctx context.Context, status string) ([]*Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]*Order, error)

	GetDeliveryByID(ctx context.Context, id string) (*Delivery, error)
	GetDeliveryByOrderID(ctx context.Context, orderID string) (*Delivery, error)

	// ListRiderTasks returns the rider's in-flight deliveries with their
	// orders attached.
	ListRiderTasks(ctx context.Context, riderID string) ([]*Delivery, error)

	// ListHistory returns the append-only trail, oldest first.
	ListHistory(ctx context.Context, orderID string) ([]*HistoryEntry, error)
}
