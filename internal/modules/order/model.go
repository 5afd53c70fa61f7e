package order

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusAssigned       OrderStatus = "ASSIGNED"
	StatusPreparing      OrderStatus = "PREPARING" // legacy alias of ASSIGNED, kept for old rows
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusDeliveryFailed OrderStatus = "DELIVERY_FAILED"
	StatusEscalated      OrderStatus = "ESCALATED_TO_ADMIN"
	StatusCancelled      OrderStatus = "CANCELLED"
	StatusRejected       OrderStatus = "REJECTED"
)

// NormalizeStatus maps legacy aliases onto the canonical status set.
func NormalizeStatus(s OrderStatus) OrderStatus {
	if s == StatusPreparing {
		return StatusAssigned
	}
	return s
}

// validTransitions defines the allowed order status state machine.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusConfirmed, StatusCancelled, StatusRejected},
	StatusConfirmed:      {StatusAssigned},
	StatusAssigned:       {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered, StatusDeliveryFailed, StatusEscalated},
	StatusDeliveryFailed: {StatusOutForDelivery, StatusCancelled},
	StatusEscalated:      {StatusAssigned, StatusCancelled, StatusRejected},
	StatusDelivered:      {},
	StatusCancelled:      {},
	StatusRejected:       {},
}

// CanTransition returns true if an order may move from current to next.
func CanTransition(current, next OrderStatus) bool {
	allowed, ok := validTransitions[NormalizeStatus(current)]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions exist from the status.
func IsTerminal(s OrderStatus) bool {
	return len(validTransitions[NormalizeStatus(s)]) == 0
}

// DeliveryStatus represents the state of a delivery task, coupled to but
// distinct from the parent order's status.
type DeliveryStatus string

const (
	DeliveryAssigned  DeliveryStatus = "ASSIGNED"
	DeliveryPickedUp  DeliveryStatus = "PICKED_UP"
	DeliveryInTransit DeliveryStatus = "IN_TRANSIT"
	DeliveryDelivered DeliveryStatus = "DELIVERED"
	DeliveryFailed    DeliveryStatus = "FAILED"
)

var validDeliveryTransitions = map[DeliveryStatus][]DeliveryStatus{
	DeliveryAssigned:  {DeliveryPickedUp},
	DeliveryPickedUp:  {DeliveryInTransit},
	DeliveryInTransit: {DeliveryDelivered, DeliveryFailed},
	DeliveryDelivered: {},
	DeliveryFailed:    {DeliveryInTransit}, // customer-initiated retry
}

// CanAdvanceDelivery returns true if a delivery may move from current to next.
func CanAdvanceDelivery(current, next DeliveryStatus) bool {
	for _, s := range validDeliveryTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// ActiveDeliveryStatuses are the delivery states considered in-flight for
// rider task lists and the deactivation cascade.
var ActiveDeliveryStatuses = []DeliveryStatus{DeliveryAssigned, DeliveryPickedUp, DeliveryInTransit}

// DeliveryType is the delivery mode derived from the destination barangay.
type DeliveryType string

const (
	DeliveryFlexible  DeliveryType = "FLEXIBLE"  // nearby zones, tricycle
	DeliveryScheduled DeliveryType = "SCHEDULED" // distant zones, truck runs
)

// PaymentMethod is how the customer pays on delivery.
type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "COD"
	PaymentGCash   PaymentMethod = "GCASH"
	PaymentPayMaya PaymentMethod = "PAYMAYA"
)

// Order represents a customer's water order.
type Order struct {
	ID               uuid.UUID     `json:"id"`
	OrderNumber      string        `json:"order_number"`
	CustomerID       uuid.UUID     `json:"customer_id"`
	Status           OrderStatus   `json:"status"`
	DeliveryType     DeliveryType  `json:"delivery_type"`
	DeliveryBarangay string        `json:"delivery_barangay"`
	DeliveryAddress  string        `json:"delivery_address"`
	DeliveryNotes    string        `json:"delivery_notes,omitempty"`
	PaymentMethod    PaymentMethod `json:"payment_method"`
	TotalAmount      float64       `json:"total_amount"`
	FailureReasons   []string      `json:"failure_reasons,omitempty"`
	DeliveryAttempts int           `json:"delivery_attempts"`
	EscalatedToAdmin bool          `json:"escalated_to_admin"`
	EscalatedAt      *time.Time    `json:"escalated_at,omitempty"`
	Items            []*OrderItem  `json:"items,omitempty"`
	Delivery         *Delivery     `json:"delivery,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// OrderItem is a single line item. Unit prices are snapshotted at order
// creation; later catalog changes never touch existing orders.
type OrderItem struct {
	ID          uuid.UUID `json:"id"`
	OrderID     uuid.UUID `json:"order_id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	Subtotal    float64   `json:"subtotal"`
}

// Delivery is the single delivery task attached to an order. A failed
// delivery is retried or reassigned on this same record, never duplicated.
type Delivery struct {
	ID           uuid.UUID      `json:"id"`
	OrderID      uuid.UUID      `json:"order_id"`
	RiderID      uuid.UUID      `json:"rider_id"`
	DeliveryType DeliveryType   `json:"delivery_type"`
	Status       DeliveryStatus `json:"status"`
	Notes        string         `json:"notes,omitempty"`
	AssignedAt   time.Time      `json:"assigned_at"`
	PickedUpAt   *time.Time     `json:"picked_up_at,omitempty"`
	DeliveredAt  *time.Time     `json:"delivered_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	// Order is populated on rider task lists so the app can show the
	// destination and customer contact without extra round trips.
	Order *Order `json:"order,omitempty"`
}

// HistoryEntry is one append-only audit record for an order. Entries are
// never mutated or deleted.
type HistoryEntry struct {
	ID            uuid.UUID   `json:"id"`
	OrderID       uuid.UUID   `json:"order_id"`
	Status        OrderStatus `json:"status"`
	Description   string      `json:"description"`
	FailureReason string      `json:"failure_reason,omitempty"`
	IsEscalation  bool        `json:"is_escalation"`
	CreatedBy     uuid.UUID   `json:"created_by"`
	CreatedAt     time.Time   `json:"created_at"`
}

// CartItem describes one requested line during checkout.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// PlaceOrderRequest is the payload for creating a new order. The delivery
// type is derived from the barangay server-side.
type PlaceOrderRequest struct {
	Items            []CartItem `json:"items"`
	DeliveryBarangay string     `json:"delivery_barangay"`
	DeliveryAddress  string     `json:"delivery_address"`
	DeliveryNotes    string     `json:"delivery_notes,omitempty"`
	PaymentMethod    string     `json:"payment_method,omitempty"`
}

// AssignRiderRequest is the admin payload for assigning or reassigning a rider.
type AssignRiderRequest struct {
	RiderID string `json:"rider_id"`
}

// AdvanceDeliveryRequest is the rider payload for progressing a delivery.
type AdvanceDeliveryRequest struct {
	Status        string `json:"status"`
	Notes         string `json:"notes,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// CancelOrderRequest carries the optional cancellation reason.
type CancelOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}

// RejectOrderRequest carries the rejection reason, mandatory when the
// order sits in ESCALATED_TO_ADMIN.
type RejectOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}

// generateOrderNumber creates a human-readable order number: ORD-YYMMDD-NNNN.
// Uniqueness is probabilistic, matching the station's existing numbering.
func generateOrderNumber() string {
	date := time.Now().UTC().Format("060102")
	return fmt.Sprintf("ORD-%s-%04d", date, 1000+rand.Intn(9000))
}
