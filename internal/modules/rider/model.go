package rider

import (
	"time"

	"github.com/google/uuid"

	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/user"
)

// VehicleType is the rider's vehicle, matched to delivery zones.
type VehicleType string

const (
	VehicleTricycle VehicleType = "TRICYCLE"
	VehicleTruck    VehicleType = "TRUCK"
)

// Rider is a delivery rider profile joined with its user account.
type Rider struct {
	ID          uuid.UUID          `json:"id"`
	UserID      uuid.UUID          `json:"user_id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	VehicleType VehicleType        `json:"vehicle_type"`
	PlateNumber string             `json:"plate_number,omitempty"`
	Status      user.AccountStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`

	// ActiveTasks is populated on admin listings.
	ActiveTasks int `json:"active_tasks"`
}

// CreateRiderRequest is the admin payload for onboarding a rider.
type CreateRiderRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	VehicleType string `json:"vehicle_type"`
	PlateNumber string `json:"plate_number,omitempty"`
}

// UpdateRiderRequest carries partial updates. Setting Status to INACTIVE
// or SUSPENDED triggers the escalation cascade on the rider's in-flight
// deliveries.
type UpdateRiderRequest struct {
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Password    *string `json:"password,omitempty"`
	VehicleType *string `json:"vehicle_type,omitempty"`
	PlateNumber *string `json:"plate_number,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// UpdateRiderResult reports the update plus how many in-flight orders the
// deactivation cascade escalated to the admin queue.
type UpdateRiderResult struct {
	Rider           *Rider `json:"rider"`
	EscalatedOrders int    `json:"escalated_orders"`
}
