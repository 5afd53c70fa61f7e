package user

import (
	"time"

	"github.com/google/uuid"
)

// Role determines which surface of the system an account can use.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
	RoleDelivery Role = "DELIVERY"
)

// AccountStatus is the administrative standing of an account.
// Riders with a non-ACTIVE status cannot act on deliveries.
type AccountStatus string

const (
	StatusActive    AccountStatus = "ACTIVE"
	StatusInactive  AccountStatus = "INACTIVE"
	StatusSuspended AccountStatus = "SUSPENDED"
)

// User represents an account in the system.
// @Description User information
// @Description with id, email, name, phone, role, status, created_at, and updated_at
type User struct {
	ID           uuid.UUID     `json:"id"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Name         string        `json:"name"`
	Phone        string        `json:"phone,omitempty"`
	Role         Role          `json:"role"`
	Status       AccountStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
