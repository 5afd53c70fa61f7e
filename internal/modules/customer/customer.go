package customer

import (
	"time"

	"github.com/google/uuid"
)

// CustomerType distinguishes ordinary households from outlet resellers.
// Resellers are the sole beneficiaries of the bulk water discount.
type CustomerType string

const (
	TypeRegular        CustomerType = "REGULAR"
	TypeOutletReseller CustomerType = "OUTLET_RESELLER"
)

// Customer is the ordering profile attached to a CUSTOMER user account.
// @Description Customer profile
// @Description with id, user_id, customer_type, barangay, address, created_at, and updated_at
type Customer struct {
	ID           uuid.UUID    `json:"id"`
	UserID       uuid.UUID    `json:"user_id"`
	CustomerType CustomerType `json:"customer_type"`
	Barangay     string       `json:"barangay"`
	Address      string       `json:"address"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	// Joined from the user row for admin views.
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// UpdateCustomerRequest is the admin payload for editing a customer.
// Empty fields are left unchanged.
type UpdateCustomerRequest struct {
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	CustomerType string `json:"customer_type,omitempty"`
	Barangay     string `json:"barangay,omitempty"`
	Address      string `json:"address,omitempty"`
}
