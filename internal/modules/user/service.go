package user

import "context"

// Service defines the interface for user-related business logic.
type Service interface {
	// RegisterCustomer creates a CUSTOMER account together with its customer profile.
	RegisterCustomer(ctx context.Context, req RegisterRequest) (*User, error)

	// GetUser retrieves a user by UUID.
	GetUser(ctx context.Context, id string) (*User, error)
}

// RegisterRequest is the payload for customer self-registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Barangay string `json:"barangay"`
	Address  string `json:"address"`
}
