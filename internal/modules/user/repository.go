package user

import "context"

// Repository defines data access for user accounts.
type Repository interface {
	// CreateCustomerAccount persists a new CUSTOMER user and their customer
	// profile atomically in one transaction.
	CreateCustomerAccount(ctx context.Context, u *User, barangay, address string) error

	// GetUserByID retrieves a user by UUID.
	GetUserByID(ctx context.Context, id string) (*User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// EmailExists reports whether an account with the email is already registered.
	EmailExists(ctx context.Context, email string) (bool, error)
}
