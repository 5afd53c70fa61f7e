package customer

import "context"

// Repository defines data access for customer profiles.
type Repository interface {
	// GetCustomerByID retrieves a customer with joined user fields.
	GetCustomerByID(ctx context.Context, id string) (*Customer, error)

	// GetCustomerByUserID retrieves the profile belonging to a user account.
	GetCustomerByUserID(ctx context.Context, userID string) (*Customer, error)

	// ListCustomers returns all customers with joined user fields, newest first.
	ListCustomers(ctx context.Context) ([]*Customer, error)

	// UpdateCustomer applies profile and user-row changes in one transaction.
	UpdateCustomer(ctx context.Context, c *Customer) error
}
