package catalog

import "context"

// Repository defines data access for catalog products.
type Repository interface {
	// CreateProduct persists the product and its inventory record atomically.
	CreateProduct(ctx context.Context, p *Product, initialStock, minStock int) error

	// GetProductByID retrieves a product with its joined stock count.
	GetProductByID(ctx context.Context, id string) (*Product, error)

	// ListProducts returns the catalog, optionally only active products.
	ListProducts(ctx context.Context, activeOnly bool) ([]*Product, error)

	// UpdateProduct writes the mutable product fields.
	UpdateProduct(ctx context.Context, p *Product) error
}
