package catalog

import (
	"time"

	"github.com/google/uuid"
)

// ProductType separates refillable water products from physical containers.
// Only WATER lines participate in the reseller bulk discount.
type ProductType string

const (
	TypeWater     ProductType = "WATER"
	TypeContainer ProductType = "CONTAINER"
)

// WaterType classifies the water product. MVP scope carries mineral only.
type WaterType string

const WaterMineral WaterType = "MINERAL"

// Product is an item in the station's catalog.
type Product struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Type        ProductType `json:"type"`
	WaterType   *WaterType  `json:"water_type,omitempty"`
	Price       float64     `json:"price"`
	Unit        string      `json:"unit"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// CurrentStock is joined from the inventory record for listings.
	CurrentStock *int `json:"current_stock,omitempty"`
}

// CreateProductRequest is the admin payload for adding a catalog product.
type CreateProductRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Type         string  `json:"type"`
	Price        float64 `json:"price"`
	Unit         string  `json:"unit,omitempty"`
	InitialStock int     `json:"initial_stock"`
	MinStock     int     `json:"min_stock"`
}

// UpdateProductRequest edits an existing product. Zero values are ignored
// except IsActive, which uses a pointer to distinguish "unset".
type UpdateProductRequest struct {
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
