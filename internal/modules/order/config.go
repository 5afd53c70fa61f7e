package order

import (
	"os"
	"strconv"
)

// Config carries the lifecycle thresholds. They are passed in rather than
// hard-coded so the manager stays pure and testable.
type Config struct {
	// MaxDeliveryAttempts is the failure count at which an order escalates
	// to admin instead of remaining customer-retryable.
	MaxDeliveryAttempts int

	// BulkDiscountMinUnits is the water-unit quantity at which outlet
	// resellers get the discounted rate.
	BulkDiscountMinUnits int

	// BulkDiscountPrice is the per-unit price applied to every water line
	// of a qualifying reseller order.
	BulkDiscountPrice float64
}

// DefaultConfig returns the station's standing business rules.
func DefaultConfig() Config {
	return Config{
		MaxDeliveryAttempts:  2,
		BulkDiscountMinUnits: 10,
		BulkDiscountPrice:    20.00,
	}
}

// ConfigFromEnv overrides the defaults with environment values when set.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v, err := strconv.Atoi(os.Getenv("MAX_DELIVERY_ATTEMPTS")); err == nil && v > 0 {
		cfg.MaxDeliveryAttempts = v
	}
	if v, err := strconv.Atoi(os.Getenv("BULK_DISCOUNT_MIN_UNITS")); err == nil && v > 0 {
		cfg.BulkDiscountMinUnits = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("BULK_DISCOUNT_PRICE"), 64); err == nil && v > 0 {
		cfg.BulkDiscountPrice = v
	}
	return cfg
}
