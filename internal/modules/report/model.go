package report

import "time"

// DashboardStats is the admin landing-page snapshot.
type DashboardStats struct {
	PendingOrders    int     `json:"pending_orders"`
	EscalatedOrders  int     `json:"escalated_orders"`
	ActiveDeliveries int     `json:"active_deliveries"`
	LowStockProducts int     `json:"low_stock_products"`
	TodaySales       float64 `json:"today_sales"`
	TodayDelivered   int     `json:"today_delivered"`
}

// SalesRow is one day of delivered-order revenue.
type SalesRow struct {
	Day        time.Time `json:"day"`
	OrderCount int       `json:"order_count"`
	Revenue    float64   `json:"revenue"`
}

// SalesSummary aggregates delivered orders over a date range.
type SalesSummary struct {
	From       time.Time  `json:"from"`
	To         time.Time  `json:"to"`
	OrderCount int        `json:"order_count"`
	Revenue    float64    `json:"revenue"`
	Daily      []SalesRow `json:"daily"`
}
