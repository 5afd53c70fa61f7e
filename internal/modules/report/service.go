package report

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/filsammy/mariclaire-waterstation-system/internal/apperr"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/order"
)

// Service computes admin dashboard and sales aggregates.
type Service interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// DashboardStats fans the independent counters out concurrently and fails
// as a unit if any query fails.
func (s *service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.repo.CountOrdersByStatus(ctx, string(order.StatusPending))
		stats.PendingOrders = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountOrdersByStatus(ctx, string(order.StatusEscalated))
		stats.EscalatedOrders = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountActiveDeliveries(ctx)
		stats.ActiveDeliveries = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountLowStockProducts(ctx)
		stats.LowStockProducts = n
		return err
	})
	g.Go(func() error {
		count, revenue, err := s.repo.DeliveredSince(ctx, startOfToday())
		stats.TodayDelivered = count
		stats.TodaySales = revenue
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *service) SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("date range end must be after start: %w", apperr.ErrValidation)
	}

	daily, err := s.repo.SalesByDay(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary := &SalesSummary{From: from, To: to, Daily: daily}
	for _, row := range daily {
		summary.OrderCount += row.OrderCount
		summary.Revenue += row.Revenue
	}
	return summary, nil
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
