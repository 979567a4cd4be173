package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"foodparadise/internal/model"
	"foodparadise/internal/repository"
)

// AnalyticsService computes admin dashboard figures.
type AnalyticsService interface {
	RevenueSummary(ctx context.Context) (*model.RevenueSummary, error)
	OrderBreakdown(ctx context.Context) ([]model.OrderBreakdownRow, error)
	CategoryBreakdown(ctx context.Context) (*model.CategoryBreakdown, error)
}

type analyticsService struct {
	stats    repository.StatsRepository
	payments repository.PaymentRepository
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(stats repository.StatsRepository, payments repository.PaymentRepository) AnalyticsService {
	return &analyticsService{stats: stats, payments: payments}
}

// RevenueSummary reports estimated record counts and the exact revenue total. Counts may
// lag recent writes; revenue always equals the sum over the ledger.
func (s *analyticsService) RevenueSummary(ctx context.Context) (*model.RevenueSummary, error) {
	ctx, span := tracer.Start(ctx, "analytics.RevenueSummary", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	var summary model.RevenueSummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary.Users, err = s.stats.EstimatedUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.MenuItems, err = s.stats.EstimatedMenuItems(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.Orders, err = s.stats.EstimatedPayments(gctx)
		return err
	})
	g.Go(func() (err error) {
		summary.Revenue, err = s.payments.TotalRevenue(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("revenue summary: %w", err)
	}
	return &summary, nil
}

// OrderBreakdown returns one row per purchased menu item id. Rows whose menu item no
// longer exists are kept with a nil MenuItem.
func (s *analyticsService) OrderBreakdown(ctx context.Context) ([]model.OrderBreakdownRow, error) {
	rows, err := s.payments.Breakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("order breakdown: %w", err)
	}
	return rows, nil
}

// CategoryBreakdown rolls the order breakdown up by menu category. Unmatched rows are
// left out of the totals and counted separately.
func (s *analyticsService) CategoryBreakdown(ctx context.Context) (*model.CategoryBreakdown, error) {
	rows, err := s.OrderBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	return rollUpCategories(rows), nil
}

func rollUpCategories(rows []model.OrderBreakdownRow) *model.CategoryBreakdown {
	byCategory := make(map[string]*model.CategoryStat)
	out := &model.CategoryBreakdown{Categories: []model.CategoryStat{}}
	for _, row := range rows {
		if row.MenuItem == nil {
			out.Unmatched++
			continue
		}
		stat, ok := byCategory[row.MenuItem.Category]
		if !ok {
			stat = &model.CategoryStat{Category: row.MenuItem.Category, Revenue: decimal.Zero}
			byCategory[row.MenuItem.Category] = stat
		}
		stat.Quantity++
		stat.Revenue = stat.Revenue.Add(row.MenuItem.Price)
	}
	for _, stat := range byCategory {
		out.Categories = append(out.Categories, *stat)
	}
	sort.Slice(out.Categories, func(i, j int) bool {
		return out.Categories[i].Category < out.Categories[j].Category
	})
	return out
}
