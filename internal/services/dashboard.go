package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"projectledger/internal/domain"
)

type dashboardService struct {
	dashboardRepo  domain.DashboardRepository
	contextTimeout time.Duration
}

func NewDashboardService(dashboardRepo domain.DashboardRepository, timeout time.Duration) domain.DashboardService {
	return &dashboardService{dashboardRepo: dashboardRepo, contextTimeout: timeout}
}

// Summary runs the aggregate queries concurrently; the first failure cancels the rest.
func (s *dashboardService) Summary(ctx context.Context, period domain.Period) (*domain.DashboardSummary, error) {
	if period.From != nil && period.To != nil && period.To.Before(*period.From) {
		return nil, domain.NewValidationError("to must not be before from")
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	summary := &domain.DashboardSummary{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary.IncomeCents, err = s.dashboardRepo.SumTransactions(gctx, domain.TransactionIncome, period)
		return wrapErr("sum income", err)
	})
	g.Go(func() error {
		var err error
		summary.ExpenseCents, err = s.dashboardRepo.SumTransactions(gctx, domain.TransactionExpense, period)
		return wrapErr("sum expenses", err)
	})
	g.Go(func() error {
		var err error
		summary.OpenDebtCents, err = s.dashboardRepo.SumOpenDebt(gctx)
		return wrapErr("sum open debt", err)
	})
	g.Go(func() error {
		var err error
		summary.ActiveProjects, err = s.dashboardRepo.CountProjects(gctx, domain.ProjectActive)
		return wrapErr("count active projects", err)
	})
	g.Go(func() error {
		var err error
		summary.ExpenseByCategory, err = s.dashboardRepo.ExpenseByCategory(gctx, period)
		return wrapErr("expense by category", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	summary.BalanceCents = summary.IncomeCents - summary.ExpenseCents
	return summary, nil
}
