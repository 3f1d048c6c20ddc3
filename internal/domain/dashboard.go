package domain

import (
	"context"
	"time"
)

// CategoryAmount is an amount aggregated by category name.
type CategoryAmount struct {
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
}

// Period bounds dashboard aggregates. Nil ends are open.
type Period struct {
	From *time.Time
	To   *time.Time
}

// DashboardSummary is the headline figures of the dashboard.
// swagger:model DashboardSummary
type DashboardSummary struct {
	IncomeCents       int64            `json:"income_cents"`
	ExpenseCents      int64            `json:"expense_cents"`
	BalanceCents      int64            `json:"balance_cents"`
	OpenDebtCents     int64            `json:"open_debt_cents"`
	ActiveProjects    int              `json:"active_projects"`
	ExpenseByCategory []CategoryAmount `json:"expense_by_category"`
}

// DashboardRepository runs the aggregate queries behind the dashboard.
type DashboardRepository interface {
	SumTransactions(ctx context.Context, t TransactionType, period Period) (int64, error)
	SumOpenDebt(ctx context.Context) (int64, error)
	CountProjects(ctx context.Context, status ProjectStatus) (int, error)
	ExpenseByCategory(ctx context.Context, period Period) ([]CategoryAmount, error)
}

// DashboardService computes the dashboard summary.
type DashboardService interface {
	Summary(ctx context.Context, period Period) (*DashboardSummary, error)
}
