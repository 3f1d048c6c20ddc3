package postgres

import (
	"context"
	"database/sql"

	"projectledger/internal/domain"
)

type dashboardRepository struct {
	DB *sql.DB
}

func NewDashboardRepository(db *sql.DB) domain.DashboardRepository {
	return &dashboardRepository{DB: db}
}

func periodWhere(w *whereBuilder, period domain.Period) {
	if period.From != nil {
		w.add("t.occurred_on >= $%d", *period.From)
	}
	if period.To != nil {
		w.add("t.occurred_on <= $%d", *period.To)
	}
}

func (r *dashboardRepository) SumTransactions(ctx context.Context, typ domain.TransactionType, period domain.Period) (int64, error) {
	w := &whereBuilder{}
	w.add("t.type = $%d", typ)
	periodWhere(w, period)
	var sum int64
	err := r.DB.QueryRowContext(ctx, "SELECT COALESCE(SUM(t.amount_cents), 0) FROM transactions t"+w.String(), w.args...).Scan(&sum)
	return sum, err
}

func (r *dashboardRepository) SumOpenDebt(ctx context.Context) (int64, error) {
	query := `SELECT COALESCE(SUM(amount_cents - paid_cents), 0) FROM debts WHERE status = $1`
	var sum int64
	err := r.DB.QueryRowContext(ctx, query, domain.DebtOpen).Scan(&sum)
	return sum, err
}

func (r *dashboardRepository) CountProjects(ctx context.Context, status domain.ProjectStatus) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE status = $1`, status).Scan(&n)
	return n, err
}

func (r *dashboardRepository) ExpenseByCategory(ctx context.Context, period domain.Period) ([]domain.CategoryAmount, error) {
	w := &whereBuilder{}
	w.add("t.type = $%d", domain.TransactionExpense)
	periodWhere(w, period)
	query := `
		SELECT COALESCE(c.name, 'Uncategorized') AS name, SUM(t.amount_cents) AS total
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		` + w.String() + `
		GROUP BY 1
		ORDER BY total DESC, name
	`
	rows, err := r.DB.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.CategoryAmount, 0)
	for rows.Next() {
		var ca domain.CategoryAmount
		if err := rows.Scan(&ca.Name, &ca.AmountCents); err != nil {
			return nil, err
		}
		out = append(out, ca)
	}
	return out, rows.Err()
}
