package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"projectledger/internal/domain"
)

type debtRepository struct {
	DB *sql.DB
}

func NewDebtRepository(db *sql.DB) domain.DebtRepository {
	return &debtRepository{DB: db}
}

const debtColumns = `id, company_id, project_id, description, amount_cents, paid_cents, due_date, status, created_at, updated_at`

func scanDebt(row rowScanner) (*domain.Debt, error) {
	d := &domain.Debt{}
	var company, project sql.NullString
	var due sql.NullTime
	err := row.Scan(&d.ID, &company, &project, &d.Description, &d.AmountCents, &d.PaidCents,
		&due, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.CompanyID = stringPtr(company)
	d.ProjectID = stringPtr(project)
	d.DueDate = timePtr(due)
	return d, nil
}

func (r *debtRepository) Create(ctx context.Context, d *domain.Debt) error {
	query := `
		INSERT INTO debts (company_id, project_id, description, amount_cents, paid_cents, due_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, d.CompanyID, d.ProjectID, d.Description, d.AmountCents, d.PaidCents,
		d.DueDate, d.Status, d.CreatedAt, d.UpdatedAt).Scan(&d.ID)
	return mapWriteError(err)
}

func (r *debtRepository) GetByID(ctx context.Context, id string) (*domain.Debt, error) {
	d, err := scanDebt(r.DB.QueryRowContext(ctx, `SELECT `+debtColumns+` FROM debts WHERE id = $1`, id))
	if err != nil {
		return nil, mapNoRows(err, domain.ErrNotFound)
	}
	return d, nil
}

// Update rewrites the editable columns. The stored paid amount is kept and
// the row is only touched when the new amount still covers it.
func (r *debtRepository) Update(ctx context.Context, d *domain.Debt) error {
	query := `
		UPDATE debts
		SET company_id = $1, project_id = $2, description = $3, amount_cents = $4, due_date = $5,
			status = CASE WHEN paid_cents = $4 THEN 'paid' ELSE 'open' END, updated_at = $6
		WHERE id = $7 AND paid_cents <= $4
		RETURNING paid_cents, status
	`
	err := r.DB.QueryRowContext(ctx, query, d.CompanyID, d.ProjectID, d.Description, d.AmountCents,
		d.DueDate, d.UpdatedAt, d.ID).Scan(&d.PaidCents, &d.Status)
	if errors.Is(err, sql.ErrNoRows) {
		stored, err := r.GetByID(ctx, d.ID)
		if err != nil {
			return err
		}
		return domain.NewValidationError(fmt.Sprintf("amount cannot be less than the %s already paid", domain.FormatAmount(stored.PaidCents)))
	}
	return mapWriteError(err)
}

// AddPayment adds cents to the paid amount in a single statement, so
// concurrent payments cannot both pass the remaining-amount check.
func (r *debtRepository) AddPayment(ctx context.Context, id string, cents int64, at time.Time) (*domain.Debt, error) {
	query := `
		UPDATE debts
		SET paid_cents = paid_cents + $1,
			status = CASE WHEN paid_cents + $1 = amount_cents THEN 'paid' ELSE 'open' END,
			updated_at = $2
		WHERE id = $3 AND status = 'open' AND paid_cents + $1 <= amount_cents
		RETURNING ` + debtColumns
	d, err := scanDebt(r.DB.QueryRowContext(ctx, query, cents, at, id))
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, mapWriteError(err)
	}

	// Nothing matched: report why using the current row.
	stored, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := stored.ApplyPayment(cents); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: debt changed while recording the payment", domain.ErrConflict)
}

func (r *debtRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM debts WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return expectAffected(result, domain.ErrNotFound)
}

func debtWhere(filter domain.DebtFilter) *whereBuilder {
	w := &whereBuilder{}
	w.addIf(filter.Status != "", "status = $%d", filter.Status)
	w.addIf(filter.CompanyID != "", "company_id = $%d", filter.CompanyID)
	w.addIf(filter.ProjectID != "", "project_id = $%d", filter.ProjectID)
	return w
}

func (r *debtRepository) Count(ctx context.Context, filter domain.DebtFilter) (int, error) {
	w := debtWhere(filter)
	var total int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM debts"+w.String(), w.args...).Scan(&total)
	return total, err
}

func (r *debtRepository) List(ctx context.Context, filter domain.DebtFilter, limit, offset int) ([]*domain.Debt, error) {
	w := debtWhere(filter)
	pageClause, args := w.page(limit, offset)
	// Open debts first, soonest due first; debts without a due date last.
	query := "SELECT " + debtColumns + " FROM debts" + w.String() + " ORDER BY status, due_date NULLS LAST, created_at DESC, id " + pageClause
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	debts := make([]*domain.Debt, 0)
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}
