package postgres

import (
	"context"
	"database/sql"

	"projectledger/internal/domain"
)

type transactionRepository struct {
	DB *sql.DB
}

func NewTransactionRepository(db *sql.DB) domain.TransactionRepository {
	return &transactionRepository{DB: db}
}

const transactionColumns = `id, project_id, category_id, type, amount_cents, description, occurred_on, created_by, created_at, updated_at`

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	var category sql.NullString
	err := row.Scan(&t.ID, &t.ProjectID, &category, &t.Type, &t.AmountCents, &t.Description,
		&t.OccurredOn, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.CategoryID = stringPtr(category)
	return t, nil
}

func (r *transactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	query := `
		INSERT INTO transactions (project_id, category_id, type, amount_cents, description, occurred_on, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, t.ProjectID, t.CategoryID, t.Type, t.AmountCents, t.Description,
		t.OccurredOn, t.CreatedBy, t.CreatedAt, t.UpdatedAt).Scan(&t.ID)
	return mapWriteError(err)
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	t, err := scanTransaction(r.DB.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
	if err != nil {
		return nil, mapNoRows(err, domain.ErrNotFound)
	}
	return t, nil
}

func (r *transactionRepository) Update(ctx context.Context, t *domain.Transaction) error {
	query := `
		UPDATE transactions
		SET project_id = $1, category_id = $2, type = $3, amount_cents = $4, description = $5,
			occurred_on = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := r.DB.ExecContext(ctx, query, t.ProjectID, t.CategoryID, t.Type, t.AmountCents, t.Description,
		t.OccurredOn, t.UpdatedAt, t.ID)
	if err != nil {
		return mapWriteError(err)
	}
	return expectAffected(result, domain.ErrNotFound)
}

func (r *transactionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return expectAffected(result, domain.ErrNotFound)
}

func transactionWhere(filter domain.TransactionFilter) *whereBuilder {
	w := &whereBuilder{}
	w.addIf(filter.ProjectID != "", "project_id = $%d", filter.ProjectID)
	w.addIf(filter.CategoryID != "", "category_id = $%d", filter.CategoryID)
	w.addIf(filter.Type != "", "type = $%d", filter.Type)
	if filter.From != nil {
		w.add("occurred_on >= $%d", *filter.From)
	}
	if filter.To != nil {
		w.add("occurred_on <= $%d", *filter.To)
	}
	return w
}

func (r *transactionRepository) Count(ctx context.Context, filter domain.TransactionFilter) (int, error) {
	w := transactionWhere(filter)
	var total int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions"+w.String(), w.args...).Scan(&total)
	return total, err
}

func (r *transactionRepository) List(ctx context.Context, filter domain.TransactionFilter, limit, offset int) ([]*domain.Transaction, error) {
	w := transactionWhere(filter)
	pageClause, args := w.page(limit, offset)
	query := "SELECT " + transactionColumns + " FROM transactions" + w.String() + " ORDER BY occurred_on DESC, created_at DESC, id " + pageClause
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
