package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"projectledger/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var debtRowColumns = []string{"id", "company_id", "project_id", "description", "amount_cents", "paid_cents", "due_date", "status", "created_at", "updated_at"}

func TestDebtRepository_GetAndUpdate(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM debts WHERE id = \$1`).
		WithArgs("d1").
		WillReturnRows(sqlmock.NewRows(debtRowColumns).
			AddRow("d1", "comp-1", nil, "supplier invoice", int64(10000), int64(2500), due, "open", now, now))
	mock.ExpectQuery(`UPDATE debts SET .* WHERE id = \$7 AND paid_cents <= \$4 RETURNING paid_cents, status`).
		WithArgs("comp-1", nil, "supplier invoice", int64(12000), due, now, "d1").
		WillReturnRows(sqlmock.NewRows([]string{"paid_cents", "status"}).AddRow(int64(2500), "open"))

	repo := NewDebtRepository(db)
	d, err := repo.GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, int64(7500), d.RemainingCents())
	assert.Nil(t, d.ProjectID)
	require.NotNil(t, d.DueDate)

	d.AmountCents = 12000
	d.PaidCents = 0
	d.UpdatedAt = now
	require.NoError(t, repo.Update(ctx, d))
	assert.Equal(t, int64(2500), d.PaidCents)
	assert.Equal(t, domain.DebtOpen, d.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDebtRepository_UpdateBelowPaid(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`UPDATE debts`).WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`FROM debts WHERE id = \$1`).WithArgs("d1").
		WillReturnRows(sqlmock.NewRows(debtRowColumns).
			AddRow("d1", nil, nil, "supplier invoice", int64(10000), int64(6000), nil, "open", now, now))

	err = NewDebtRepository(db).Update(ctx, &domain.Debt{ID: "d1", Description: "supplier invoice", AmountCents: 5000, UpdatedAt: now})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "60.00 already paid")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDebtRepository_AddPayment(t *testing.T) {
	now := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)
	created := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	paymentQuery := `UPDATE debts SET paid_cents = paid_cents \+ \$1, status = CASE WHEN paid_cents \+ \$1 = amount_cents THEN 'paid' ELSE 'open' END, updated_at = \$2 WHERE id = \$3 AND status = 'open' AND paid_cents \+ \$1 <= amount_cents RETURNING`

	tests := []struct {
		name       string
		cents      int64
		mock       func(mock sqlmock.Sqlmock)
		wantPaid   int64
		wantStatus domain.DebtStatus
		errIs      error
	}{
		{
			name:  "settles the debt",
			cents: 7500,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(paymentQuery).WithArgs(int64(7500), now, "d1").
					WillReturnRows(sqlmock.NewRows(debtRowColumns).
						AddRow("d1", nil, nil, "supplier invoice", int64(10000), int64(10000), nil, "paid", created, now))
			},
			wantPaid:   10000,
			wantStatus: domain.DebtPaid,
		},
		{
			name:  "overpayment",
			cents: 8000,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(paymentQuery).WithArgs(int64(8000), now, "d1").WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery(`FROM debts WHERE id = \$1`).WithArgs("d1").
					WillReturnRows(sqlmock.NewRows(debtRowColumns).
						AddRow("d1", nil, nil, "supplier invoice", int64(10000), int64(2500), nil, "open", created, created))
			},
			errIs: domain.ErrInvalidInput,
		},
		{
			name:  "already paid",
			cents: 100,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(paymentQuery).WithArgs(int64(100), now, "d1").WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery(`FROM debts WHERE id = \$1`).WithArgs("d1").
					WillReturnRows(sqlmock.NewRows(debtRowColumns).
						AddRow("d1", nil, nil, "supplier invoice", int64(10000), int64(10000), nil, "paid", created, now))
			},
			errIs: domain.ErrInvalidInput,
		},
		{
			name:  "not found",
			cents: 100,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(paymentQuery).WithArgs(int64(100), now, "d1").WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery(`FROM debts WHERE id = \$1`).WithArgs("d1").WillReturnError(sql.ErrNoRows)
			},
			errIs: domain.ErrNotFound,
		},
		{
			name:  "row changed after the update missed",
			cents: 100,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(paymentQuery).WithArgs(int64(100), now, "d1").WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery(`FROM debts WHERE id = \$1`).WithArgs("d1").
					WillReturnRows(sqlmock.NewRows(debtRowColumns).
						AddRow("d1", nil, nil, "supplier invoice", int64(10000), int64(0), nil, "open", created, now))
			},
			errIs: domain.ErrConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)

			d, err := NewDebtRepository(db).AddPayment(context.Background(), "d1", tt.cents, now)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantPaid, d.PaidCents)
				assert.Equal(t, tt.wantStatus, d.Status)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDebtRepository_CountByStatus(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM debts WHERE status = \$1`).
		WithArgs("open").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := NewDebtRepository(db).Count(ctx, domain.DebtFilter{Status: domain.DebtOpen})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	require.NoError(t, mock.ExpectationsWereMet())
}
