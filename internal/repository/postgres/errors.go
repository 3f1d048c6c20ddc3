package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"projectledger/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func constraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

// mapWriteError translates constraint violations raised by INSERT and UPDATE.
func mapWriteError(err error) error {
	switch pgCode(err) {
	case pgUniqueViolation:
		return fmt.Errorf("%w: record already exists", domain.ErrConflict)
	case pgForeignKeyViolation:
		return domain.NewValidationError("referenced record does not exist")
	case pgCheckViolation:
		return domain.NewValidationError(fmt.Sprintf("value rejected by constraint %s", constraintName(err)))
	}
	return err
}

// mapDeleteError translates a foreign key violation on DELETE: something still points at the row.
func mapDeleteError(err error) error {
	if pgCode(err) == pgForeignKeyViolation {
		return fmt.Errorf("%w: record is still referenced", domain.ErrConflict)
	}
	return err
}

func mapNoRows(err, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return err
}

func expectAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
