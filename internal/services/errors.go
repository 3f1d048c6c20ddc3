package services

import (
	"errors"
	"fmt"

	"projectledger/internal/domain"
)

var passthroughErrors = []error{
	domain.ErrNotFound,
	domain.ErrUserNotFound,
	domain.ErrConflict,
	domain.ErrDuplicateEmail,
	domain.ErrInvalidInput,
	domain.ErrForbidden,
	domain.ErrInvalidCredentials,
}

// wrapErr adds op context to infrastructure errors. Domain errors are returned
// as-is so their messages reach the client unchanged.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, target := range passthroughErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
