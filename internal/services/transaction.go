package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"projectledger/internal/domain"
)

type transactionService struct {
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
	contextTimeout  time.Duration
}

func NewTransactionService(transactionRepo domain.TransactionRepository, categoryRepo domain.CategoryRepository, timeout time.Duration) domain.TransactionService {
	return &transactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		contextTimeout:  timeout,
	}
}

func (s *transactionService) List(ctx context.Context, filter domain.TransactionFilter, params domain.PaginationParams) (*domain.ListResult[*domain.Transaction], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var problems []string
	if filter.Type != "" && !filter.Type.Valid() {
		problems = append(problems, "type must be income or expense")
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		problems = append(problems, "to must not be before from")
	}
	if len(problems) > 0 {
		return nil, domain.NewValidationError(problems...)
	}
	res, err := listPage(ctx, params,
		func(ctx context.Context) (int, error) { return s.transactionRepo.Count(ctx, filter) },
		func(ctx context.Context, limit, offset int) ([]*domain.Transaction, error) {
			return s.transactionRepo.List(ctx, filter, limit, offset)
		},
	)
	return res, wrapErr("failed to list transactions", err)
}

func (s *transactionService) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	t, err := s.transactionRepo.GetByID(ctx, id)
	return t, wrapErr("failed to get transaction", err)
}

func (s *transactionService) Create(ctx context.Context, t *domain.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if t.CreatedBy == "" {
		return domain.NewValidationError("transaction author is required")
	}
	if err := s.check(ctx, t); err != nil {
		return err
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	return wrapErr("failed to create transaction", s.transactionRepo.Create(ctx, t))
}

func (s *transactionService) Update(ctx context.Context, t *domain.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.check(ctx, t); err != nil {
		return err
	}
	t.UpdatedAt = time.Now()
	return wrapErr("failed to update transaction", s.transactionRepo.Update(ctx, t))
}

func (s *transactionService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return wrapErr("failed to delete transaction", s.transactionRepo.Delete(ctx, id))
}

// check validates t and makes sure its category, if any, has the same type.
func (s *transactionService) check(ctx context.Context, t *domain.Transaction) error {
	t.Description = strings.TrimSpace(t.Description)
	if err := t.Validate(); err != nil {
		return err
	}
	if t.CategoryID == nil {
		return nil
	}
	category, err := s.categoryRepo.GetByID(ctx, *t.CategoryID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewValidationError("category does not exist")
	}
	if err != nil {
		return wrapErr("failed to get category", err)
	}
	if category.Type != t.Type {
		return domain.NewValidationError("category type does not match transaction type")
	}
	return nil
}
