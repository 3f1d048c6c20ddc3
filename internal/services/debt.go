package services

import (
	"context"
	"strings"
	"time"

	"projectledger/internal/domain"
)

type debtService struct {
	debtRepo       domain.DebtRepository
	contextTimeout time.Duration
}

func NewDebtService(debtRepo domain.DebtRepository, timeout time.Duration) domain.DebtService {
	return &debtService{debtRepo: debtRepo, contextTimeout: timeout}
}

func (s *debtService) List(ctx context.Context, filter domain.DebtFilter, params domain.PaginationParams) (*domain.ListResult[*domain.Debt], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if filter.Status != "" && filter.Status != domain.DebtOpen && filter.Status != domain.DebtPaid {
		return nil, domain.NewValidationError("status must be open or paid")
	}
	res, err := listPage(ctx, params,
		func(ctx context.Context) (int, error) { return s.debtRepo.Count(ctx, filter) },
		func(ctx context.Context, limit, offset int) ([]*domain.Debt, error) {
			return s.debtRepo.List(ctx, filter, limit, offset)
		},
	)
	return res, wrapErr("failed to list debts", err)
}

func (s *debtService) GetByID(ctx context.Context, id string) (*domain.Debt, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	d, err := s.debtRepo.GetByID(ctx, id)
	return d, wrapErr("failed to get debt", err)
}

func (s *debtService) Create(ctx context.Context, d *domain.Debt) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	d.Description = strings.TrimSpace(d.Description)
	if err := d.Validate(); err != nil {
		return err
	}
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now
	return wrapErr("failed to create debt", s.debtRepo.Create(ctx, d))
}

// Update edits a debt. The paid amount is not editable: it is taken from the
// stored debt and only RecordPayment changes it.
func (s *debtService) Update(ctx context.Context, d *domain.Debt) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	stored, err := s.debtRepo.GetByID(ctx, d.ID)
	if err != nil {
		return wrapErr("failed to get debt", err)
	}
	d.PaidCents = stored.PaidCents
	d.Description = strings.TrimSpace(d.Description)
	if err := d.Validate(); err != nil {
		return err
	}
	d.UpdatedAt = time.Now()
	return wrapErr("failed to update debt", s.debtRepo.Update(ctx, d))
}

func (s *debtService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return wrapErr("failed to delete debt", s.debtRepo.Delete(ctx, id))
}

func (s *debtService) RecordPayment(ctx context.Context, id string, cents int64) (*domain.Debt, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if cents <= 0 {
		return nil, domain.NewValidationError("payment must be positive")
	}
	d, err := s.debtRepo.AddPayment(ctx, id, cents, time.Now())
	if err != nil {
		return nil, wrapErr("failed to record payment", err)
	}
	return d, nil
}
