package domain

import (
	"context"
	"strings"
	"time"
)

// DebtStatus is open until the debt is fully paid.
type DebtStatus string

const (
	DebtOpen DebtStatus = "open"
	DebtPaid DebtStatus = "paid"
)

// Debt is an amount owed to or by a company, optionally tied to a project.
// swagger:model Debt
type Debt struct {
	ID          string     `json:"id"`
	CompanyID   *string    `json:"company_id"`
	ProjectID   *string    `json:"project_id"`
	Description string     `json:"description"`
	AmountCents int64      `json:"amount_cents"`
	PaidCents   int64      `json:"paid_cents"`
	DueDate     *time.Time `json:"due_date"`
	Status      DebtStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RemainingCents is what is still to be paid.
func (d *Debt) RemainingCents() int64 {
	return d.AmountCents - d.PaidCents
}

// Validate checks amounts and description and derives Status from them.
func (d *Debt) Validate() error {
	var problems []string
	if strings.TrimSpace(d.Description) == "" {
		problems = append(problems, "description is required")
	}
	if d.AmountCents <= 0 {
		problems = append(problems, "amount must be positive")
	}
	if d.PaidCents < 0 {
		problems = append(problems, "paid amount cannot be negative")
	} else if d.PaidCents > d.AmountCents {
		problems = append(problems, "paid amount cannot exceed the debt amount")
	}
	if err := validationResult(problems); err != nil {
		return err
	}
	d.Status = DebtOpen
	if d.RemainingCents() == 0 {
		d.Status = DebtPaid
	}
	return nil
}

// ApplyPayment records a partial or full payment on the in-memory debt.
// Overpaying is rejected. Stored debts are paid through DebtRepository.AddPayment.
func (d *Debt) ApplyPayment(cents int64) error {
	if cents <= 0 {
		return NewValidationError("payment must be positive")
	}
	if d.Status == DebtPaid {
		return NewValidationError("debt is already paid")
	}
	if cents > d.RemainingCents() {
		return NewValidationError("payment exceeds the remaining amount")
	}
	d.PaidCents += cents
	if d.RemainingCents() == 0 {
		d.Status = DebtPaid
	}
	return nil
}

// DebtFilter narrows debt lists. Empty fields are ignored.
type DebtFilter struct {
	Status    DebtStatus
	CompanyID string
	ProjectID string
}

// DebtRepository defines storage operations for debts.
// Update never writes PaidCents; it refreshes PaidCents and Status from the
// stored row. AddPayment is the only way the paid amount grows.
type DebtRepository interface {
	Create(ctx context.Context, d *Debt) error
	GetByID(ctx context.Context, id string) (*Debt, error)
	Update(ctx context.Context, d *Debt) error
	AddPayment(ctx context.Context, id string, cents int64, at time.Time) (*Debt, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter DebtFilter) (int, error)
	List(ctx context.Context, filter DebtFilter, limit, offset int) ([]*Debt, error)
}

// DebtService defines the business logic for debts.
type DebtService interface {
	List(ctx context.Context, filter DebtFilter, params PaginationParams) (*ListResult[*Debt], error)
	GetByID(ctx context.Context, id string) (*Debt, error)
	Create(ctx context.Context, d *Debt) error
	Update(ctx context.Context, d *Debt) error
	Delete(ctx context.Context, id string) error
	RecordPayment(ctx context.Context, id string, cents int64) (*Debt, error)
}
