package domain

import (
	"context"
	"strings"
	"time"
)

// TransactionType tells income from expense. Categories carry the same type.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Valid reports whether t is income or expense.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is a single income or expense booked against a project.
// swagger:model Transaction
type Transaction struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"project_id"`
	CategoryID  *string         `json:"category_id"`
	Type        TransactionType `json:"type"`
	AmountCents int64           `json:"amount_cents"`
	Description string          `json:"description"`
	OccurredOn  time.Time       `json:"occurred_on"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Validate checks the transaction's own fields.
func (t *Transaction) Validate() error {
	var problems []string
	if strings.TrimSpace(t.ProjectID) == "" {
		problems = append(problems, "project_id is required")
	}
	if !t.Type.Valid() {
		problems = append(problems, "type must be income or expense")
	}
	if t.AmountCents <= 0 {
		problems = append(problems, "amount must be positive")
	}
	if t.OccurredOn.IsZero() {
		problems = append(problems, "occurred_on is required")
	}
	if len(t.Description) > 500 {
		problems = append(problems, "description must be at most 500 characters")
	}
	return validationResult(problems)
}

// TransactionFilter narrows transaction lists. From and To bound OccurredOn inclusively.
type TransactionFilter struct {
	ProjectID  string
	CategoryID string
	Type       TransactionType
	From       *time.Time
	To         *time.Time
}

// TransactionRepository defines storage operations for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByID(ctx context.Context, id string) (*Transaction, error)
	Update(ctx context.Context, t *Transaction) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter TransactionFilter) (int, error)
	List(ctx context.Context, filter TransactionFilter, limit, offset int) ([]*Transaction, error)
}

// TransactionService defines the business logic for transactions.
type TransactionService interface {
	List(ctx context.Context, filter TransactionFilter, params PaginationParams) (*ListResult[*Transaction], error)
	GetByID(ctx context.Context, id string) (*Transaction, error)
	Create(ctx context.Context, t *Transaction) error
	Update(ctx context.Context, t *Transaction) error
	Delete(ctx context.Context, id string) error
}
