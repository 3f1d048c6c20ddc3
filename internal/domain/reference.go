package domain

import (
	"context"
	"strings"
	"time"
)

// Category classifies transactions of one type.
// swagger:model Category
type Category struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Validate checks name and type.
func (c *Category) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Name) == "" {
		problems = append(problems, "name is required")
	} else if len(c.Name) > 100 {
		problems = append(problems, "name must be at most 100 characters")
	}
	if !c.Type.Valid() {
		problems = append(problems, "type must be income or expense")
	}
	return validationResult(problems)
}

// CategoryFilter narrows category lists. Empty fields are ignored.
type CategoryFilter struct {
	Search string
	Type   TransactionType
}

// Matches reports whether c passes the filter.
func (f CategoryFilter) Matches(c *Category) bool {
	if f.Type != "" && c.Type != f.Type {
		return false
	}
	return containsFold(c.Name, f.Search)
}

// Company is a client or supplier.
// swagger:model Company
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the company name and field lengths.
func (c *Company) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Name) == "" {
		problems = append(problems, "name is required")
	} else if len(c.Name) > 200 {
		problems = append(problems, "name must be at most 200 characters")
	}
	if len(c.TaxID) > 50 {
		problems = append(problems, "tax_id must be at most 50 characters")
	}
	return validationResult(problems)
}

// Position is a job title users can hold.
// swagger:model Position
type Position struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks the title.
func (p *Position) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return NewValidationError("title is required")
	}
	if len(p.Title) > 100 {
		return NewValidationError("title must be at most 100 characters")
	}
	return nil
}

// SearchFilter is a plain substring filter used by companies and positions.
type SearchFilter struct {
	Search string
}

// CategoryRepository defines storage operations for categories.
// Categories are a small table and are always read whole.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*Category, error)
}

// CompanyRepository defines storage operations for companies.
type CompanyRepository interface {
	Create(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, id string) (*Company, error)
	Update(ctx context.Context, c *Company) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*Company, error)
}

// PositionRepository defines storage operations for positions.
type PositionRepository interface {
	Create(ctx context.Context, p *Position) error
	GetByID(ctx context.Context, id string) (*Position, error)
	Update(ctx context.Context, p *Position) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*Position, error)
}

// CategoryService defines the business logic for categories.
type CategoryService interface {
	List(ctx context.Context, filter CategoryFilter, params PaginationParams) (*ListResult[*Category], error)
	GetByID(ctx context.Context, id string) (*Category, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
}

// CompanyService defines the business logic for companies.
type CompanyService interface {
	List(ctx context.Context, filter SearchFilter, params PaginationParams) (*ListResult[*Company], error)
	GetByID(ctx context.Context, id string) (*Company, error)
	Create(ctx context.Context, c *Company) error
	Update(ctx context.Context, c *Company) error
	Delete(ctx context.Context, id string) error
}

// PositionService defines the business logic for positions.
type PositionService interface {
	List(ctx context.Context, filter SearchFilter, params PaginationParams) (*ListResult[*Position], error)
	GetByID(ctx context.Context, id string) (*Position, error)
	Create(ctx context.Context, p *Position) error
	Update(ctx context.Context, p *Position) error
	Delete(ctx context.Context, id string) error
}

func containsFold(s, substr string) bool {
	return substr == "" || strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(substr)))
}
