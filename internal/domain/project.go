package domain

import (
	"context"
	"strings"
	"time"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
)

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectOnHold, ProjectCompleted:
		return true
	}
	return false
}

// Project is a unit of work that transactions and debts are booked against.
// swagger:model Project
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CompanyID   *string       `json:"company_id"`
	Status      ProjectStatus `json:"status"`
	BudgetCents int64         `json:"budget_cents"`
	StartDate   *time.Time    `json:"start_date"`
	EndDate     *time.Time    `json:"end_date"`
	OwnerID     string        `json:"owner_id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Validate checks the project's own fields. It does not check references.
func (p *Project) Validate() error {
	var problems []string
	name := strings.TrimSpace(p.Name)
	if name == "" {
		problems = append(problems, "name is required")
	} else if len(name) > 200 {
		problems = append(problems, "name must be at most 200 characters")
	}
	if !p.Status.Valid() {
		problems = append(problems, "status must be one of active, on_hold, completed")
	}
	if p.BudgetCents < 0 {
		problems = append(problems, "budget cannot be negative")
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		problems = append(problems, "end_date must not be before start_date")
	}
	return validationResult(problems)
}

// ProjectFilter narrows project lists. Empty fields are ignored.
type ProjectFilter struct {
	Search    string
	Status    ProjectStatus
	CompanyID string
}

// ProjectRepository defines storage operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter ProjectFilter) (int, error)
	List(ctx context.Context, filter ProjectFilter, limit, offset int) ([]*Project, error)
}

// ProjectService defines the business logic for projects.
type ProjectService interface {
	List(ctx context.Context, filter ProjectFilter, params PaginationParams) (*ListResult[*Project], error)
	GetByID(ctx context.Context, id string) (*Project, error)
	Create(ctx context.Context, p *Project) error
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id string) error
}
