package postgres

import (
	"context"
	"database/sql"

	"projectledger/internal/domain"
)

type projectRepository struct {
	DB *sql.DB
}

func NewProjectRepository(db *sql.DB) domain.ProjectRepository {
	return &projectRepository{DB: db}
}

const projectColumns = `id, name, description, company_id, status, budget_cents, start_date, end_date, owner_id, created_at, updated_at`

func scanProject(row rowScanner) (*domain.Project, error) {
	p := &domain.Project{}
	var company sql.NullString
	var start, end sql.NullTime
	err := row.Scan(&p.ID, &p.Name, &p.Description, &company, &p.Status, &p.BudgetCents,
		&start, &end, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.CompanyID = stringPtr(company)
	p.StartDate = timePtr(start)
	p.EndDate = timePtr(end)
	return p, nil
}

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	query := `
		INSERT INTO projects (name, description, company_id, status, budget_cents, start_date, end_date, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, p.Name, p.Description, p.CompanyID, p.Status, p.BudgetCents,
		p.StartDate, p.EndDate, p.OwnerID, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	return mapWriteError(err)
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p, err := scanProject(r.DB.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		return nil, mapNoRows(err, domain.ErrNotFound)
	}
	return p, nil
}

func (r *projectRepository) Update(ctx context.Context, p *domain.Project) error {
	query := `
		UPDATE projects
		SET name = $1, description = $2, company_id = $3, status = $4, budget_cents = $5,
			start_date = $6, end_date = $7, updated_at = $8
		WHERE id = $9
	`
	result, err := r.DB.ExecContext(ctx, query, p.Name, p.Description, p.CompanyID, p.Status, p.BudgetCents,
		p.StartDate, p.EndDate, p.UpdatedAt, p.ID)
	if err != nil {
		return mapWriteError(err)
	}
	return expectAffected(result, domain.ErrNotFound)
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return expectAffected(result, domain.ErrNotFound)
}

func projectWhere(filter domain.ProjectFilter) *whereBuilder {
	w := &whereBuilder{}
	w.addIf(filter.Search != "", "(name ILIKE $%[1]d OR description ILIKE $%[1]d)", likePattern(filter.Search))
	w.addIf(filter.Status != "", "status = $%d", filter.Status)
	w.addIf(filter.CompanyID != "", "company_id = $%d", filter.CompanyID)
	return w
}

func (r *projectRepository) Count(ctx context.Context, filter domain.ProjectFilter) (int, error) {
	w := projectWhere(filter)
	var total int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects"+w.String(), w.args...).Scan(&total)
	return total, err
}

func (r *projectRepository) List(ctx context.Context, filter domain.ProjectFilter, limit, offset int) ([]*domain.Project, error) {
	w := projectWhere(filter)
	pageClause, args := w.page(limit, offset)
	query := "SELECT " + projectColumns + " FROM projects" + w.String() + " ORDER BY created_at DESC, id " + pageClause
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	projects := make([]*domain.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
