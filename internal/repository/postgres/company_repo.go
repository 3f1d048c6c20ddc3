package postgres

import (
	"context"
	"database/sql"

	"projectledger/internal/domain"
)

type companyRepository struct {
	DB *sql.DB
}

func NewCompanyRepository(db *sql.DB) domain.CompanyRepository {
	return &companyRepository{DB: db}
}

func (r *companyRepository) Create(ctx context.Context, c *domain.Company) error {
	query := `
		INSERT INTO companies (name, tax_id, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, c.Name, c.TaxID, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	return mapWriteError(err)
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	query := `
		SELECT id, name, tax_id, email, phone, created_at, updated_at
		FROM companies
		WHERE id = $1
	`
	c := &domain.Company{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err, domain.ErrNotFound)
	}
	return c, nil
}

func (r *companyRepository) Update(ctx context.Context, c *domain.Company) error {
	query := `
		UPDATE companies
		SET name = $1, tax_id = $2, email = $3, phone = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := r.DB.ExecContext(ctx, query, c.Name, c.TaxID, c.Email, c.Phone, c.UpdatedAt, c.ID)
	if err != nil {
		return mapWriteError(err)
	}
	return expectAffected(result, domain.ErrNotFound)
}

func (r *companyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return expectAffected(result, domain.ErrNotFound)
}

func (r *companyRepository) ListAll(ctx context.Context) ([]*domain.Company, error) {
	query := `
		SELECT id, name, tax_id, email, phone, created_at, updated_at
		FROM companies
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	companies := make([]*domain.Company, 0)
	for rows.Next() {
		c := &domain.Company{}
		if err := rows.Scan(&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}
