package postgres

import (
	"context"
	"database/sql"

	"projectledger/internal/domain"
)

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepository(db *sql.DB) domain.CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	query := `
		INSERT INTO categories (name, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, c.Name, c.Type, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	return mapWriteError(err)
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `
		SELECT id, name, type, created_at, updated_at
		FROM categories
		WHERE id = $1
	`
	c := &domain.Category{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err, domain.ErrNotFound)
	}
	return c, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.Category) error {
	query := `UPDATE categories SET name = $1, type = $2, updated_at = $3 WHERE id = $4`
	result, err := r.DB.ExecContext(ctx, query, c.Name, c.Type, c.UpdatedAt, c.ID)
	if err != nil {
		return mapWriteError(err)
	}
	return expectAffected(result, domain.ErrNotFound)
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return expectAffected(result, domain.ErrNotFound)
}

func (r *categoryRepository) ListAll(ctx context.Context) ([]*domain.Category, error) {
	query := `
		SELECT id, name, type, created_at, updated_at
		FROM categories
		ORDER BY type, name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	categories := make([]*domain.Category, 0)
	for rows.Next() {
		c := &domain.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
