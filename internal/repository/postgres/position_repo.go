package postgres

import (
	"context"
	"database/sql"

	"projectledger/internal/domain"
)

type positionRepository struct {
	DB *sql.DB
}

func NewPositionRepository(db *sql.DB) domain.PositionRepository {
	return &positionRepository{DB: db}
}

func (r *positionRepository) Create(ctx context.Context, p *domain.Position) error {
	query := `
		INSERT INTO positions (title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, p.Title, p.Description, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	return mapWriteError(err)
}

func (r *positionRepository) GetByID(ctx context.Context, id string) (*domain.Position, error) {
	query := `
		SELECT id, title, description, created_at, updated_at
		FROM positions
		WHERE id = $1
	`
	p := &domain.Position{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err, domain.ErrNotFound)
	}
	return p, nil
}

func (r *positionRepository) Update(ctx context.Context, p *domain.Position) error {
	query := `UPDATE positions SET title = $1, description = $2, updated_at = $3 WHERE id = $4`
	result, err := r.DB.ExecContext(ctx, query, p.Title, p.Description, p.UpdatedAt, p.ID)
	if err != nil {
		return mapWriteError(err)
	}
	return expectAffected(result, domain.ErrNotFound)
}

func (r *positionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM positions WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return expectAffected(result, domain.ErrNotFound)
}

func (r *positionRepository) ListAll(ctx context.Context) ([]*domain.Position, error) {
	query := `
		SELECT id, title, description, created_at, updated_at
		FROM positions
		ORDER BY title
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	positions := make([]*domain.Position, 0)
	for rows.Next() {
		p := &domain.Position{}
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}
