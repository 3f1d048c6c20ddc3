package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"projectledger/internal/domain"
)

type roleRepository struct {
	DB *sql.DB
}

func NewRoleRepository(db *sql.DB) domain.RoleRepository {
	return &roleRepository{DB: db}
}

// ListByCodes resolves every code in one round trip. A code without a
// matching row fails the whole lookup.
func (r *roleRepository) ListByCodes(ctx context.Context, codes []string) ([]*domain.Role, error) {
	if len(codes) == 0 {
		return []*domain.Role{}, nil
	}
	rows, err := r.DB.QueryContext(ctx, `SELECT id, code FROM roles WHERE code = ANY($1) ORDER BY code`, pq.Array(codes))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make(map[string]*domain.Role, len(codes))
	for rows.Next() {
		role := &domain.Role{}
		if err := rows.Scan(&role.ID, &role.Code); err != nil {
			return nil, err
		}
		found[role.Code] = role
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	roles := make([]*domain.Role, 0, len(codes))
	for _, code := range codes {
		role, ok := found[code]
		if !ok {
			return nil, fmt.Errorf("role %q: %w", code, domain.ErrNotFound)
		}
		roles = append(roles, role)
	}
	return roles, nil
}
