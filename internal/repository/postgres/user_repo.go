package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"projectledger/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

// userSelect loads a user with its role codes. %s takes an optional WHERE clause.
const userSelect = `
	SELECT u.id, u.email, u.password_hash, u.salt, u.name, u.last_name, u.position_id,
		u.created_at, u.updated_at,
		COALESCE(array_agg(r.code ORDER BY r.code) FILTER (WHERE r.code IS NOT NULL), '{}') AS roles
	FROM users u
	LEFT JOIN user_roles ur ON ur.user_id = u.id
	LEFT JOIN roles r ON r.id = ur.role_id
	%s
	GROUP BY u.id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var position sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Salt, &u.Name, &u.LastName, &position,
		&u.CreatedAt, &u.UpdatedAt, pq.Array(&u.Roles))
	if err != nil {
		return nil, err
	}
	u.PositionID = stringPtr(position)
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (email, password_hash, salt, name, last_name, position_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.Salt, u.Name, u.LastName, u.PositionID, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if pgCode(err) == pgUniqueViolation {
		return domain.ErrDuplicateEmail
	}
	return mapWriteError(err)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, fmt.Sprintf(userSelect, "WHERE u.email = $1"), email))
	if err != nil {
		return nil, mapNoRows(err, domain.ErrUserNotFound)
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, fmt.Sprintf(userSelect, "WHERE u.id = $1"), id))
	if err != nil {
		return nil, mapNoRows(err, domain.ErrUserNotFound)
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `
		UPDATE users
		SET name = $1, last_name = $2, email = $3, position_id = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := r.DB.ExecContext(ctx, query, u.Name, u.LastName, u.Email, u.PositionID, u.UpdatedAt, u.ID)
	if err != nil {
		if pgCode(err) == pgUniqueViolation {
			return domain.ErrDuplicateEmail
		}
		return mapWriteError(err)
	}
	return expectAffected(result, domain.ErrUserNotFound)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return expectAffected(result, domain.ErrUserNotFound)
}

func userWhere(filter domain.UserFilter) *whereBuilder {
	w := &whereBuilder{}
	w.addIf(filter.Search != "", "(u.email ILIKE $%[1]d OR u.name ILIKE $%[1]d OR u.last_name ILIKE $%[1]d)", likePattern(filter.Search))
	w.addIf(filter.Role != "", `EXISTS (
		SELECT 1 FROM user_roles fur JOIN roles fr ON fr.id = fur.role_id
		WHERE fur.user_id = u.id AND fr.code = $%d)`, filter.Role)
	return w
}

func (r *userRepository) Count(ctx context.Context, filter domain.UserFilter) (int, error) {
	w := userWhere(filter)
	var total int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users u"+w.String(), w.args...).Scan(&total)
	return total, err
}

func (r *userRepository) List(ctx context.Context, filter domain.UserFilter, limit, offset int) ([]*domain.User, error) {
	w := userWhere(filter)
	pageClause, args := w.page(limit, offset)
	query := fmt.Sprintf(userSelect, w.String()) + " ORDER BY u.last_name, u.name, u.id " + pageClause
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// initialRoleLock serializes AssignInitialRole across connections.
const initialRoleLock int64 = 0x706c_6564_6765 // "pledge"

// AssignInitialRole gives userID the admin role when no admin exists yet and
// the member role otherwise. The check and the insert run under a transaction
// level advisory lock, so two concurrent sign-ups cannot both become admin.
func (r *userRepository) AssignInitialRole(ctx context.Context, userID string) (string, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, initialRoleLock); err != nil {
		return "", err
	}

	var hasAdmin bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_roles ur
			INNER JOIN roles r ON r.id = ur.role_id
			WHERE r.code = $1
		)
	`
	if err := tx.QueryRowContext(ctx, query, domain.RoleAdmin).Scan(&hasAdmin); err != nil {
		return "", err
	}
	code := domain.RoleAdmin
	if hasAdmin {
		code = domain.RoleMember
	}

	insert := `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE code = $2
	`
	result, err := tx.ExecContext(ctx, insert, userID, code)
	if err != nil {
		return "", mapWriteError(err)
	}
	if err := expectAffected(result, fmt.Errorf("role %q: %w", code, domain.ErrNotFound)); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return code, nil
}

func (r *userRepository) ReplaceRoles(ctx context.Context, userID string, roleIDs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return err
	}
	for _, roleID := range roleIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`, userID, roleID); err != nil {
			return mapWriteError(err)
		}
	}
	return tx.Commit()
}
