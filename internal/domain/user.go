package domain

import (
	"context"
	"errors"
	"slices"
	"time"
)

// Sentinel errors for user operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// Role codes.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleMember  = "member"
)

// AllRoles lists the known role codes, most privileged first.
var AllRoles = []string{RoleAdmin, RoleManager, RoleMember}

// IsValidRole reports whether code is a known role.
func IsValidRole(code string) bool {
	return slices.Contains(AllRoles, code)
}

// HasAnyRole reports whether roles contains at least one of want.
func HasAnyRole(roles []string, want ...string) bool {
	for _, w := range want {
		if slices.Contains(roles, w) {
			return true
		}
	}
	return false
}

// User represents a dashboard account.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	Name         string    `json:"name"`
	LastName     string    `json:"last_name"`
	PositionID   *string   `json:"position_id"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(email, name, lastName string, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:     email,
		Name:      name,
		LastName:  lastName,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Role represents an application role (admin, manager, member).
type Role struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// NewRole returns a new Role with the given id and code.
func NewRole(id, code string) *Role {
	return &Role{ID: id, Code: code}
}

// TokenClaims is what a verified token says about its bearer.
type TokenClaims struct {
	UserID    string
	Email     string
	Roles     []string
	ExpiresAt time.Time
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// TokenRevoker remembers tokens that were logged out before they expired.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// UserFilter narrows user lists. Empty fields are ignored.
type UserFilter struct {
	Search string
	Role   string
}

// UserRepository defines the interface for user storage.
// Users returned by the repository carry their role codes.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter UserFilter) (int, error)
	List(ctx context.Context, filter UserFilter, limit, offset int) ([]*User, error)
	// AssignInitialRole makes the first user admin and everyone after a member.
	AssignInitialRole(ctx context.Context, userID string) (string, error)
	ReplaceRoles(ctx context.Context, userID string, roleIDs []string) error
}

// RoleRepository resolves role codes to stored roles.
type RoleRepository interface {
	ListByCodes(ctx context.Context, codes []string) ([]*Role, error)
}

// SignUpInput is the self-registration payload.
type SignUpInput struct {
	Email    string
	Password string
	Name     string
	LastName string
}

// CreateUserInput is an administrator-created account.
type CreateUserInput struct {
	Email      string
	Password   string
	Name       string
	LastName   string
	PositionID *string
	Roles      []string
}

// AuthService signs users up, in and out.
type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	Logout(ctx context.Context, token string, expiresAt time.Time) error
}

// UserService defines the business logic for user profiles and user administration.
type UserService interface {
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
	List(ctx context.Context, filter UserFilter, params PaginationParams) (*ListResult[*User], error)
	Create(ctx context.Context, in CreateUserInput) (*User, error)
	Delete(ctx context.Context, id, callerID string) error
	SetRoles(ctx context.Context, id string, roles []string) (*User, error)
}
