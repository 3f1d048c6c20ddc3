package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"projectledger/internal/domain"
)

type userService struct {
	userRepo       domain.UserRepository
	roleRepo       domain.RoleRepository
	hasher         domain.PasswordHasher
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewUserService creates a UserService. emailService may be nil to skip account emails.
func NewUserService(
	userRepo domain.UserRepository,
	roleRepo domain.RoleRepository,
	hasher domain.PasswordHasher,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.UserService {
	return &userService{
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		hasher:         hasher,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapErr("failed to get user", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user.Name = strings.TrimSpace(user.Name)
	user.LastName = strings.TrimSpace(user.LastName)
	user.Email = normalizeEmail(user.Email)
	var problems []string
	if !emailRegexp.MatchString(user.Email) {
		problems = append(problems, "invalid email format")
	}
	if user.Name == "" {
		problems = append(problems, "name is required")
	}
	if len(problems) > 0 {
		return domain.NewValidationError(problems...)
	}
	user.UpdatedAt = time.Now()
	return wrapErr("failed to update user", s.userRepo.Update(ctx, user))
}

func (s *userService) List(ctx context.Context, filter domain.UserFilter, params domain.PaginationParams) (*domain.ListResult[*domain.User], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if filter.Role != "" && !domain.IsValidRole(filter.Role) {
		return nil, domain.NewValidationError(fmt.Sprintf("unknown role %q", filter.Role))
	}
	res, err := listPage(ctx, params,
		func(ctx context.Context) (int, error) { return s.userRepo.Count(ctx, filter) },
		func(ctx context.Context, limit, offset int) ([]*domain.User, error) {
			return s.userRepo.List(ctx, filter, limit, offset)
		},
	)
	return res, wrapErr("failed to list users", err)
}

func (s *userService) Create(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email := normalizeEmail(in.Email)
	problems := accountProblems(email, in.Password, in.Name)
	roles, roleProblems := normalizeRoles(in.Roles, domain.RoleMember)
	problems = append(problems, roleProblems...)
	if len(problems) > 0 {
		return nil, domain.NewValidationError(problems...)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(salt, in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := domain.NewUser(email, strings.TrimSpace(in.Name), strings.TrimSpace(in.LastName), now, now)
	user.PasswordHash = hash
	user.Salt = salt
	user.PositionID = in.PositionID
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, wrapErr("failed to create user", err)
	}
	if err := s.replaceRoles(ctx, user.ID, roles); err != nil {
		return nil, err
	}
	user.Roles = roles

	if s.emailService != nil {
		data := &domain.AccountEmailData{Email: user.Email, FirstName: user.Name, Roles: roles}
		if err := s.emailService.SendWelcomeMessage(ctx, data); err != nil {
			// The account exists either way; the admin can share credentials by hand.
			s.logger.Warn("welcome email failed", "user_id", user.ID, "err", err)
		}
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if id == callerID {
		return fmt.Errorf("%w: cannot delete your own account", domain.ErrForbidden)
	}
	return wrapErr("failed to delete user", s.userRepo.Delete(ctx, id))
}

func (s *userService) SetRoles(ctx context.Context, id string, roles []string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	roles, problems := normalizeRoles(roles, "")
	if len(roles) == 0 && len(problems) == 0 {
		problems = append(problems, "at least one role is required")
	}
	if len(problems) > 0 {
		return nil, domain.NewValidationError(problems...)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapErr("failed to get user", err)
	}
	if err := s.replaceRoles(ctx, user.ID, roles); err != nil {
		return nil, err
	}
	user.Roles = roles

	if s.emailService != nil {
		data := &domain.AccountEmailData{Email: user.Email, FirstName: user.Name, Roles: roles}
		if err := s.emailService.SendRolesChanged(ctx, data); err != nil {
			s.logger.Warn("roles changed email failed", "user_id", user.ID, "err", err)
		}
	}
	return user, nil
}

func (s *userService) replaceRoles(ctx context.Context, userID string, codes []string) error {
	roles, err := s.roleRepo.ListByCodes(ctx, codes)
	if err != nil {
		return fmt.Errorf("failed to resolve roles: %w", err)
	}
	ids := make([]string, 0, len(roles))
	for _, role := range roles {
		ids = append(ids, role.ID)
	}
	if err := s.userRepo.ReplaceRoles(ctx, userID, ids); err != nil {
		return wrapErr("failed to set roles", err)
	}
	return nil
}

// normalizeRoles lowercases, sorts and de-duplicates role codes. An empty input
// yields fallback when fallback is set.
func normalizeRoles(in []string, fallback string) ([]string, []string) {
	var problems []string
	out := make([]string, 0, len(in))
	for _, r := range in {
		code := strings.TrimSpace(strings.ToLower(r))
		if !domain.IsValidRole(code) {
			problems = append(problems, fmt.Sprintf("unknown role %q", r))
			continue
		}
		out = append(out, code)
	}
	if len(out) == 0 && len(problems) == 0 && fallback != "" {
		out = append(out, fallback)
	}
	slices.Sort(out)
	return slices.Compact(out), problems
}
