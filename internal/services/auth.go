package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"projectledger/internal/domain"
)

type authService struct {
	userRepo       domain.UserRepository
	hasher         domain.PasswordHasher
	tokenIssuer    domain.TokenIssuer
	tokenExpiry    time.Duration
	revoker        domain.TokenRevoker
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewAuthService creates an AuthService. revoker may be nil, in which case logout
// only succeeds and tokens stay valid until they expire.
func NewAuthService(
	userRepo domain.UserRepository,
	hasher domain.PasswordHasher,
	tokenIssuer domain.TokenIssuer,
	tokenExpiry time.Duration,
	revoker domain.TokenRevoker,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AuthService {
	return &authService{
		userRepo:       userRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		tokenExpiry:    tokenExpiry,
		revoker:        revoker,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// SignUp registers a new account. The very first account becomes admin so a fresh
// installation can be administered; every later one is a member.
func (s *authService) SignUp(ctx context.Context, in domain.SignUpInput) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	email := normalizeEmail(in.Email)
	if problems := accountProblems(email, in.Password, in.Name); len(problems) > 0 {
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
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	roleCode, err := s.userRepo.AssignInitialRole(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}
	user.Roles = []string{roleCode}

	s.logger.Info("user signed up", "user_id", user.ID, "role", roleCode)
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenIssuer.Issue(user.ID, user.Email, user.Roles, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}

func (s *authService) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	if s.revoker == nil {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if err := s.revoker.Revoke(ctx, token, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
