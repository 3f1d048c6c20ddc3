package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"projectledger/internal/delivery/http/helpers"
	"projectledger/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenVerifier implements domain.TokenVerifier for tests.
type fakeTokenVerifier struct {
	claims *domain.TokenClaims
	err    error
}

func (f *fakeTokenVerifier) Verify(_ string) (*domain.TokenClaims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

// fakeRevoker implements domain.TokenRevoker for tests.
type fakeRevoker struct {
	revoked bool
	err     error
}

func (f *fakeRevoker) Revoke(_ context.Context, _ string, _ time.Duration) error { return nil }

func (f *fakeRevoker) IsRevoked(_ context.Context, _ string) (bool, error) {
	return f.revoked, f.err
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	valid := &fakeTokenVerifier{claims: &domain.TokenClaims{UserID: "user-123", Roles: []string{domain.RoleManager}}}

	tests := []struct {
		name          string
		authHeader    string
		verifier      domain.TokenVerifier
		revoker       domain.TokenRevoker
		wantStatus    int
		wantBodyCode  string
		nextCalled    bool
		wantContextID string
	}{
		{
			name:          "valid token sets context and calls next",
			authHeader:    "Bearer valid-token",
			verifier:      valid,
			wantStatus:    http.StatusOK,
			nextCalled:    true,
			wantContextID: "user-123",
		},
		{
			name:          "valid token not revoked",
			authHeader:    "Bearer valid-token",
			verifier:      valid,
			revoker:       &fakeRevoker{},
			wantStatus:    http.StatusOK,
			nextCalled:    true,
			wantContextID: "user-123",
		},
		{
			name:         "missing authorization header",
			authHeader:   "",
			verifier:     valid,
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "invalid authorization format no Bearer prefix",
			authHeader:   "Basic abc",
			verifier:     valid,
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "empty token after Bearer",
			authHeader:   "Bearer ",
			verifier:     valid,
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "verifier returns error",
			authHeader:   "Bearer bad-token",
			verifier:     &fakeTokenVerifier{err: errors.New("invalid or expired token")},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "revoked token",
			authHeader:   "Bearer valid-token",
			verifier:     valid,
			revoker:      &fakeRevoker{revoked: true},
			wantStatus:   http.StatusUnauthorized,
			wantBodyCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:         "revocation store unavailable",
			authHeader:   "Bearer valid-token",
			verifier:     valid,
			revoker:      &fakeRevoker{err: assert.AnError},
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var capturedUserID, capturedToken string
			var capturedRoles []string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				if id, ok := UserIDFromContext(r.Context()); ok {
					capturedUserID = id
				}
				capturedToken, _ = TokenFromContext(r.Context())
				capturedRoles = RolesFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})
			handler := RequireAuth(tt.verifier, tt.revoker, logger)(next)

			req := httptest.NewRequest(http.MethodGet, "http://test/users/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			handler(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			assert.Equal(t, tt.nextCalled, nextCalled, "next handler called")
			if tt.nextCalled {
				assert.Equal(t, tt.wantContextID, capturedUserID, "user ID in context")
				assert.Equal(t, "valid-token", capturedToken)
				assert.Equal(t, []string{domain.RoleManager}, capturedRoles)
			}
			if tt.wantBodyCode != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		ctx        func(context.Context) context.Context
		wantStatus int
	}{
		{name: "holder of an allowed role", ctx: func(c context.Context) context.Context { return SetUserID(c, "u1", domain.RoleManager) }, wantStatus: http.StatusOK},
		{name: "missing role", ctx: func(c context.Context) context.Context { return SetUserID(c, "u1", domain.RoleMember) }, wantStatus: http.StatusForbidden},
		{name: "unauthenticated", ctx: func(c context.Context) context.Context { return c }, wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
			handler := RequireRole(domain.RoleAdmin, domain.RoleManager)(next)

			req := httptest.NewRequest(http.MethodDelete, "http://test/projects/p1", nil)
			req = req.WithContext(tt.ctx(req.Context()))
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
