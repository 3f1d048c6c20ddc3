package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"projectledger/internal/delivery/http/controllers"
	"projectledger/internal/delivery/http/helpers"
	"projectledger/internal/delivery/http/middleware"
	"projectledger/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenVerifier maps a token to the roles of its bearer.
type tokenVerifier map[string][]string

func (v tokenVerifier) Verify(token string) (*domain.TokenClaims, error) {
	roles, ok := v[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return &domain.TokenClaims{UserID: "user-" + token, Roles: roles}, nil
}

func newTestRouter() *http.ServeMux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	verifier := tokenVerifier{
		"admin":   {domain.RoleAdmin},
		"manager": {domain.RoleManager},
		"member":  {domain.RoleMember},
	}
	pager := helpers.Pager{}
	c := Controllers{
		Auth:        controllers.NewAuthController(logger, nil),
		User:        controllers.NewUserController(logger, nil, pager),
		Project:     controllers.NewProjectController(logger, nil, pager),
		Transaction: controllers.NewTransactionController(logger, nil, pager),
		Debt:        controllers.NewDebtController(logger, nil, pager),
		Category:    controllers.NewCategoryController(logger, nil, pager),
		Company:     controllers.NewCompanyController(logger, nil, pager),
		Position:    controllers.NewPositionController(logger, nil, pager),
		Dashboard:   controllers.NewDashboardController(logger, nil),
	}
	return NewRouter(c, middleware.RequireAuth(verifier, nil, logger))
}

func TestRouter_Access(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{name: "health is public", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "navigation needs a token", method: http.MethodGet, path: "/navigation", wantStatus: http.StatusUnauthorized},
		{name: "navigation for member", method: http.MethodGet, path: "/navigation", token: "member", wantStatus: http.StatusOK},
		{name: "member cannot create projects", method: http.MethodPost, path: "/projects", token: "member", wantStatus: http.StatusForbidden},
		{name: "member cannot see debts", method: http.MethodGet, path: "/debts", token: "member", wantStatus: http.StatusForbidden},
		{name: "manager cannot manage users", method: http.MethodGet, path: "/users", token: "manager", wantStatus: http.StatusForbidden},
		{name: "manager cannot edit categories", method: http.MethodDelete, path: "/categories/c1", token: "manager", wantStatus: http.StatusForbidden},
		{name: "member cannot pay debts", method: http.MethodPost, path: "/debts/d1/payments", token: "member", wantStatus: http.StatusForbidden},
		{name: "unknown token", method: http.MethodGet, path: "/projects", token: "forged", wantStatus: http.StatusUnauthorized},
		{name: "wrong method", method: http.MethodPatch, path: "/projects", token: "admin", wantStatus: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "http://test"+tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestRouter_NavigationFollowsRoles(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "http://test/navigation", nil)
	req.Header.Set("Authorization", "Bearer admin")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var env struct {
		Data []domain.NavItem `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	assert.Equal(t, domain.NavigationFor([]string{domain.RoleAdmin}), env.Data)
}
