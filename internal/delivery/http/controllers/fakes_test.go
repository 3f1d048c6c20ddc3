package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"projectledger/internal/delivery/http/helpers"
	"projectledger/internal/domain"

	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// envelope decodes an APIResponse with a typed data field.
type envelope[T any] struct {
	Data  T                 `json:"data"`
	Error *helpers.APIError `json:"error"`
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}

func newRequest(method, target, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	return httptest.NewRequest(method, "http://test"+target, r)
}

func listResult[T any](items []T, params domain.PaginationParams, total int) *domain.ListResult[T] {
	pages := 0
	if params.PageSize > 0 {
		pages = (total + params.PageSize - 1) / params.PageSize
	}
	return &domain.ListResult[T]{Items: items, Page: params.Page, PageSize: params.PageSize, Total: total, TotalPages: pages}
}

// fakeAuthService implements domain.AuthService.
type fakeAuthService struct {
	signUpUser  *domain.User
	signUpErr   error
	lastSignUp  domain.SignUpInput
	loginToken  string
	loginUser   *domain.User
	loginErr    error
	logoutErr   error
	logoutToken string
	logoutAt    time.Time
}

func (f *fakeAuthService) SignUp(_ context.Context, in domain.SignUpInput) (*domain.User, error) {
	f.lastSignUp = in
	return f.signUpUser, f.signUpErr
}

func (f *fakeAuthService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.loginToken, f.loginUser, nil
}

func (f *fakeAuthService) Logout(_ context.Context, token string, expiresAt time.Time) error {
	f.logoutToken = token
	f.logoutAt = expiresAt
	return f.logoutErr
}

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	getByIDUser *domain.User
	getByIDErr  error
	updateErr   error
	lastUpdate  *domain.User
	listRes     *domain.ListResult[*domain.User]
	listErr     error
	lastFilter  domain.UserFilter
	lastParams  domain.PaginationParams
	createUser  *domain.User
	createErr   error
	lastCreate  domain.CreateUserInput
	deleteErr   error
	lastDelete  [2]string
	setRolesErr error
	lastRoles   []string
}

func (f *fakeUserService) GetByID(_ context.Context, id string) (*domain.User, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	u := *f.getByIDUser
	u.ID = id
	return &u, nil
}

func (f *fakeUserService) Update(_ context.Context, user *domain.User) error {
	f.lastUpdate = user
	return f.updateErr
}

func (f *fakeUserService) List(_ context.Context, filter domain.UserFilter, params domain.PaginationParams) (*domain.ListResult[*domain.User], error) {
	f.lastFilter = filter
	f.lastParams = params
	return f.listRes, f.listErr
}

func (f *fakeUserService) Create(_ context.Context, in domain.CreateUserInput) (*domain.User, error) {
	f.lastCreate = in
	return f.createUser, f.createErr
}

func (f *fakeUserService) Delete(_ context.Context, id, callerID string) error {
	f.lastDelete = [2]string{id, callerID}
	return f.deleteErr
}

func (f *fakeUserService) SetRoles(_ context.Context, id string, roles []string) (*domain.User, error) {
	f.lastRoles = roles
	if f.setRolesErr != nil {
		return nil, f.setRolesErr
	}
	return &domain.User{ID: id, Roles: roles}, nil
}

// fakeProjectService implements domain.ProjectService.
type fakeProjectService struct {
	project    *domain.Project
	getErr     error
	writeErr   error
	listErr    error
	lastFilter domain.ProjectFilter
	lastParams domain.PaginationParams
	total      int
	created    *domain.Project
	updated    *domain.Project
	deletedID  string
}

func (f *fakeProjectService) List(_ context.Context, filter domain.ProjectFilter, params domain.PaginationParams) (*domain.ListResult[*domain.Project], error) {
	f.lastFilter = filter
	f.lastParams = params
	if f.listErr != nil {
		return nil, f.listErr
	}
	return listResult([]*domain.Project{{ID: "p1", Name: "Apollo"}}, params, f.total), nil
}

func (f *fakeProjectService) GetByID(_ context.Context, _ string) (*domain.Project, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p := *f.project
	return &p, nil
}

func (f *fakeProjectService) Create(_ context.Context, p *domain.Project) error {
	f.created = p
	if f.writeErr == nil {
		p.ID = "p-new"
	}
	return f.writeErr
}

func (f *fakeProjectService) Update(_ context.Context, p *domain.Project) error {
	f.updated = p
	return f.writeErr
}

func (f *fakeProjectService) Delete(_ context.Context, id string) error {
	f.deletedID = id
	return f.writeErr
}

// fakeTransactionService implements domain.TransactionService.
type fakeTransactionService struct {
	tx         *domain.Transaction
	getErr     error
	writeErr   error
	lastFilter domain.TransactionFilter
	created    *domain.Transaction
	updated    *domain.Transaction
}

func (f *fakeTransactionService) List(_ context.Context, filter domain.TransactionFilter, params domain.PaginationParams) (*domain.ListResult[*domain.Transaction], error) {
	f.lastFilter = filter
	return listResult([]*domain.Transaction{}, params, 0), nil
}

func (f *fakeTransactionService) GetByID(_ context.Context, _ string) (*domain.Transaction, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	tx := *f.tx
	return &tx, nil
}

func (f *fakeTransactionService) Create(_ context.Context, t *domain.Transaction) error {
	f.created = t
	return f.writeErr
}

func (f *fakeTransactionService) Update(_ context.Context, t *domain.Transaction) error {
	f.updated = t
	return f.writeErr
}

func (f *fakeTransactionService) Delete(_ context.Context, _ string) error { return f.writeErr }

// fakeDebtService implements domain.DebtService.
type fakeDebtService struct {
	debt        *domain.Debt
	writeErr    error
	lastFilter  domain.DebtFilter
	created     *domain.Debt
	updated     *domain.Debt
	paymentID   string
	paymentCent int64
}

func (f *fakeDebtService) List(_ context.Context, filter domain.DebtFilter, params domain.PaginationParams) (*domain.ListResult[*domain.Debt], error) {
	f.lastFilter = filter
	if filter.Status != "" && filter.Status != domain.DebtOpen && filter.Status != domain.DebtPaid {
		return nil, domain.NewValidationError("status must be open or paid")
	}
	return listResult([]*domain.Debt{}, params, 0), nil
}

func (f *fakeDebtService) GetByID(_ context.Context, _ string) (*domain.Debt, error) {
	d := *f.debt
	return &d, nil
}

func (f *fakeDebtService) Create(_ context.Context, d *domain.Debt) error {
	f.created = d
	if f.writeErr != nil {
		return f.writeErr
	}
	return d.Validate()
}

func (f *fakeDebtService) Update(_ context.Context, d *domain.Debt) error {
	f.updated = d
	return f.writeErr
}

func (f *fakeDebtService) Delete(_ context.Context, _ string) error { return f.writeErr }

func (f *fakeDebtService) RecordPayment(_ context.Context, id string, cents int64) (*domain.Debt, error) {
	f.paymentID = id
	f.paymentCent = cents
	d := *f.debt
	if err := d.ApplyPayment(cents); err != nil {
		return nil, err
	}
	return &d, nil
}

// fakeCategoryService implements domain.CategoryService.
type fakeCategoryService struct {
	category   *domain.Category
	writeErr   error
	lastFilter domain.CategoryFilter
	created    *domain.Category
}

func (f *fakeCategoryService) List(_ context.Context, filter domain.CategoryFilter, params domain.PaginationParams) (*domain.ListResult[*domain.Category], error) {
	f.lastFilter = filter
	return listResult([]*domain.Category{f.category}, params, 1), nil
}

func (f *fakeCategoryService) GetByID(_ context.Context, _ string) (*domain.Category, error) {
	if f.category == nil {
		return nil, domain.ErrNotFound
	}
	c := *f.category
	return &c, nil
}

func (f *fakeCategoryService) Create(_ context.Context, c *domain.Category) error {
	f.created = c
	return f.writeErr
}

func (f *fakeCategoryService) Update(_ context.Context, _ *domain.Category) error { return f.writeErr }

func (f *fakeCategoryService) Delete(_ context.Context, _ string) error { return f.writeErr }

// fakeCompanyService implements domain.CompanyService.
type fakeCompanyService struct {
	company    *domain.Company
	writeErr   error
	lastFilter domain.SearchFilter
	updated    *domain.Company
}

func (f *fakeCompanyService) List(_ context.Context, filter domain.SearchFilter, params domain.PaginationParams) (*domain.ListResult[*domain.Company], error) {
	f.lastFilter = filter
	return listResult([]*domain.Company{}, params, 0), nil
}

func (f *fakeCompanyService) GetByID(_ context.Context, _ string) (*domain.Company, error) {
	c := *f.company
	return &c, nil
}

func (f *fakeCompanyService) Create(_ context.Context, _ *domain.Company) error { return f.writeErr }

func (f *fakeCompanyService) Update(_ context.Context, c *domain.Company) error {
	f.updated = c
	return f.writeErr
}

func (f *fakeCompanyService) Delete(_ context.Context, _ string) error { return f.writeErr }

// fakePositionService implements domain.PositionService.
type fakePositionService struct {
	writeErr error
	created  *domain.Position
}

func (f *fakePositionService) List(_ context.Context, _ domain.SearchFilter, params domain.PaginationParams) (*domain.ListResult[*domain.Position], error) {
	return listResult([]*domain.Position{}, params, 0), nil
}

func (f *fakePositionService) GetByID(_ context.Context, _ string) (*domain.Position, error) {
	return nil, domain.ErrNotFound
}

func (f *fakePositionService) Create(_ context.Context, p *domain.Position) error {
	f.created = p
	return f.writeErr
}

func (f *fakePositionService) Update(_ context.Context, _ *domain.Position) error { return f.writeErr }

func (f *fakePositionService) Delete(_ context.Context, _ string) error { return f.writeErr }

// fakeDashboardService implements domain.DashboardService.
type fakeDashboardService struct {
	summary    *domain.DashboardSummary
	err        error
	lastPeriod domain.Period
}

func (f *fakeDashboardService) Summary(_ context.Context, period domain.Period) (*domain.DashboardSummary, error) {
	f.lastPeriod = period
	return f.summary, f.err
}
