package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"projectledger/internal/domain"
)

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	byID      map[string]*domain.User
	nextID    int
	roles     map[string][]string
	createErr error
	assignErr error
	countErr  error
	updateErr error
	lastLimit int
	lastOff   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:   make(map[string]*domain.User),
		roles:  make(map[string][]string),
		nextID: 1,
	}
}

func (f *fakeUserRepo) add(u *domain.User) {
	f.byID[u.ID] = u
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u *domain.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeUserRepo) Count(ctx context.Context, filter domain.UserFilter) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.byID), nil
}

func (f *fakeUserRepo) List(ctx context.Context, filter domain.UserFilter, limit, offset int) ([]*domain.User, error) {
	f.lastLimit, f.lastOff = limit, offset
	ids := make([]string, 0, len(f.byID))
	for id := range f.byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]*domain.User, 0)
	for i := offset; i < len(ids) && i < offset+limit; i++ {
		out = append(out, f.byID[ids[i]])
	}
	return out, nil
}

func (f *fakeUserRepo) AssignInitialRole(ctx context.Context, userID string) (string, error) {
	if f.assignErr != nil {
		return "", f.assignErr
	}
	code := domain.RoleAdmin
	for _, ids := range f.roles {
		if slices.Contains(ids, "role-"+domain.RoleAdmin) {
			code = domain.RoleMember
		}
	}
	f.roles[userID] = append(f.roles[userID], "role-"+code)
	return code, nil
}

func (f *fakeUserRepo) ReplaceRoles(ctx context.Context, userID string, roleIDs []string) error {
	f.roles[userID] = slices.Clone(roleIDs)
	return nil
}

// fakeRoleRepo resolves role codes to "role-<code>" ids.
type fakeRoleRepo struct{}

func (fakeRoleRepo) resolve(code string) (*domain.Role, error) {
	if !domain.IsValidRole(code) {
		return nil, domain.ErrNotFound
	}
	return domain.NewRole("role-"+code, code), nil
}

func (r fakeRoleRepo) ListByCodes(ctx context.Context, codes []string) ([]*domain.Role, error) {
	roles := make([]*domain.Role, 0, len(codes))
	for _, code := range codes {
		role, err := r.resolve(code)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct{}

func (fakePasswordHasher) GenerateSalt() (string, error) { return "salt", nil }
func (fakePasswordHasher) Hash(salt, password string) (string, error) {
	return "hash-" + salt + password, nil
}
func (fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != "hash-"+salt+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err       error
	lastRoles []string
}

func (f *fakeTokenIssuer) Issue(userID, email string, roles []string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.lastRoles = roles
	return "token-" + userID, nil
}

// fakeRevoker records revoked tokens.
type fakeRevoker struct {
	revoked map[string]time.Duration
	err     error
}

func (f *fakeRevoker) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	if f.revoked == nil {
		f.revoked = make(map[string]time.Duration)
	}
	f.revoked[token] = ttl
	return nil
}

func (f *fakeRevoker) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, ok := f.revoked[token]
	return ok, nil
}

// fakeEmailService records account emails by template.
type fakeEmailService struct {
	sent         []*domain.AccountEmailData
	rolesChanged []*domain.AccountEmailData
	err          error
}

func (f *fakeEmailService) SendRolesChanged(ctx context.Context, data *domain.AccountEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.rolesChanged = append(f.rolesChanged, data)
	return nil
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.AccountEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// fakeProjectRepo is an in-memory ProjectRepository that records paging arguments.
type fakeProjectRepo struct {
	byID      map[string]*domain.Project
	total     int
	lastLimit int
	lastOff   int
	listCalls int
	err       error
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{byID: make(map[string]*domain.Project)}
}

func (f *fakeProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	if f.err != nil {
		return f.err
	}
	p.ID = fmt.Sprintf("proj-%d", len(f.byID)+1)
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	if _, ok := f.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProjectRepo) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeProjectRepo) Count(ctx context.Context, filter domain.ProjectFilter) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.total, nil
}

func (f *fakeProjectRepo) List(ctx context.Context, filter domain.ProjectFilter, limit, offset int) ([]*domain.Project, error) {
	f.listCalls++
	f.lastLimit, f.lastOff = limit, offset
	n := max(0, min(limit, f.total-offset))
	out := make([]*domain.Project, 0, n)
	for i := range n {
		out = append(out, &domain.Project{ID: fmt.Sprintf("proj-%d", offset+i+1)})
	}
	return out, nil
}

// fakeTransactionRepo is an in-memory TransactionRepository.
type fakeTransactionRepo struct {
	byID map[string]*domain.Transaction
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{byID: make(map[string]*domain.Transaction)}
}

func (f *fakeTransactionRepo) Create(ctx context.Context, t *domain.Transaction) error {
	t.ID = fmt.Sprintf("tx-%d", len(f.byID)+1)
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTransactionRepo) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if t, ok := f.byID[id]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTransactionRepo) Update(ctx context.Context, t *domain.Transaction) error {
	if _, ok := f.byID[t.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTransactionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeTransactionRepo) Count(ctx context.Context, filter domain.TransactionFilter) (int, error) {
	return len(f.byID), nil
}

func (f *fakeTransactionRepo) List(ctx context.Context, filter domain.TransactionFilter, limit, offset int) ([]*domain.Transaction, error) {
	return []*domain.Transaction{}, nil
}

// fakeCategoryRepo serves a fixed category list.
type fakeCategoryRepo struct {
	items []*domain.Category
	err   error
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	c.ID = fmt.Sprintf("cat-%d", len(f.items)+1)
	f.items = append(f.items, c)
	return nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	for _, c := range f.items {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCategoryRepo) Update(ctx context.Context, c *domain.Category) error { return nil }
func (f *fakeCategoryRepo) Delete(ctx context.Context, id string) error          { return nil }

func (f *fakeCategoryRepo) ListAll(ctx context.Context) ([]*domain.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

// fakeCompanyRepo serves a fixed company list.
type fakeCompanyRepo struct {
	items []*domain.Company
}

func (f *fakeCompanyRepo) Create(ctx context.Context, c *domain.Company) error {
	c.ID = fmt.Sprintf("comp-%d", len(f.items)+1)
	f.items = append(f.items, c)
	return nil
}
func (f *fakeCompanyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeCompanyRepo) Update(ctx context.Context, c *domain.Company) error { return nil }
func (f *fakeCompanyRepo) Delete(ctx context.Context, id string) error         { return nil }
func (f *fakeCompanyRepo) ListAll(ctx context.Context) ([]*domain.Company, error) {
	return f.items, nil
}

// fakePositionRepo serves a fixed position list.
type fakePositionRepo struct {
	items []*domain.Position
}

func (f *fakePositionRepo) Create(ctx context.Context, p *domain.Position) error {
	p.ID = fmt.Sprintf("pos-%d", len(f.items)+1)
	f.items = append(f.items, p)
	return nil
}
func (f *fakePositionRepo) GetByID(ctx context.Context, id string) (*domain.Position, error) {
	return nil, domain.ErrNotFound
}
func (f *fakePositionRepo) Update(ctx context.Context, p *domain.Position) error { return nil }
func (f *fakePositionRepo) Delete(ctx context.Context, id string) error          { return nil }
func (f *fakePositionRepo) ListAll(ctx context.Context) ([]*domain.Position, error) {
	return f.items, nil
}

// fakeDebtRepo is an in-memory DebtRepository. Like the Postgres one, Update
// keeps the stored paid amount and AddPayment checks and adds under one lock.
type fakeDebtRepo struct {
	mu       sync.Mutex
	byID     map[string]*domain.Debt
	updates  int
	payments int
	getDelay time.Duration
}

func newFakeDebtRepo() *fakeDebtRepo {
	return &fakeDebtRepo{byID: make(map[string]*domain.Debt)}
}

func (f *fakeDebtRepo) Create(ctx context.Context, d *domain.Debt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d.ID = fmt.Sprintf("debt-%d", len(f.byID)+1)
	cp := *d
	f.byID[d.ID] = &cp
	return nil
}

func (f *fakeDebtRepo) GetByID(ctx context.Context, id string) (*domain.Debt, error) {
	time.Sleep(f.getDelay)
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.byID[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDebtRepo) Update(ctx context.Context, d *domain.Debt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.byID[d.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.PaidCents > d.AmountCents {
		return domain.NewValidationError("amount cannot be less than the amount already paid")
	}
	f.updates++
	d.PaidCents = stored.PaidCents
	d.Status = domain.DebtOpen
	if d.PaidCents == d.AmountCents {
		d.Status = domain.DebtPaid
	}
	cp := *d
	f.byID[d.ID] = &cp
	return nil
}

func (f *fakeDebtRepo) AddPayment(ctx context.Context, id string, cents int64, at time.Time) (*domain.Debt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := stored.ApplyPayment(cents); err != nil {
		return nil, err
	}
	f.payments++
	stored.UpdatedAt = at
	cp := *stored
	return &cp, nil
}

func (f *fakeDebtRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeDebtRepo) Count(ctx context.Context, filter domain.DebtFilter) (int, error) {
	return len(f.byID), nil
}

func (f *fakeDebtRepo) List(ctx context.Context, filter domain.DebtFilter, limit, offset int) ([]*domain.Debt, error) {
	return []*domain.Debt{}, nil
}

// fakeDashboardRepo returns fixed aggregates.
type fakeDashboardRepo struct {
	income, expense, debt int64
	active                int
	byCategory            []domain.CategoryAmount
	failOn                string
}

func (f *fakeDashboardRepo) SumTransactions(ctx context.Context, t domain.TransactionType, period domain.Period) (int64, error) {
	if f.failOn == "sum" {
		return 0, errors.New("boom")
	}
	if t == domain.TransactionIncome {
		return f.income, nil
	}
	return f.expense, nil
}

func (f *fakeDashboardRepo) SumOpenDebt(ctx context.Context) (int64, error) {
	return f.debt, nil
}

func (f *fakeDashboardRepo) CountProjects(ctx context.Context, status domain.ProjectStatus) (int, error) {
	return f.active, nil
}

func (f *fakeDashboardRepo) ExpenseByCategory(ctx context.Context, period domain.Period) ([]domain.CategoryAmount, error) {
	return f.byCategory, nil
}
