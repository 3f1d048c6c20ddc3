package services

import (
	"context"
	"strings"
	"time"

	"projectledger/internal/domain"
)

// Categories, companies and positions are short lookup tables: they are read
// whole, filtered in memory and paged with pagination.Paginator.

type categoryService struct {
	categoryRepo   domain.CategoryRepository
	contextTimeout time.Duration
}

func NewCategoryService(categoryRepo domain.CategoryRepository, timeout time.Duration) domain.CategoryService {
	return &categoryService{categoryRepo: categoryRepo, contextTimeout: timeout}
}

func (s *categoryService) List(ctx context.Context, filter domain.CategoryFilter, params domain.PaginationParams) (*domain.ListResult[*domain.Category], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if filter.Type != "" && !filter.Type.Valid() {
		return nil, domain.NewValidationError("type must be income or expense")
	}
	all, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, wrapErr("failed to list categories", err)
	}
	return paginateSlice(filterSlice(all, filter.Matches), params)
}

func (s *categoryService) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, err := s.categoryRepo.GetByID(ctx, id)
	return c, wrapErr("failed to get category", err)
}

func (s *categoryService) Create(ctx context.Context, c *domain.Category) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return err
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	return wrapErr("failed to create category", s.categoryRepo.Create(ctx, c))
}

func (s *categoryService) Update(ctx context.Context, c *domain.Category) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now()
	return wrapErr("failed to update category", s.categoryRepo.Update(ctx, c))
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return wrapErr("failed to delete category", s.categoryRepo.Delete(ctx, id))
}

type companyService struct {
	companyRepo    domain.CompanyRepository
	contextTimeout time.Duration
}

func NewCompanyService(companyRepo domain.CompanyRepository, timeout time.Duration) domain.CompanyService {
	return &companyService{companyRepo: companyRepo, contextTimeout: timeout}
}

func (s *companyService) List(ctx context.Context, filter domain.SearchFilter, params domain.PaginationParams) (*domain.ListResult[*domain.Company], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	all, err := s.companyRepo.ListAll(ctx)
	if err != nil {
		return nil, wrapErr("failed to list companies", err)
	}
	q := strings.ToLower(strings.TrimSpace(filter.Search))
	matches := filterSlice(all, func(c *domain.Company) bool {
		return q == "" ||
			strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.TaxID), q)
	})
	return paginateSlice(matches, params)
}

func (s *companyService) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	c, err := s.companyRepo.GetByID(ctx, id)
	return c, wrapErr("failed to get company", err)
}

func (s *companyService) Create(ctx context.Context, c *domain.Company) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	trimCompany(c)
	if err := c.Validate(); err != nil {
		return err
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	return wrapErr("failed to create company", s.companyRepo.Create(ctx, c))
}

func (s *companyService) Update(ctx context.Context, c *domain.Company) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	trimCompany(c)
	if err := c.Validate(); err != nil {
		return err
	}
	c.UpdatedAt = time.Now()
	return wrapErr("failed to update company", s.companyRepo.Update(ctx, c))
}

func (s *companyService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return wrapErr("failed to delete company", s.companyRepo.Delete(ctx, id))
}

func trimCompany(c *domain.Company) {
	c.Name = strings.TrimSpace(c.Name)
	c.TaxID = strings.TrimSpace(c.TaxID)
	c.Email = normalizeEmail(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
}

type positionService struct {
	positionRepo   domain.PositionRepository
	contextTimeout time.Duration
}

func NewPositionService(positionRepo domain.PositionRepository, timeout time.Duration) domain.PositionService {
	return &positionService{positionRepo: positionRepo, contextTimeout: timeout}
}

func (s *positionService) List(ctx context.Context, filter domain.SearchFilter, params domain.PaginationParams) (*domain.ListResult[*domain.Position], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	all, err := s.positionRepo.ListAll(ctx)
	if err != nil {
		return nil, wrapErr("failed to list positions", err)
	}
	q := strings.ToLower(strings.TrimSpace(filter.Search))
	matches := filterSlice(all, func(p *domain.Position) bool {
		return q == "" || strings.Contains(strings.ToLower(p.Title), q)
	})
	return paginateSlice(matches, params)
}

func (s *positionService) GetByID(ctx context.Context, id string) (*domain.Position, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.positionRepo.GetByID(ctx, id)
	return p, wrapErr("failed to get position", err)
}

func (s *positionService) Create(ctx context.Context, p *domain.Position) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p.Title = strings.TrimSpace(p.Title)
	if err := p.Validate(); err != nil {
		return err
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	return wrapErr("failed to create position", s.positionRepo.Create(ctx, p))
}

func (s *positionService) Update(ctx context.Context, p *domain.Position) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p.Title = strings.TrimSpace(p.Title)
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now()
	return wrapErr("failed to update position", s.positionRepo.Update(ctx, p))
}

func (s *positionService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return wrapErr("failed to delete position", s.positionRepo.Delete(ctx, id))
}
