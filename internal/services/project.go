package services

import (
	"context"
	"strings"
	"time"

	"projectledger/internal/domain"
)

type projectService struct {
	projectRepo    domain.ProjectRepository
	contextTimeout time.Duration
}

func NewProjectService(projectRepo domain.ProjectRepository, timeout time.Duration) domain.ProjectService {
	return &projectService{projectRepo: projectRepo, contextTimeout: timeout}
}

func (s *projectService) List(ctx context.Context, filter domain.ProjectFilter, params domain.PaginationParams) (*domain.ListResult[*domain.Project], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.NewValidationError("status must be one of active, on_hold, completed")
	}
	res, err := listPage(ctx, params,
		func(ctx context.Context) (int, error) { return s.projectRepo.Count(ctx, filter) },
		func(ctx context.Context, limit, offset int) ([]*domain.Project, error) {
			return s.projectRepo.List(ctx, filter, limit, offset)
		},
	)
	return res, wrapErr("failed to list projects", err)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.projectRepo.GetByID(ctx, id)
	return p, wrapErr("failed to get project", err)
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if p.OwnerID == "" {
		return domain.NewValidationError("project owner is required")
	}
	if p.Status == "" {
		p.Status = domain.ProjectActive
	}
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return err
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return wrapErr("failed to create project", s.projectRepo.Create(ctx, p))
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now()
	return wrapErr("failed to update project", s.projectRepo.Update(ctx, p))
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return wrapErr("failed to delete project", s.projectRepo.Delete(ctx, id))
}
