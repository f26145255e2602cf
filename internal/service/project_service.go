package service

import (
	"context"
	"strings"
	"time"

	"go-portfolio-app/internal/data"
	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/validation"
)

// ProjectRepository defines the interface for database operations on projects.
type ProjectRepository interface {
	List(ctx context.Context, filter data.ProjectFilter) ([]data.Project, error)
	GetByID(ctx context.Context, id int64) (*data.Project, error)
	GetBySlug(ctx context.Context, slug string) (*data.Project, error)
	Create(ctx context.Context, p *data.Project) error
	Update(ctx context.Context, p *data.Project) error
	Delete(ctx context.Context, id int64) error
}

// ProjectService provides business logic for portfolio projects.
type ProjectService struct {
	repo     ProjectRepository
	validate *validation.Validator
	cache    readThrough
}

// NewProjectService creates a new ProjectService. c may be nil.
func NewProjectService(repo ProjectRepository, v *validation.Validator, c Cache, ttl time.Duration, log logger.Logger) *ProjectService {
	return &ProjectService{
		repo:     repo,
		validate: v,
		cache:    readThrough{cache: c, ttl: ttl, log: log},
	}
}

// List returns every project for the admin.
func (s *ProjectService) List(ctx context.Context) ([]data.Project, error) {
	return s.repo.List(ctx, data.ProjectFilter{})
}

// ListPublic returns projects for the public site. The unfiltered list is cached.
func (s *ProjectService) ListPublic(ctx context.Context, filter data.ProjectFilter) ([]data.Project, error) {
	cacheable := filter == data.ProjectFilter{}
	if cacheable {
		var cached []data.Project
		if s.cache.load(ctx, keyPublicProjects, &cached) {
			return cached, nil
		}
	}

	projects, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.cache.store(ctx, keyPublicProjects, projects)
	}
	return projects, nil
}

// GetBySlug retrieves a single project for the public site.
func (s *ProjectService) GetBySlug(ctx context.Context, slug string) (*data.Project, error) {
	p, err := s.repo.GetBySlug(ctx, strings.ToLower(slug))
	if err != nil {
		return nil, mapRepoErr(err, ErrSlugExists)
	}
	return p, nil
}

// Create validates the input and stores a new project.
func (s *ProjectService) Create(ctx context.Context, in data.ProjectInput) (*data.Project, error) {
	p := &data.Project{}
	if err := s.apply(p, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, mapRepoErr(err, ErrSlugExists)
	}
	s.cache.invalidate(ctx, keyPublicProjects)
	return p, nil
}

// Update replaces the mutable fields of the project identified by in.ID.
func (s *ProjectService) Update(ctx context.Context, in data.ProjectInput) (*data.Project, error) {
	if in.ID == nil {
		return nil, ErrMissingID
	}
	p, err := s.repo.GetByID(ctx, *in.ID)
	if err != nil {
		return nil, mapRepoErr(err, ErrSlugExists)
	}
	if err := s.apply(p, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, mapRepoErr(err, ErrSlugExists)
	}
	s.cache.invalidate(ctx, keyPublicProjects)
	return p, nil
}

// Delete removes a project.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoErr(err, ErrSlugExists)
	}
	s.cache.invalidate(ctx, keyPublicProjects)
	return nil
}

func (s *ProjectService) apply(p *data.Project, in data.ProjectInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.Status = strings.TrimSpace(in.Status)
	in.Technologies = cleanList(in.Technologies)
	in.Features = cleanList(in.Features)
	in.LongDescription = trimPtr(in.LongDescription)
	in.ImageURL = trimPtr(in.ImageURL)
	in.GithubURL = trimPtr(in.GithubURL)
	in.DemoURL = trimPtr(in.DemoURL)

	in.Slug = normalizeSlug(in.Slug, in.Title)

	if err := validate(s.validate, in); err != nil {
		return err
	}
	if in.Slug == "" {
		return ErrInvalidSlug
	}

	p.Title = in.Title
	p.Slug = in.Slug
	p.Description = in.Description
	p.LongDescription = in.LongDescription
	p.Category = in.Category
	p.Technologies = in.Technologies
	p.Features = in.Features
	p.ImageURL = in.ImageURL
	p.GithubURL = in.GithubURL
	p.DemoURL = in.DemoURL
	p.Status = in.Status
	p.Featured = in.Featured
	return nil
}
