package service

import (
	"context"
	"strings"
	"time"

	"go-portfolio-app/internal/data"
	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/validation"
)

// SkillRepository defines the interface for database operations on skills.
type SkillRepository interface {
	List(ctx context.Context) ([]data.Skill, error)
	GetByID(ctx context.Context, id int64) (*data.Skill, error)
	Create(ctx context.Context, s *data.Skill) error
	Update(ctx context.Context, s *data.Skill) error
	Delete(ctx context.Context, id int64) error
}

// SkillService provides business logic for skills.
type SkillService struct {
	repo     SkillRepository
	validate *validation.Validator
	cache    readThrough
}

// NewSkillService creates a new SkillService. c may be nil.
func NewSkillService(repo SkillRepository, v *validation.Validator, c Cache, ttl time.Duration, log logger.Logger) *SkillService {
	return &SkillService{
		repo:     repo,
		validate: v,
		cache:    readThrough{cache: c, ttl: ttl, log: log},
	}
}

// List returns every skill for the admin.
func (s *SkillService) List(ctx context.Context) ([]data.Skill, error) {
	return s.repo.List(ctx)
}

// ListPublic returns every skill through the cache.
func (s *SkillService) ListPublic(ctx context.Context) ([]data.Skill, error) {
	var cached []data.Skill
	if s.cache.load(ctx, keyPublicSkills, &cached) {
		return cached, nil
	}
	skills, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.store(ctx, keyPublicSkills, skills)
	return skills, nil
}

// Create validates the input and stores a new skill.
// proficiency_level must lie in [0, 100].
func (s *SkillService) Create(ctx context.Context, in data.SkillInput) (*data.Skill, error) {
	sk := &data.Skill{}
	if err := s.apply(sk, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, sk); err != nil {
		return nil, mapRepoErr(err, err)
	}
	s.cache.invalidate(ctx, keyPublicSkills)
	return sk, nil
}

// Update replaces the fields of the skill identified by in.ID.
func (s *SkillService) Update(ctx context.Context, in data.SkillInput) (*data.Skill, error) {
	if in.ID == nil {
		return nil, ErrMissingID
	}
	sk, err := s.repo.GetByID(ctx, *in.ID)
	if err != nil {
		return nil, mapRepoErr(err, err)
	}
	if err := s.apply(sk, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, sk); err != nil {
		return nil, mapRepoErr(err, err)
	}
	s.cache.invalidate(ctx, keyPublicSkills)
	return sk, nil
}

// Delete removes a skill.
func (s *SkillService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoErr(err, err)
	}
	s.cache.invalidate(ctx, keyPublicSkills)
	return nil
}

func (s *SkillService) apply(sk *data.Skill, in data.SkillInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Icon = trimPtr(in.Icon)
	in.Description = trimPtr(in.Description)

	if err := validate(s.validate, in); err != nil {
		return err
	}

	sk.Name = in.Name
	sk.Category = in.Category
	sk.ProficiencyLevel = in.ProficiencyLevel
	sk.Icon = in.Icon
	sk.Description = in.Description
	return nil
}
