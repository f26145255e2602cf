package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

const projectColumns = `id, title, slug, description, long_description, category, technologies, features,
	image_url, github_url, demo_url, status, featured, created_at, updated_at`

// ProjectRepository handles database operations for projects.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// List returns projects matching the filter, featured first then newest first.
func (r *ProjectRepository) List(ctx context.Context, filter ProjectFilter) ([]Project, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.FeaturedOnly {
		where = append(where, "featured = ?")
		args = append(args, true)
	}

	query := "SELECT " + projectColumns + " FROM projects"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY featured DESC, created_at DESC, id DESC"

	projects := []Project{}
	if err := r.db.SelectContext(ctx, &projects, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetByID retrieves a project by its ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*Project, error) {
	var p Project
	query := "SELECT " + projectColumns + " FROM projects WHERE id = ?"
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project by id: %w", err)
	}
	return &p, nil
}

// GetBySlug retrieves a project by its slug.
func (r *ProjectRepository) GetBySlug(ctx context.Context, slug string) (*Project, error) {
	var p Project
	query := "SELECT " + projectColumns + " FROM projects WHERE slug = ?"
	if err := r.db.GetContext(ctx, &p, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project by slug: %w", err)
	}
	return &p, nil
}

// Create inserts a project and fills in its generated ID and timestamps.
func (r *ProjectRepository) Create(ctx context.Context, p *Project) error {
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	query := `INSERT INTO projects (title, slug, description, long_description, category, technologies, features,
		image_url, github_url, demo_url, status, featured, created_at, updated_at)
		VALUES (:title, :slug, :description, :long_description, :category, :technologies, :features,
		:image_url, :github_url, :demo_url, :status, :featured, :created_at, :updated_at)`
	result, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert project: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	p.ID = id
	return nil
}

// Update overwrites every mutable column of an existing project.
func (r *ProjectRepository) Update(ctx context.Context, p *Project) error {
	p.UpdatedAt = time.Now().UTC()

	query := `UPDATE projects SET title = :title, slug = :slug, description = :description,
		long_description = :long_description, category = :category, technologies = :technologies,
		features = :features, image_url = :image_url, github_url = :github_url, demo_url = :demo_url,
		status = :status, featured = :featured, updated_at = :updated_at
		WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update project: %w", err)
	}
	return expectAffected(result)
}

// Delete removes a project by its ID.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return expectAffected(result)
}

// Count returns the number of stored projects.
func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM projects"); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return n, nil
}

// expectAffected maps a zero-row UPDATE or DELETE to ErrNotFound.
// MySQL reports 0 affected rows for an UPDATE that changes nothing, so callers
// that need to distinguish must check existence first.
func expectAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
