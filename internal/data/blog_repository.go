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

const blogColumns = `id, title, slug, excerpt, content, category, tags, read_time, published_at,
	featured, external_url, created_at, updated_at`

// BlogRepository handles database operations for blog posts.
type BlogRepository struct {
	db *sqlx.DB
}

// NewBlogRepository creates a new BlogRepository.
func NewBlogRepository(db *sqlx.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

// List returns posts matching the filter, newest publication first.
// Tags are stored as JSON text, so the tag filter matches the quoted element.
func (r *BlogRepository) List(ctx context.Context, filter BlogFilter) ([]BlogPost, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Tag != "" {
		where = append(where, "tags LIKE ? ESCAPE '!'")
		args = append(args, `%"`+escapeLike(filter.Tag)+`"%`)
	}
	if filter.PublishedBefore != nil {
		where = append(where, "published_at IS NOT NULL AND published_at <= ?")
		args = append(args, filter.PublishedBefore.UTC())
	}

	query := "SELECT " + blogColumns + " FROM blog_posts"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY published_at IS NULL, published_at DESC, id DESC"

	posts := []BlogPost{}
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	return posts, nil
}

// GetByID retrieves a post by its ID.
func (r *BlogRepository) GetByID(ctx context.Context, id int64) (*BlogPost, error) {
	var b BlogPost
	query := "SELECT " + blogColumns + " FROM blog_posts WHERE id = ?"
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blog post by id: %w", err)
	}
	return &b, nil
}

// GetBySlug retrieves a post by its slug.
func (r *BlogRepository) GetBySlug(ctx context.Context, slug string) (*BlogPost, error) {
	var b BlogPost
	query := "SELECT " + blogColumns + " FROM blog_posts WHERE slug = ?"
	if err := r.db.GetContext(ctx, &b, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blog post by slug: %w", err)
	}
	return &b, nil
}

// Create inserts a post and fills in its generated ID and timestamps.
func (r *BlogRepository) Create(ctx context.Context, b *BlogPost) error {
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now
	if b.PublishedAt != nil {
		t := b.PublishedAt.UTC()
		b.PublishedAt = &t
	}

	query := `INSERT INTO blog_posts (title, slug, excerpt, content, category, tags, read_time, published_at,
		featured, external_url, created_at, updated_at)
		VALUES (:title, :slug, :excerpt, :content, :category, :tags, :read_time, :published_at,
		:featured, :external_url, :created_at, :updated_at)`
	result, err := r.db.NamedExecContext(ctx, query, b)
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert blog post: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	b.ID = id
	return nil
}

// Update overwrites every mutable column of an existing post.
func (r *BlogRepository) Update(ctx context.Context, b *BlogPost) error {
	b.UpdatedAt = time.Now().UTC()
	if b.PublishedAt != nil {
		t := b.PublishedAt.UTC()
		b.PublishedAt = &t
	}

	query := `UPDATE blog_posts SET title = :title, slug = :slug, excerpt = :excerpt, content = :content,
		category = :category, tags = :tags, read_time = :read_time, published_at = :published_at,
		featured = :featured, external_url = :external_url, updated_at = :updated_at
		WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, b)
	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to update blog post: %w", err)
	}
	return expectAffected(result)
}

// Delete removes a post by its ID.
func (r *BlogRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM blog_posts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
	}
	return expectAffected(result)
}

// Count returns the number of stored posts.
func (r *BlogRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM blog_posts"); err != nil {
		return 0, fmt.Errorf("failed to count blog posts: %w", err)
	}
	return n, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`).Replace(s)
}
