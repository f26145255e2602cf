// Package seed resets the projects and blog_posts tables to a fixed fixture set.
package seed

import (
	"context"
	"fmt"

	"go-portfolio-app/internal/data"
	"go-portfolio-app/internal/logger"

	"github.com/jmoiron/sqlx"
)

// Counts are the row counts read back after seeding.
type Counts struct {
	Projects  int
	BlogPosts int
}

// Loader runs the clear, reset, insert and count steps in order.
type Loader struct {
	db       *sqlx.DB
	dialect  data.Dialect
	projects *data.ProjectRepository
	blogs    *data.BlogRepository
	log      logger.Logger
}

// NewLoader creates a Loader for db using the given driver's dialect.
func NewLoader(db *sqlx.DB, driver string, log logger.Logger) (*Loader, error) {
	dialect, err := data.ParseDialect(driver)
	if err != nil {
		return nil, err
	}
	return &Loader{
		db:       db,
		dialect:  dialect,
		projects: data.NewProjectRepository(db),
		blogs:    data.NewBlogRepository(db),
		log:      log,
	}, nil
}

// Run seeds the fixtures. The first failing step aborts the rest; rows already
// written are left in place.
func (l *Loader) Run(ctx context.Context) (Counts, error) {
	for _, table := range []string{"projects", "blog_posts"} {
		if _, err := l.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return Counts{}, fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	l.log.Info("Cleared projects and blog_posts")

	for _, table := range []string{"projects", "blog_posts"} {
		if _, err := l.db.ExecContext(ctx, l.dialect.ResetSequenceSQL(table)); err != nil {
			return Counts{}, fmt.Errorf("failed to reset %s sequence: %w", table, err)
		}
	}

	for i := range Projects {
		p := Projects[i]
		if err := l.projects.Create(ctx, &p); err != nil {
			return Counts{}, fmt.Errorf("failed to insert project %q: %w", p.Slug, err)
		}
	}
	l.log.Info(fmt.Sprintf("Inserted %d projects", len(Projects)))

	for i := range BlogPosts {
		b := BlogPosts[i]
		if err := l.blogs.Create(ctx, &b); err != nil {
			return Counts{}, fmt.Errorf("failed to insert blog post %q: %w", b.Slug, err)
		}
	}
	l.log.Info(fmt.Sprintf("Inserted %d blog posts", len(BlogPosts)))

	var counts Counts
	var err error
	if counts.Projects, err = l.projects.Count(ctx); err != nil {
		return Counts{}, err
	}
	if counts.BlogPosts, err = l.blogs.Count(ctx); err != nil {
		return Counts{}, err
	}
	return counts, nil
}
