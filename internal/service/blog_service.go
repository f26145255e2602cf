package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-portfolio-app/internal/data"
	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/validation"
)

// BlogRepository defines the interface for database operations on blog posts.
type BlogRepository interface {
	List(ctx context.Context, filter data.BlogFilter) ([]data.BlogPost, error)
	GetByID(ctx context.Context, id int64) (*data.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*data.BlogPost, error)
	Create(ctx context.Context, b *data.BlogPost) error
	Update(ctx context.Context, b *data.BlogPost) error
	Delete(ctx context.Context, id int64) error
}

// BlogService provides business logic for blog posts.
type BlogService struct {
	repo     BlogRepository
	validate *validation.Validator
	renderer *Renderer
	cache    readThrough
	now      func() time.Time
}

// NewBlogService creates a new BlogService. c may be nil.
func NewBlogService(repo BlogRepository, v *validation.Validator, c Cache, ttl time.Duration, log logger.Logger) *BlogService {
	return &BlogService{
		repo:     repo,
		validate: v,
		renderer: NewRenderer(),
		cache:    readThrough{cache: c, ttl: ttl, log: log},
		now:      time.Now,
	}
}

// List returns every post, published or not, for the admin.
func (s *BlogService) List(ctx context.Context) ([]data.BlogPost, error) {
	return s.repo.List(ctx, data.BlogFilter{})
}

// ListPublic returns published posts only. The unfiltered list is cached.
func (s *BlogService) ListPublic(ctx context.Context, category, tag string) ([]data.BlogPost, error) {
	cacheable := category == "" && tag == ""
	if cacheable {
		var cached []data.BlogPost
		if s.cache.load(ctx, keyPublicBlogs, &cached) {
			return cached, nil
		}
	}

	now := s.now()
	posts, err := s.repo.List(ctx, data.BlogFilter{Category: category, Tag: tag, PublishedBefore: &now})
	if err != nil {
		return nil, err
	}
	if cacheable {
		s.cache.store(ctx, keyPublicBlogs, posts)
	}
	return posts, nil
}

// GetPublished returns a published post with its rendered HTML.
// Drafts and scheduled posts are reported as not found.
func (s *BlogService) GetPublished(ctx context.Context, slug string) (*data.BlogPost, error) {
	slug = strings.ToLower(slug)
	key := keyBlogPrefix + slug

	var cached data.BlogPost
	if s.cache.load(ctx, key, &cached) {
		return &cached, nil
	}

	post, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, mapRepoErr(err, ErrSlugExists)
	}
	if post.PublishedAt == nil || post.PublishedAt.After(s.now()) {
		return nil, ErrNotFound
	}

	html, err := s.renderer.Render(post.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to render post %q: %w", slug, err)
	}
	post.ContentHTML = html

	s.cache.store(ctx, key, post)
	return post, nil
}

// Create validates the input and stores a new post.
func (s *BlogService) Create(ctx context.Context, in data.BlogPostInput) (*data.BlogPost, error) {
	b := &data.BlogPost{}
	if err := s.apply(b, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, mapRepoErr(err, ErrSlugExists)
	}
	s.cache.invalidate(ctx, keyPublicBlogs)
	return b, nil
}

// Update replaces the mutable fields of the post identified by in.ID.
func (s *BlogService) Update(ctx context.Context, in data.BlogPostInput) (*data.BlogPost, error) {
	if in.ID == nil {
		return nil, ErrMissingID
	}
	b, err := s.repo.GetByID(ctx, *in.ID)
	if err != nil {
		return nil, mapRepoErr(err, ErrSlugExists)
	}
	oldSlug := b.Slug
	if err := s.apply(b, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, mapRepoErr(err, ErrSlugExists)
	}
	s.cache.invalidate(ctx, keyPublicBlogs, keyBlogPrefix+oldSlug, keyBlogPrefix+b.Slug)
	return b, nil
}

// Delete removes a post.
func (s *BlogService) Delete(ctx context.Context, id int64) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapRepoErr(err, ErrSlugExists)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoErr(err, ErrSlugExists)
	}
	s.cache.invalidate(ctx, keyPublicBlogs, keyBlogPrefix+b.Slug)
	return nil
}

func (s *BlogService) apply(b *data.BlogPost, in data.BlogPostInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Excerpt = strings.TrimSpace(in.Excerpt)
	in.Category = strings.TrimSpace(in.Category)
	in.Tags = cleanList(in.Tags)
	in.ReadTime = trimPtr(in.ReadTime)
	in.ExternalURL = trimPtr(in.ExternalURL)
	in.Slug = normalizeSlug(in.Slug, in.Title)

	if err := validate(s.validate, in); err != nil {
		return err
	}
	if in.Slug == "" {
		return ErrInvalidSlug
	}

	b.Title = in.Title
	b.Slug = in.Slug
	b.Excerpt = in.Excerpt
	b.Content = in.Content
	b.Category = in.Category
	b.Tags = in.Tags
	b.ReadTime = in.ReadTime
	b.PublishedAt = in.PublishedAt
	b.Featured = in.Featured
	b.ExternalURL = in.ExternalURL
	return nil
}
