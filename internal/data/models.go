package data

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is an ordered list of strings stored as JSON-encoded text.
type StringList []string

// Value implements driver.Valuer. A nil list is stored as "[]".
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("failed to decode string list: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*l = out
	return nil
}

// Project represents a portfolio project in the database.
type Project struct {
	ID              int64      `db:"id" json:"id"`
	Title           string     `db:"title" json:"title"`
	Slug            string     `db:"slug" json:"slug"`
	Description     string     `db:"description" json:"description"`
	LongDescription *string    `db:"long_description" json:"long_description,omitempty"`
	Category        string     `db:"category" json:"category"`
	Technologies    StringList `db:"technologies" json:"technologies"`
	Features        StringList `db:"features" json:"features"`
	ImageURL        *string    `db:"image_url" json:"image_url,omitempty"`
	GithubURL       *string    `db:"github_url" json:"github_url,omitempty"`
	DemoURL         *string    `db:"demo_url" json:"demo_url,omitempty"`
	Status          string     `db:"status" json:"status"`
	Featured        bool       `db:"featured" json:"featured"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// BlogPost represents a blog article. ContentHTML is rendered on read and never stored.
type BlogPost struct {
	ID          int64      `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Slug        string     `db:"slug" json:"slug"`
	Excerpt     string     `db:"excerpt" json:"excerpt"`
	Content     string     `db:"content" json:"content"`
	ContentHTML string     `db:"-" json:"content_html,omitempty"`
	Category    string     `db:"category" json:"category"`
	Tags        StringList `db:"tags" json:"tags"`
	ReadTime    *string    `db:"read_time" json:"read_time,omitempty"`
	PublishedAt *time.Time `db:"published_at" json:"published_at,omitempty"`
	Featured    bool       `db:"featured" json:"featured"`
	ExternalURL *string    `db:"external_url" json:"external_url,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// Skill represents a skill shown on the about section.
type Skill struct {
	ID               int64   `db:"id" json:"id"`
	Name             string  `db:"name" json:"name"`
	Category         string  `db:"category" json:"category"`
	ProficiencyLevel int     `db:"proficiency_level" json:"proficiency_level"`
	Icon             *string `db:"icon" json:"icon,omitempty"`
	Description      *string `db:"description" json:"description,omitempty"`
}

// Subscriber represents a newsletter subscriber. The unsubscribe token is never serialized.
type Subscriber struct {
	ID             int64      `db:"id" json:"id"`
	Email          string     `db:"email" json:"email"`
	Active         bool       `db:"active" json:"active"`
	Token          string     `db:"token" json:"-"`
	SubscribedAt   time.Time  `db:"subscribed_at" json:"subscribed_at"`
	UnsubscribedAt *time.Time `db:"unsubscribed_at" json:"unsubscribed_at,omitempty"`
}

// NewsletterStats holds the aggregate subscriber counters.
type NewsletterStats struct {
	TotalSubscribers    int `db:"total" json:"totalSubscribers"`
	ActiveSubscribers   int `db:"active" json:"activeSubscribers"`
	RecentSubscriptions int `db:"recent" json:"recentSubscriptions"`
}

// ProjectInput is the create/update payload for a project. ID is nil on create.
type ProjectInput struct {
	ID              *int64   `json:"id,omitempty"`
	Title           string   `json:"title" validate:"required,max=255"`
	Slug            string   `json:"slug" validate:"omitempty,slug,max=255"`
	Description     string   `json:"description" validate:"required"`
	LongDescription *string  `json:"long_description,omitempty"`
	Category        string   `json:"category" validate:"required,max=100"`
	Technologies    []string `json:"technologies" validate:"dive,required"`
	Features        []string `json:"features" validate:"dive,required"`
	ImageURL        *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	GithubURL       *string  `json:"github_url,omitempty" validate:"omitempty,url"`
	DemoURL         *string  `json:"demo_url,omitempty" validate:"omitempty,url"`
	Status          string   `json:"status" validate:"max=50"`
	Featured        bool     `json:"featured"`
}

// BlogPostInput is the create/update payload for a blog post. ID is nil on create.
type BlogPostInput struct {
	ID          *int64     `json:"id,omitempty"`
	Title       string     `json:"title" validate:"required,max=255"`
	Slug        string     `json:"slug" validate:"omitempty,slug,max=255"`
	Excerpt     string     `json:"excerpt" validate:"required"`
	Content     string     `json:"content"`
	Category    string     `json:"category" validate:"required,max=100"`
	Tags        []string   `json:"tags" validate:"dive,required"`
	ReadTime    *string    `json:"read_time,omitempty" validate:"omitempty,max=50"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Featured    bool       `json:"featured"`
	ExternalURL *string    `json:"external_url,omitempty" validate:"omitempty,url"`
}

// SkillInput is the create/update payload for a skill. ID is nil on create.
type SkillInput struct {
	ID               *int64  `json:"id,omitempty"`
	Name             string  `json:"name" validate:"required,max=100"`
	Category         string  `json:"category" validate:"required,max=100"`
	ProficiencyLevel int     `json:"proficiency_level" validate:"gte=0,lte=100"`
	Icon             *string `json:"icon,omitempty" validate:"omitempty,max=50"`
	Description      *string `json:"description,omitempty"`
}

// ProjectFilter narrows a project listing. Zero values mean "no filter".
type ProjectFilter struct {
	Category     string
	FeaturedOnly bool
}

// BlogFilter narrows a blog listing. PublishedBefore limits results to posts
// with a publication date at or before the given time.
type BlogFilter struct {
	Category        string
	Tag             string
	PublishedBefore *time.Time
}

// ToInput returns an edit buffer holding a copy of the project.
func (p Project) ToInput() ProjectInput {
	id := p.ID
	return ProjectInput{
		ID:              &id,
		Title:           p.Title,
		Slug:            p.Slug,
		Description:     p.Description,
		LongDescription: p.LongDescription,
		Category:        p.Category,
		Technologies:    append([]string{}, p.Technologies...),
		Features:        append([]string{}, p.Features...),
		ImageURL:        p.ImageURL,
		GithubURL:       p.GithubURL,
		DemoURL:         p.DemoURL,
		Status:          p.Status,
		Featured:        p.Featured,
	}
}

// ToInput returns an edit buffer holding a copy of the post.
func (b BlogPost) ToInput() BlogPostInput {
	id := b.ID
	return BlogPostInput{
		ID:          &id,
		Title:       b.Title,
		Slug:        b.Slug,
		Excerpt:     b.Excerpt,
		Content:     b.Content,
		Category:    b.Category,
		Tags:        append([]string{}, b.Tags...),
		ReadTime:    b.ReadTime,
		PublishedAt: b.PublishedAt,
		Featured:    b.Featured,
		ExternalURL: b.ExternalURL,
	}
}

// ToInput returns an edit buffer holding a copy of the skill.
func (s Skill) ToInput() SkillInput {
	id := s.ID
	return SkillInput{
		ID:               &id,
		Name:             s.Name,
		Category:         s.Category,
		ProficiencyLevel: s.ProficiencyLevel,
		Icon:             s.Icon,
		Description:      s.Description,
	}
}
