package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-portfolio-app/internal/data"
	"go-portfolio-app/internal/logger"

	"golang.org/x/sync/errgroup"
)

// Kind names one of the four admin collections.
type Kind string

const (
	KindProject    Kind = "projects"
	KindBlog       Kind = "blogs"
	KindSkill      Kind = "skills"
	KindSubscriber Kind = "newsletter"
)

var (
	ErrUnknownKind = errors.New("unknown content kind")
	ErrNoBuffer    = errors.New("no open edit buffer")
	ErrReadOnly    = errors.New("subscribers cannot be created or edited")
)

// ParseKind accepts singular and plural names ("project", "blogs", "subscriber", ...).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "project", "projects":
		return KindProject, nil
	case "blog", "blogs", "post", "posts":
		return KindBlog, nil
	case "skill", "skills":
		return KindSkill, nil
	case "newsletter", "subscriber", "subscribers":
		return KindSubscriber, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) path() string { return "/api/admin/" + string(k) }

// State is a snapshot of the four loaded collections.
type State struct {
	Projects    []data.Project
	Blogs       []data.BlogPost
	Skills      []data.Skill
	Subscribers []data.Subscriber
	Stats       data.NewsletterStats
	LoadedAt    time.Time
}

// Outcome classifies the last mutating operation.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeFailed   Outcome = "failed"
	OutcomeDeclined Outcome = "declined"
)

// Result describes the last Save or Delete so callers can show a status line.
type Result struct {
	Op      string
	Kind    Kind
	ID      int64
	Outcome Outcome
	Err     error
	At      time.Time
}

func (r Result) String() string {
	if r.Op == "" {
		return "no operation yet"
	}
	s := fmt.Sprintf("%s %s", r.Op, r.Kind)
	if r.ID != 0 {
		s += fmt.Sprintf(" #%d", r.ID)
	}
	s += ": " + string(r.Outcome)
	if r.Err != nil {
		s += " (" + r.Err.Error() + ")"
	}
	return s
}

// Manager holds a cached copy of the admin collections and the per-kind edit
// buffers. After every successful mutation the whole dataset is reloaded.
type Manager struct {
	api     ContentAPI
	confirm Confirmer
	log     logger.Logger
	now     func() time.Time

	mu      sync.Mutex
	state   State
	project *data.ProjectInput
	blog    *data.BlogPostInput
	skill   *data.SkillInput
	last    Result
}

// NewManager creates a Manager. A nil confirmer declines every delete.
func NewManager(api ContentAPI, confirm Confirmer, log logger.Logger) *Manager {
	if confirm == nil {
		confirm = Decline
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{api: api, confirm: confirm, log: log, now: time.Now}
}

// State returns the current snapshot.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LastResult returns the outcome of the most recent Save or Delete.
func (m *Manager) LastResult() Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// LoadAll fetches the four collections concurrently and replaces the state
// once all of them have settled. A malformed collection becomes empty. Any
// other failure leaves the previous state in place.
func (m *Manager) LoadAll(ctx context.Context) error {
	var (
		next State
		g    errgroup.Group
	)

	g.Go(func() error {
		projects, err := m.api.ListProjects(ctx)
		next.Projects, err = orEmpty(projects, err)
		return m.loadErr(KindProject, err)
	})
	g.Go(func() error {
		blogs, err := m.api.ListBlogs(ctx)
		next.Blogs, err = orEmpty(blogs, err)
		return m.loadErr(KindBlog, err)
	})
	g.Go(func() error {
		skills, err := m.api.ListSkills(ctx)
		next.Skills, err = orEmpty(skills, err)
		return m.loadErr(KindSkill, err)
	})
	g.Go(func() error {
		n, err := m.api.ListNewsletter(ctx)
		next.Subscribers, err = orEmpty(n.Subscribers, err)
		next.Stats = n.Stats
		return m.loadErr(KindSubscriber, err)
	})

	if err := g.Wait(); err != nil {
		m.log.Error(err, "Failed to load admin content")
		return err
	}

	next.LoadedAt = m.now()
	m.mu.Lock()
	m.state = next
	m.mu.Unlock()
	return nil
}

// orEmpty maps a malformed response to an empty collection.
func orEmpty[T any](items []T, err error) ([]T, error) {
	if errors.Is(err, ErrMalformedResponse) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (m *Manager) loadErr(kind Kind, err error) error {
	if err != nil {
		return fmt.Errorf("load %s: %w", kind, err)
	}
	return nil
}

// BeginProjectEdit opens the project buffer, discarding any unsaved edit.
func (m *Manager) BeginProjectEdit(in data.ProjectInput) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.project = &in
}

// BeginBlogEdit opens the blog buffer, discarding any unsaved edit.
func (m *Manager) BeginBlogEdit(in data.BlogPostInput) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blog = &in
}

// BeginSkillEdit opens the skill buffer, discarding any unsaved edit.
func (m *Manager) BeginSkillEdit(in data.SkillInput) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skill = &in
}

// Buffer returns a copy of the open buffer for kind, or false when none is open.
func (m *Manager) Buffer(kind Kind) (interface{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch kind {
	case KindProject:
		if m.project != nil {
			return *m.project, true
		}
	case KindBlog:
		if m.blog != nil {
			return *m.blog, true
		}
	case KindSkill:
		if m.skill != nil {
			return *m.skill, true
		}
	}
	return nil, false
}

// CancelEdit discards the buffer for kind.
func (m *Manager) CancelEdit(kind Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearBuffer(kind)
}

func (m *Manager) clearBuffer(kind Kind) {
	switch kind {
	case KindProject:
		m.project = nil
	case KindBlog:
		m.blog = nil
	case KindSkill:
		m.skill = nil
	}
}

// snapshot returns the buffer body and its id (nil on create).
func (m *Manager) snapshot(kind Kind) (interface{}, *int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch kind {
	case KindProject:
		if m.project != nil {
			return *m.project, m.project.ID, nil
		}
	case KindBlog:
		if m.blog != nil {
			return *m.blog, m.blog.ID, nil
		}
	case KindSkill:
		if m.skill != nil {
			return *m.skill, m.skill.ID, nil
		}
	case KindSubscriber:
		return nil, nil, ErrReadOnly
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return nil, nil, ErrNoBuffer
}

// Save POSTs the buffer for kind when it has no id and PUTs it otherwise.
// On success the buffer is cleared and the collections are reloaded; on
// failure the buffer stays open.
func (m *Manager) Save(ctx context.Context, kind Kind) error {
	body, id, err := m.snapshot(kind)
	if err != nil {
		return err
	}

	res := Result{Op: "create", Kind: kind}
	if id != nil {
		res.Op = "update"
		res.ID = *id
		err = m.api.Update(ctx, kind, body)
	} else {
		res.ID, err = m.api.Create(ctx, kind, body)
	}
	if err != nil {
		m.log.With(map[string]interface{}{"kind": string(kind), "op": res.Op}).Error(err, "Save failed")
		m.record(res, err)
		return err
	}

	m.mu.Lock()
	m.clearBuffer(kind)
	m.mu.Unlock()
	m.record(res, nil)

	if err := m.LoadAll(ctx); err != nil {
		m.log.Warn("Reload after save failed; collections may be stale")
	}
	return nil
}

// Delete asks for confirmation and removes the entity. A declined
// confirmation issues no request and is not an error.
func (m *Manager) Delete(ctx context.Context, kind Kind, id int64) error {
	if _, err := ParseKind(string(kind)); err != nil {
		return err
	}
	res := Result{Op: "delete", Kind: kind, ID: id}

	if !m.confirm.Confirm(fmt.Sprintf("Delete %s #%d?", strings.TrimSuffix(string(kind), "s"), id)) {
		res.Outcome = OutcomeDeclined
		res.At = m.now()
		m.mu.Lock()
		m.last = res
		m.mu.Unlock()
		return nil
	}

	if err := m.api.Delete(ctx, kind, id); err != nil {
		m.log.With(map[string]interface{}{"kind": string(kind), "id": id}).Error(err, "Delete failed")
		m.record(res, err)
		return err
	}
	m.record(res, nil)

	if err := m.LoadAll(ctx); err != nil {
		m.log.Warn("Reload after delete failed; collections may be stale")
	}
	return nil
}

func (m *Manager) record(res Result, err error) {
	res.Outcome = OutcomeOK
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
	}
	res.At = m.now()
	m.mu.Lock()
	m.last = res
	m.mu.Unlock()
}

// BlankProject is the template for a new project.
func BlankProject() data.ProjectInput {
	return data.ProjectInput{
		Technologies: []string{},
		Features:     []string{},
		Status:       "Completed",
	}
}

// BlankBlogPost is the template for a new blog post.
func BlankBlogPost() data.BlogPostInput {
	return data.BlogPostInput{Tags: []string{}}
}

// BlankSkill is the template for a new skill.
func BlankSkill() data.SkillInput {
	return data.SkillInput{ProficiencyLevel: 50}
}
