//go:build unit

package service

import (
	"context"
	"sync"
	"time"

	"go-portfolio-app/internal/data"
)

// mockCache is an in-memory Cache that records calls.
type mockCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	gets    int
	deletes []string
}

var _ Cache = (*mockCache)(nil)

func newMockCache() *mockCache {
	return &mockCache{items: map[string][]byte{}}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, key)
	delete(m.items, key)
	return nil
}

// mockProjectRepository is a mock implementation of the ProjectRepository interface.
type mockProjectRepository struct {
	errToReturn     error
	projectToReturn *data.Project
	listToReturn    []data.Project
	listCalled      int
	createCalled    bool
	updateCalled    bool
	deleteCalled    bool
	lastFilter      data.ProjectFilter
	lastSaved       *data.Project
}

var _ ProjectRepository = (*mockProjectRepository)(nil)

func (m *mockProjectRepository) List(ctx context.Context, filter data.ProjectFilter) ([]data.Project, error) {
	m.listCalled++
	m.lastFilter = filter
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.listToReturn, nil
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id int64) (*data.Project, error) {
	if m.projectToReturn != nil && m.projectToReturn.ID == id {
		cp := *m.projectToReturn
		return &cp, nil
	}
	return nil, data.ErrNotFound
}

func (m *mockProjectRepository) GetBySlug(ctx context.Context, slug string) (*data.Project, error) {
	if m.projectToReturn != nil && m.projectToReturn.Slug == slug {
		cp := *m.projectToReturn
		return &cp, nil
	}
	return nil, data.ErrNotFound
}

func (m *mockProjectRepository) Create(ctx context.Context, p *data.Project) error {
	m.createCalled = true
	m.lastSaved = p
	if m.errToReturn != nil {
		return m.errToReturn
	}
	p.ID = 1
	return nil
}

func (m *mockProjectRepository) Update(ctx context.Context, p *data.Project) error {
	m.updateCalled = true
	m.lastSaved = p
	return m.errToReturn
}

func (m *mockProjectRepository) Delete(ctx context.Context, id int64) error {
	m.deleteCalled = true
	return m.errToReturn
}

// mockBlogRepository is a mock implementation of the BlogRepository interface.
type mockBlogRepository struct {
	errToReturn  error
	postToReturn *data.BlogPost
	listToReturn []data.BlogPost
	lastFilter   data.BlogFilter
	createCalled bool
	lastSaved    *data.BlogPost
}

var _ BlogRepository = (*mockBlogRepository)(nil)

func (m *mockBlogRepository) List(ctx context.Context, filter data.BlogFilter) ([]data.BlogPost, error) {
	m.lastFilter = filter
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	return m.listToReturn, nil
}

func (m *mockBlogRepository) GetByID(ctx context.Context, id int64) (*data.BlogPost, error) {
	if m.postToReturn != nil && m.postToReturn.ID == id {
		cp := *m.postToReturn
		return &cp, nil
	}
	return nil, data.ErrNotFound
}

func (m *mockBlogRepository) GetBySlug(ctx context.Context, slug string) (*data.BlogPost, error) {
	if m.postToReturn != nil && m.postToReturn.Slug == slug {
		cp := *m.postToReturn
		return &cp, nil
	}
	return nil, data.ErrNotFound
}

func (m *mockBlogRepository) Create(ctx context.Context, b *data.BlogPost) error {
	m.createCalled = true
	m.lastSaved = b
	if m.errToReturn != nil {
		return m.errToReturn
	}
	b.ID = 1
	return nil
}

func (m *mockBlogRepository) Update(ctx context.Context, b *data.BlogPost) error {
	m.lastSaved = b
	return m.errToReturn
}

func (m *mockBlogRepository) Delete(ctx context.Context, id int64) error {
	return m.errToReturn
}

// mockSkillRepository is a mock implementation of the SkillRepository interface.
type mockSkillRepository struct {
	errToReturn  error
	skills       []data.Skill
	createCalled bool
}

var _ SkillRepository = (*mockSkillRepository)(nil)

func (m *mockSkillRepository) List(ctx context.Context) ([]data.Skill, error) {
	return m.skills, m.errToReturn
}

func (m *mockSkillRepository) GetByID(ctx context.Context, id int64) (*data.Skill, error) {
	for _, s := range m.skills {
		if s.ID == id {
			cp := s
			return &cp, nil
		}
	}
	return nil, data.ErrNotFound
}

func (m *mockSkillRepository) Create(ctx context.Context, s *data.Skill) error {
	m.createCalled = true
	if m.errToReturn != nil {
		return m.errToReturn
	}
	s.ID = int64(len(m.skills) + 1)
	m.skills = append(m.skills, *s)
	return nil
}

func (m *mockSkillRepository) Update(ctx context.Context, s *data.Skill) error {
	return m.errToReturn
}

func (m *mockSkillRepository) Delete(ctx context.Context, id int64) error {
	return m.errToReturn
}

// mockSubscriberRepository keeps subscribers in a slice.
type mockSubscriberRepository struct {
	subs             []data.Subscriber
	statsSince       time.Time
	reactivateCalled bool
	deactivateCalled bool
}

var _ SubscriberRepository = (*mockSubscriberRepository)(nil)

func (m *mockSubscriberRepository) List(ctx context.Context) ([]data.Subscriber, error) {
	return m.subs, nil
}

func (m *mockSubscriberRepository) find(match func(data.Subscriber) bool) (*data.Subscriber, error) {
	for i := range m.subs {
		if match(m.subs[i]) {
			cp := m.subs[i]
			return &cp, nil
		}
	}
	return nil, data.ErrNotFound
}

func (m *mockSubscriberRepository) GetByEmail(ctx context.Context, email string) (*data.Subscriber, error) {
	return m.find(func(s data.Subscriber) bool { return s.Email == email })
}

func (m *mockSubscriberRepository) GetByToken(ctx context.Context, token string) (*data.Subscriber, error) {
	return m.find(func(s data.Subscriber) bool { return s.Token == token })
}

func (m *mockSubscriberRepository) Create(ctx context.Context, s *data.Subscriber) error {
	for _, existing := range m.subs {
		if existing.Email == s.Email {
			return data.ErrDuplicate
		}
	}
	s.ID = int64(len(m.subs) + 1)
	s.Active = true
	m.subs = append(m.subs, *s)
	return nil
}

func (m *mockSubscriberRepository) Reactivate(ctx context.Context, id int64, token string) error {
	m.reactivateCalled = true
	for i := range m.subs {
		if m.subs[i].ID == id {
			m.subs[i].Active = true
			m.subs[i].Token = token
			m.subs[i].UnsubscribedAt = nil
			return nil
		}
	}
	return data.ErrNotFound
}

func (m *mockSubscriberRepository) Deactivate(ctx context.Context, id int64, at time.Time) error {
	m.deactivateCalled = true
	for i := range m.subs {
		if m.subs[i].ID == id {
			m.subs[i].Active = false
			m.subs[i].UnsubscribedAt = &at
			return nil
		}
	}
	return data.ErrNotFound
}

func (m *mockSubscriberRepository) Delete(ctx context.Context, id int64) error {
	for i := range m.subs {
		if m.subs[i].ID == id {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			return nil
		}
	}
	return data.ErrNotFound
}

func (m *mockSubscriberRepository) Stats(ctx context.Context, since time.Time) (data.NewsletterStats, error) {
	m.statsSince = since
	var st data.NewsletterStats
	for _, s := range m.subs {
		st.TotalSubscribers++
		if s.Active {
			st.ActiveSubscribers++
		}
		if !s.SubscribedAt.Before(since) {
			st.RecentSubscriptions++
		}
	}
	return st, nil
}
