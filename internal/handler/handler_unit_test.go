//go:build unit

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-portfolio-app/internal/auth"
	"go-portfolio-app/internal/data"
	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/middleware"
	"go-portfolio-app/internal/service"
)

type mockProjectServicer struct {
	projects     []data.Project
	createErr    error
	createCalled bool
	lastInput    data.ProjectInput
	deletedID    int64
}

func (m *mockProjectServicer) List(ctx context.Context) ([]data.Project, error) {
	return m.projects, nil
}
func (m *mockProjectServicer) ListPublic(ctx context.Context, filter data.ProjectFilter) ([]data.Project, error) {
	return m.projects, nil
}
func (m *mockProjectServicer) GetBySlug(ctx context.Context, slug string) (*data.Project, error) {
	for i := range m.projects {
		if m.projects[i].Slug == slug {
			return &m.projects[i], nil
		}
	}
	return nil, service.ErrNotFound
}
func (m *mockProjectServicer) Create(ctx context.Context, in data.ProjectInput) (*data.Project, error) {
	m.createCalled = true
	m.lastInput = in
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &data.Project{ID: 7, Title: in.Title, Slug: in.Slug}, nil
}
func (m *mockProjectServicer) Update(ctx context.Context, in data.ProjectInput) (*data.Project, error) {
	m.lastInput = in
	if in.ID == nil {
		return nil, service.ErrMissingID
	}
	return &data.Project{ID: *in.ID, Title: in.Title}, nil
}
func (m *mockProjectServicer) Delete(ctx context.Context, id int64) error {
	m.deletedID = id
	return nil
}

type mockBlogServicer struct{}

func (m *mockBlogServicer) List(ctx context.Context) ([]data.BlogPost, error) { return nil, nil }
func (m *mockBlogServicer) ListPublic(ctx context.Context, category, tag string) ([]data.BlogPost, error) {
	return []data.BlogPost{}, nil
}
func (m *mockBlogServicer) GetPublished(ctx context.Context, slug string) (*data.BlogPost, error) {
	return nil, service.ErrNotFound
}
func (m *mockBlogServicer) Create(ctx context.Context, in data.BlogPostInput) (*data.BlogPost, error) {
	return nil, nil
}
func (m *mockBlogServicer) Update(ctx context.Context, in data.BlogPostInput) (*data.BlogPost, error) {
	return nil, nil
}
func (m *mockBlogServicer) Delete(ctx context.Context, id int64) error { return nil }

type mockSkillServicer struct {
	createErr error
}

func (m *mockSkillServicer) List(ctx context.Context) ([]data.Skill, error)       { return []data.Skill{}, nil }
func (m *mockSkillServicer) ListPublic(ctx context.Context) ([]data.Skill, error) { return []data.Skill{}, nil }
func (m *mockSkillServicer) Create(ctx context.Context, in data.SkillInput) (*data.Skill, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &data.Skill{ID: 1, Name: in.Name}, nil
}
func (m *mockSkillServicer) Update(ctx context.Context, in data.SkillInput) (*data.Skill, error) {
	return nil, nil
}
func (m *mockSkillServicer) Delete(ctx context.Context, id int64) error { return nil }

type mockNewsletterServicer struct {
	issued bool
}

func (m *mockNewsletterServicer) List(ctx context.Context) ([]data.Subscriber, data.NewsletterStats, error) {
	return []data.Subscriber{}, data.NewsletterStats{TotalSubscribers: 3, ActiveSubscribers: 2, RecentSubscriptions: 1}, nil
}
func (m *mockNewsletterServicer) Delete(ctx context.Context, id int64) error { return nil }
func (m *mockNewsletterServicer) Subscribe(ctx context.Context, email string) (*data.Subscriber, bool, error) {
	return &data.Subscriber{ID: 1, Email: email, Token: "tok"}, m.issued, nil
}
func (m *mockNewsletterServicer) Unsubscribe(ctx context.Context, token string) error {
	if token != "tok" {
		return service.ErrNotFound
	}
	return nil
}

const testAdminKey = "test-key"

type testRouter struct {
	http.Handler
	projects   *mockProjectServicer
	skills     *mockSkillServicer
	newsletter *mockNewsletterServicer
}

func newTestRouter(t *testing.T) *testRouter {
	t.Helper()
	e, err := auth.NewMemoryEnforcer()
	if err != nil {
		t.Fatalf("failed to create enforcer: %v", err)
	}
	auth.SeedDefaultPolicies(e, logger.Nop())

	tr := &testRouter{
		projects:   &mockProjectServicer{projects: []data.Project{{ID: 1, Title: "One", Slug: "one"}}},
		skills:     &mockSkillServicer{},
		newsletter: &mockNewsletterServicer{issued: true},
	}
	blogs := &mockBlogServicer{}
	tr.Handler = NewRouter(Handlers{
		Projects:   NewProjectHandler(tr.projects),
		Blogs:      NewBlogHandler(blogs),
		Skills:     NewSkillHandler(tr.skills),
		Newsletter: NewNewsletterHandler(tr.newsletter),
		SEO:        NewSeoHandler(tr.projects, blogs, "https://example.com"),
		Health:     NewHealthHandler(nil),
	}, Middlewares{
		Error:        middleware.Error(logger.Nop()),
		Authenticate: middleware.Authenticate(testAdminKey, nil, nil),
		Authorize:    middleware.Authorizer(e),
	})
	return tr
}

func (tr *testRouter) do(method, path, body string, admin bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if admin {
		req.Header.Set("X-Admin-Key", testAdminKey)
	}
	rr := httptest.NewRecorder()
	tr.ServeHTTP(rr, req)
	return rr
}

func TestAdminRoutes_RequireCredentials(t *testing.T) {
	tr := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		admin  bool
		want   int
	}{
		{"anonymous list", http.MethodGet, "/api/admin/projects", false, http.StatusUnauthorized},
		{"anonymous delete", http.MethodDelete, "/api/admin/skills", false, http.StatusUnauthorized},
		{"admin list", http.MethodGet, "/api/admin/projects", true, http.StatusOK},
		{"public list", http.MethodGet, "/api/projects", false, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := tr.do(tt.method, tt.path, "", tt.admin)
			if rr.Code != tt.want {
				t.Errorf("want status %d; got %d (%s)", tt.want, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestAdminRoutes_WrongKeyIsAnonymous(t *testing.T) {
	tr := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/projects", nil)
	req.Header.Set("X-Admin-Key", "wrong")
	rr := httptest.NewRecorder()
	tr.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("want status 401; got %d", rr.Code)
	}
}

func TestProjectHandler_AdminEnvelopeAndStatusCodes(t *testing.T) {
	tr := newTestRouter(t)

	rr := tr.do(http.MethodGet, "/api/admin/projects", "", true)
	var list struct {
		Projects []data.Project `json:"projects"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("could not decode list: %v", err)
	}
	if len(list.Projects) != 1 || list.Projects[0].Slug != "one" {
		t.Errorf("unexpected list envelope: %s", rr.Body.String())
	}

	rr = tr.do(http.MethodPost, "/api/admin/projects", `{"id":99,"title":"New","description":"d","category":"web"}`, true)
	if rr.Code != http.StatusCreated {
		t.Fatalf("want status 201; got %d (%s)", rr.Code, rr.Body.String())
	}
	if tr.projects.lastInput.ID != nil {
		t.Error("expected id in create body to be ignored")
	}

	rr = tr.do(http.MethodPut, "/api/admin/projects", `{"title":"New","description":"d","category":"web"}`, true)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("want status 400 for update without id; got %d", rr.Code)
	}

	rr = tr.do(http.MethodPut, "/api/admin/projects", `{"id":3,"title":"New","description":"d","category":"web"}`, true)
	if rr.Code != http.StatusOK {
		t.Errorf("want status 200 for update; got %d", rr.Code)
	}

	rr = tr.do(http.MethodDelete, "/api/admin/projects", `{"id":3}`, true)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"deleted"`) {
		t.Errorf("unexpected delete response %d: %s", rr.Code, rr.Body.String())
	}
	if tr.projects.deletedID != 3 {
		t.Errorf("want deleted id 3; got %d", tr.projects.deletedID)
	}
}

func TestProjectHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"duplicate slug", service.ErrSlugExists, http.StatusConflict},
		{"invalid slug", service.ErrInvalidSlug, http.StatusBadRequest},
		{"validation", &service.ValidationError{Details: map[string]string{"title": "required"}}, http.StatusBadRequest},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestRouter(t)
			tr.projects.createErr = tt.err
			rr := tr.do(http.MethodPost, "/api/admin/projects", `{"title":"x","description":"d","category":"c"}`, true)
			if rr.Code != tt.want {
				t.Errorf("want status %d; got %d", tt.want, rr.Code)
			}
			var body struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil || body.Error == "" {
				t.Errorf("expected error envelope; got %s", rr.Body.String())
			}
		})
	}
}

func TestSkillHandler_ProficiencyValidationDetails(t *testing.T) {
	tr := newTestRouter(t)
	tr.skills.createErr = &service.ValidationError{Details: map[string]string{"proficiency_level": "lte"}}

	rr := tr.do(http.MethodPost, "/api/admin/skills", `{"name":"Go","category":"Languages","proficiency_level":101}`, true)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("want status 400; got %d", rr.Code)
	}
	var body struct {
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Details["proficiency_level"] == "" {
		t.Errorf("expected proficiency_level detail; got %v", body.Details)
	}
}

func TestDelete_RequiresID(t *testing.T) {
	tr := newTestRouter(t)
	for _, body := range []string{`{}`, `{"id":0}`, `not json`} {
		rr := tr.do(http.MethodDelete, "/api/admin/skills", body, true)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("body %q: want status 400; got %d", body, rr.Code)
		}
	}
}

func TestDecodeBody_RejectsUnknownFields(t *testing.T) {
	tr := newTestRouter(t)
	rr := tr.do(http.MethodPost, "/api/admin/skills", `{"name":"Go","category":"x","colour":"red"}`, true)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("want status 400; got %d", rr.Code)
	}
}

func TestNewsletterHandler_Subscribe(t *testing.T) {
	tr := newTestRouter(t)

	rr := tr.do(http.MethodPost, "/api/newsletter/subscribe", `{"email":"a@example.com"}`, false)
	if rr.Code != http.StatusCreated || !strings.Contains(rr.Body.String(), `"status":"subscribed"`) {
		t.Errorf("unexpected subscribe response %d: %s", rr.Code, rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), "tok") {
		t.Errorf("subscribe must not return the unsubscribe token: %s", rr.Body.String())
	}

	tr.newsletter.issued = false
	rr = tr.do(http.MethodPost, "/api/newsletter/subscribe", `{"email":"a@example.com"}`, false)
	if rr.Code != http.StatusOK || strings.Contains(rr.Body.String(), "unsubscribe_token") {
		t.Errorf("repeat subscribe must not leak a token; got %d: %s", rr.Code, rr.Body.String())
	}

	rr = tr.do(http.MethodPost, "/api/newsletter/unsubscribe", `{"token":"bad"}`, false)
	if rr.Code != http.StatusNotFound {
		t.Errorf("want status 404 for unknown token; got %d", rr.Code)
	}
}

func TestNewsletterHandler_AdminStats(t *testing.T) {
	tr := newTestRouter(t)
	rr := tr.do(http.MethodGet, "/api/admin/newsletter", "", true)
	if rr.Code != http.StatusOK {
		t.Fatalf("want status 200; got %d", rr.Code)
	}
	var body struct {
		Stats data.NewsletterStats `json:"stats"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Stats.TotalSubscribers != 3 || body.Stats.ActiveSubscribers != 2 {
		t.Errorf("unexpected stats %+v", body.Stats)
	}
}

func TestSeoHandler(t *testing.T) {
	tr := newTestRouter(t)

	rr := tr.do(http.MethodGet, "/robots.txt", "", false)
	if !strings.Contains(rr.Body.String(), "Sitemap: https://example.com/sitemap.xml") {
		t.Errorf("robots.txt missing sitemap line: %s", rr.Body.String())
	}

	rr = tr.do(http.MethodGet, "/sitemap.xml", "", false)
	if rr.Code != http.StatusOK {
		t.Fatalf("want status 200; got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "<loc>https://example.com/projects/one</loc>") {
		t.Errorf("sitemap missing project url: %s", rr.Body.String())
	}
}

func TestPublicBlog_DraftIsNotFound(t *testing.T) {
	tr := newTestRouter(t)
	rr := tr.do(http.MethodGet, "/api/blogs/draft", "", false)
	if rr.Code != http.StatusNotFound {
		t.Errorf("want status 404; got %d", rr.Code)
	}
}
