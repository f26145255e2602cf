//go:build unit

package admin

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"go-portfolio-app/internal/logger"
)

type recordedRequest struct {
	Method      string
	Path        string
	Body        string
	ContentType string
	AdminKey    string
}

// fakeAPI serves canned admin responses and records every request.
type fakeAPI struct {
	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string]string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{responses: map[string]string{
		"GET /api/admin/projects":   `{"projects":[{"id":1,"title":"P","slug":"p"}]}`,
		"GET /api/admin/blogs":      `{"blogs":[{"id":1,"title":"B","slug":"b"}]}`,
		"GET /api/admin/skills":     `{"skills":[{"id":1,"name":"Go","proficiency_level":90}]}`,
		"GET /api/admin/newsletter": `{"subscribers":[{"id":1,"email":"a@example.com","active":true}],"stats":{"totalSubscribers":4,"activeSubscribers":3,"recentSubscriptions":2}}`,
		"POST /api/admin/projects":  `{"id":12,"title":"X","slug":"x"}`,
	}}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		Body:        string(body),
		ContentType: r.Header.Get("Content-Type"),
		AdminKey:    r.Header.Get("X-Admin-Key"),
	})
	resp, ok := f.responses[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":"not found"}`)
		return
	}
	if strings.HasPrefix(resp, "!") {
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, resp[1:])
		return
	}
	io.WriteString(w, resp)
}

func (f *fakeAPI) mutations() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedRequest
	for _, r := range f.requests {
		if r.Method != http.MethodGet {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeAPI) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r.Method == method {
			n++
		}
	}
	return n
}

func TestClient_LoadAllAgainstServer(t *testing.T) {
	fake := newFakeAPI()
	srv := httptest.NewServer(fake)
	defer srv.Close()

	m := NewManager(NewClient(srv.URL, WithAPIKey("k")), nil, logger.Nop())
	if err := m.LoadAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := m.State()
	if len(s.Projects) != 1 || len(s.Blogs) != 1 || len(s.Skills) != 1 || len(s.Subscribers) != 1 {
		t.Errorf("unexpected state %+v", s)
	}
	if s.Stats.TotalSubscribers != 4 || s.Stats.ActiveSubscribers != 3 || s.Stats.RecentSubscriptions != 2 {
		t.Errorf("stats must come from the API, got %+v", s.Stats)
	}
	for _, r := range fake.requests {
		if r.AdminKey != "k" {
			t.Errorf("missing admin key on %s %s", r.Method, r.Path)
		}
	}
}

func TestClient_MalformedCollectionIsolated(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing field", `{"items":[]}`},
		{"bare array", `[{"id":1}]`},
		{"not json", `<html>`},
		{"null field", `{"skills":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeAPI()
			fake.responses["GET /api/admin/skills"] = tt.body
			srv := httptest.NewServer(fake)
			defer srv.Close()

			m := NewManager(NewClient(srv.URL), nil, logger.Nop())
			if err := m.LoadAll(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			s := m.State()
			if s.Skills == nil || len(s.Skills) != 0 {
				t.Errorf("expected empty skills, got %#v", s.Skills)
			}
			if len(s.Projects) != 1 || len(s.Blogs) != 1 || len(s.Subscribers) != 1 {
				t.Errorf("other collections must be unaffected, got %+v", s)
			}
		})
	}
}

func TestClient_SaveNewProjectPostsExactBuffer(t *testing.T) {
	fake := newFakeAPI()
	srv := httptest.NewServer(fake)
	defer srv.Close()

	m := NewManager(NewClient(srv.URL), nil, logger.Nop())
	buf := BlankProject()
	buf.Title = "X"
	buf.Slug = "x"
	buf.Description = "d"
	buf.Category = "c"
	m.BeginProjectEdit(buf)

	if err := m.Save(context.Background(), KindProject); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	muts := fake.mutations()
	if len(muts) != 1 {
		t.Fatalf("expected one mutation, got %+v", muts)
	}
	want := `{"title":"X","slug":"x","description":"d","category":"c","technologies":[],"features":[],"status":"Completed","featured":false}`
	if muts[0].Method != http.MethodPost || muts[0].Path != "/api/admin/projects" {
		t.Errorf("want POST /api/admin/projects; got %s %s", muts[0].Method, muts[0].Path)
	}
	if muts[0].Body != want {
		t.Errorf("unexpected body\nwant %s\ngot  %s", want, muts[0].Body)
	}
	if muts[0].ContentType != "application/json" {
		t.Errorf("expected json content type, got %q", muts[0].ContentType)
	}
	if _, open := m.Buffer(KindProject); open {
		t.Error("expected the buffer to be cleared")
	}
	if fake.count(http.MethodGet) != 4 {
		t.Errorf("expected a four-request reload, got %d GETs", fake.count(http.MethodGet))
	}
	if res := m.LastResult(); res.ID != 12 || res.Op != "create" {
		t.Errorf("unexpected result %v", res)
	}
}

func TestClient_SaveStatusOnlyCreateIsSuccess(t *testing.T) {
	fake := newFakeAPI()
	var posts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			atomic.AddInt32(&posts, 1)
			w.WriteHeader(http.StatusCreated)
			return
		}
		fake.ServeHTTP(w, r)
	}))
	defer srv.Close()

	m := NewManager(NewClient(srv.URL), nil, logger.Nop())
	buf := BlankProject()
	buf.Title = "X"
	buf.Slug = "x"
	buf.Description = "d"
	buf.Category = "c"
	m.BeginProjectEdit(buf)

	if err := m.Save(context.Background(), KindProject); err != nil {
		t.Fatalf("a bodiless 201 is a success, got %v", err)
	}
	if n := atomic.LoadInt32(&posts); n != 1 {
		t.Errorf("expected one POST, got %d", n)
	}
	if _, open := m.Buffer(KindProject); open {
		t.Error("expected the buffer to be cleared")
	}
	if fake.count(http.MethodGet) != 4 {
		t.Errorf("expected a four-request reload, got %d GETs", fake.count(http.MethodGet))
	}
	if res := m.LastResult(); res.Outcome != OutcomeOK || res.ID != 0 {
		t.Errorf("unexpected result %v", res)
	}
}

func TestClient_CreateIgnoresNonJSONSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, "created")
	}))
	defer srv.Close()

	id, err := NewClient(srv.URL).Create(context.Background(), KindSkill, BlankSkill())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 0 {
		t.Errorf("expected id 0, got %d", id)
	}
}

func TestClient_APIError(t *testing.T) {
	fake := newFakeAPI()
	fake.responses["PUT /api/admin/skills"] = `!{"error":"slug already exists"}`
	srv := httptest.NewServer(fake)
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.Update(context.Background(), KindSkill, BlankSkill())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "slug already exists" {
		t.Errorf("unexpected api error %+v", apiErr)
	}
}

func TestClient_DeleteSendsIDBody(t *testing.T) {
	fake := newFakeAPI()
	fake.responses["DELETE /api/admin/newsletter"] = `{"status":"deleted"}`
	srv := httptest.NewServer(fake)
	defer srv.Close()

	if err := NewClient(srv.URL).Delete(context.Background(), KindSubscriber, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	muts := fake.mutations()
	if len(muts) != 1 || muts[0].Body != `{"id":5}` {
		t.Errorf("unexpected delete request %+v", muts)
	}
}

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out strings.Builder
		c := PromptConfirmer{In: strings.NewReader(tt.input), Out: &out}
		if got := c.Confirm("Delete?"); got != tt.want {
			t.Errorf("input %q: want %v, got %v", tt.input, tt.want, got)
		}
		if !strings.Contains(out.String(), "Delete? [y/N]") {
			t.Errorf("prompt not written: %q", out.String())
		}
	}
}
