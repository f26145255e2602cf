package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-portfolio-app/internal/data"
)

// ErrMalformedResponse is returned when a 2xx body cannot be decoded or lacks
// the expected collection field.
var ErrMalformedResponse = errors.New("malformed response")

// APIError is a non-2xx response from the content API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %d %s", e.Status, e.Message)
}

// Newsletter is the subscriber listing together with the server-computed stats.
type Newsletter struct {
	Subscribers []data.Subscriber
	Stats       data.NewsletterStats
}

// ContentAPI is the set of admin endpoints the Manager drives.
type ContentAPI interface {
	ListProjects(ctx context.Context) ([]data.Project, error)
	ListBlogs(ctx context.Context) ([]data.BlogPost, error)
	ListSkills(ctx context.Context) ([]data.Skill, error)
	ListNewsletter(ctx context.Context) (Newsletter, error)
	Create(ctx context.Context, kind Kind, body interface{}) (int64, error)
	Update(ctx context.Context, kind Kind, body interface{}) error
	Delete(ctx context.Context, kind Kind, id int64) error
}

// Client talks to the admin REST API over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey authenticates requests with the X-Admin-Key header.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithToken authenticates requests with a bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a Client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ContentAPI = (*Client)(nil)

func (c *Client) ListProjects(ctx context.Context) ([]data.Project, error) {
	var out []data.Project
	if err := c.list(ctx, KindProject, "projects", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListBlogs(ctx context.Context) ([]data.BlogPost, error) {
	var out []data.BlogPost
	if err := c.list(ctx, KindBlog, "blogs", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListSkills(ctx context.Context) ([]data.Skill, error) {
	var out []data.Skill
	if err := c.list(ctx, KindSkill, "skills", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListNewsletter returns the subscribers and stats. A missing stats object is
// reported as zero counts; a missing subscribers field is malformed.
func (c *Client) ListNewsletter(ctx context.Context) (Newsletter, error) {
	raw, err := c.envelope(ctx, KindSubscriber)
	if err != nil {
		return Newsletter{}, err
	}
	var n Newsletter
	if err := field(raw, "subscribers", &n.Subscribers); err != nil {
		return Newsletter{}, err
	}
	if s, ok := raw["stats"]; ok {
		if err := json.Unmarshal(s, &n.Stats); err != nil {
			return Newsletter{}, fmt.Errorf("%w: stats: %v", ErrMalformedResponse, err)
		}
	}
	return n, nil
}

// Create POSTs body and returns the id of the created entity. A 2xx reply
// without a decodable entity is still a success and reports id 0.
func (c *Client) Create(ctx context.Context, kind Kind, body interface{}) (int64, error) {
	var created struct {
		ID int64 `json:"id"`
	}
	err := c.do(ctx, http.MethodPost, kind.path(), body, &created)
	if errors.Is(err, ErrMalformedResponse) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

// Update PUTs body. The id travels in the body.
func (c *Client) Update(ctx context.Context, kind Kind, body interface{}) error {
	return c.do(ctx, http.MethodPut, kind.path(), body, nil)
}

// Delete removes the entity with the given id.
func (c *Client) Delete(ctx context.Context, kind Kind, id int64) error {
	return c.do(ctx, http.MethodDelete, kind.path(), map[string]int64{"id": id}, nil)
}

// Token exchanges the admin password for a bearer token.
func (c *Client) Token(ctx context.Context, password string) (string, time.Time, error) {
	var resp struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/token", map[string]string{"password": password}, &resp); err != nil {
		return "", time.Time{}, err
	}
	if resp.Token == "" {
		return "", time.Time{}, fmt.Errorf("%w: token missing", ErrMalformedResponse)
	}
	return resp.Token, resp.ExpiresAt, nil
}

func (c *Client) list(ctx context.Context, kind Kind, key string, dst interface{}) error {
	raw, err := c.envelope(ctx, kind)
	if err != nil {
		return err
	}
	return field(raw, key, dst)
}

func (c *Client) envelope(ctx context.Context, kind Kind) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := c.do(ctx, http.MethodGet, kind.path(), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// field decodes raw[key] into dst. An absent or null field is malformed.
func field(raw map[string]json.RawMessage, key string, dst interface{}) error {
	v, ok := raw[key]
	if !ok || string(v) == "null" {
		return fmt.Errorf("%w: field %q missing", ErrMalformedResponse, key)
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("%w: field %q: %v", ErrMalformedResponse, key, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-Admin-Key", c.apiKey)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(payload, &envelope) == nil {
			apiErr.Message = envelope.Error
		}
		return apiErr
	}
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
