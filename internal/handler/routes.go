package handler

import (
	"net/http"
	"time"

	"go-portfolio-app/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Handlers groups every endpoint handler. Auth and SEO may be nil.
type Handlers struct {
	Projects   *ProjectHandler
	Blogs      *BlogHandler
	Skills     *SkillHandler
	Newsletter *NewsletterHandler
	Auth       *AuthHandler
	SEO        *SeoHandler
	Health     *HealthHandler
}

// Middlewares groups the request pipeline. Only Error is required.
type Middlewares struct {
	Error         func(middleware.AppHandler) http.Handler
	RequestLogger func(http.Handler) http.Handler
	CORS          func(http.Handler) http.Handler
	Session       func(http.Handler) http.Handler
	Authenticate  func(http.Handler) http.Handler
	Authorize     func(http.Handler) http.Handler
	RateLimit     func(http.Handler) http.Handler
}

func use(r chi.Router, mws ...func(http.Handler) http.Handler) {
	for _, mw := range mws {
		if mw != nil {
			r.Use(mw)
		}
	}
}

// NewRouter creates and configures a new chi router.
func NewRouter(h Handlers, mw Middlewares) *chi.Mux {
	r := chi.NewRouter()
	e := mw.Error

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	use(r, mw.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	use(r, mw.CORS, mw.Session, mw.Authenticate)

	r.Method(http.MethodGet, "/health", e(h.Health.health))

	if h.SEO != nil {
		r.Get("/robots.txt", h.SEO.robotsHandler)
		r.Method(http.MethodGet, "/sitemap.xml", e(h.SEO.sitemapHandler))
	}

	if h.Auth != nil {
		r.Method(http.MethodGet, "/auth/login", e(h.Auth.handleLogin))
		r.Method(http.MethodGet, "/auth/callback", e(h.Auth.handleCallback))
		r.Method(http.MethodPost, "/auth/logout", e(h.Auth.handleLogout))
		r.Group(func(r chi.Router) {
			use(r, mw.RateLimit)
			r.Method(http.MethodPost, "/api/auth/token", e(h.Auth.handleToken))
		})
	}

	// Public read API
	r.Method(http.MethodGet, "/api/projects", e(h.Projects.publicList))
	r.Method(http.MethodGet, "/api/projects/{slug}", e(h.Projects.publicGet))
	r.Method(http.MethodGet, "/api/blogs", e(h.Blogs.publicList))
	r.Method(http.MethodGet, "/api/blogs/{slug}", e(h.Blogs.publicGet))
	r.Method(http.MethodGet, "/api/skills", e(h.Skills.publicList))

	r.Group(func(r chi.Router) {
		use(r, mw.RateLimit)
		r.Method(http.MethodPost, "/api/newsletter/subscribe", e(h.Newsletter.subscribe))
		r.Method(http.MethodPost, "/api/newsletter/unsubscribe", e(h.Newsletter.unsubscribe))
	})

	// Admin content API
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		use(r, mw.Authorize)

		r.Method(http.MethodGet, "/projects", e(h.Projects.adminList))
		r.Method(http.MethodPost, "/projects", e(h.Projects.adminCreate))
		r.Method(http.MethodPut, "/projects", e(h.Projects.adminUpdate))
		r.Method(http.MethodDelete, "/projects", e(h.Projects.adminDelete))

		r.Method(http.MethodGet, "/blogs", e(h.Blogs.adminList))
		r.Method(http.MethodPost, "/blogs", e(h.Blogs.adminCreate))
		r.Method(http.MethodPut, "/blogs", e(h.Blogs.adminUpdate))
		r.Method(http.MethodDelete, "/blogs", e(h.Blogs.adminDelete))

		r.Method(http.MethodGet, "/skills", e(h.Skills.adminList))
		r.Method(http.MethodPost, "/skills", e(h.Skills.adminCreate))
		r.Method(http.MethodPut, "/skills", e(h.Skills.adminUpdate))
		r.Method(http.MethodDelete, "/skills", e(h.Skills.adminDelete))

		r.Method(http.MethodGet, "/newsletter", e(h.Newsletter.adminList))
		r.Method(http.MethodDelete, "/newsletter", e(h.Newsletter.adminDelete))
	})

	return r
}
