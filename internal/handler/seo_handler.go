package handler

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"go-portfolio-app/internal/data"
	"go-portfolio-app/internal/middleware"
)

// SeoHandler holds dependencies for SEO-related handlers.
type SeoHandler struct {
	projects ProjectServicer
	blogs    BlogServicer
	siteURL  string
}

// NewSeoHandler creates a new SeoHandler. siteURL is the public site root.
func NewSeoHandler(projects ProjectServicer, blogs BlogServicer, siteURL string) *SeoHandler {
	return &SeoHandler{projects: projects, blogs: blogs, siteURL: strings.TrimRight(siteURL, "/")}
}

// robotsHandler serves robots.txt pointing at the sitemap.
func (h *SeoHandler) robotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "User-agent: *")
	fmt.Fprintln(w, "Allow: /")
	fmt.Fprintln(w, "Disallow: /api/admin/")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Sitemap: %s/sitemap.xml\n", h.siteURL)
}

const sitemapDateFormat = "2006-01-02"

type sitemapURL struct {
	XMLName xml.Name `xml:"url"`
	Loc     string   `xml:"loc"`
	LastMod string   `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// sitemapHandler lists the site root, every project and every published post.
func (h *SeoHandler) sitemapHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	projects, err := h.projects.ListPublic(r.Context(), data.ProjectFilter{})
	if err != nil {
		return serviceError(err, "build sitemap")
	}
	posts, err := h.blogs.ListPublic(r.Context(), "", "")
	if err != nil {
		return serviceError(err, "build sitemap")
	}

	sitemap := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]sitemapURL, 0, len(projects)+len(posts)+1),
	}
	sitemap.URLs = append(sitemap.URLs, sitemapURL{Loc: h.siteURL + "/"})
	for _, p := range projects {
		sitemap.URLs = append(sitemap.URLs, sitemapURL{
			Loc:     h.siteURL + "/projects/" + p.Slug,
			LastMod: p.UpdatedAt.Format(sitemapDateFormat),
		})
	}
	for _, b := range posts {
		sitemap.URLs = append(sitemap.URLs, sitemapURL{
			Loc:     h.siteURL + "/blog/" + b.Slug,
			LastMod: b.UpdatedAt.Format(sitemapDateFormat),
		})
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write([]byte(xml.Header))
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(sitemap); err != nil {
		return &middleware.AppError{Error: err, Message: "failed to encode sitemap", Code: http.StatusInternalServerError}
	}
	return nil
}
