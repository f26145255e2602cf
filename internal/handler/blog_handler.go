package handler

import (
	"context"
	"net/http"

	"go-portfolio-app/internal/data"
	"go-portfolio-app/internal/middleware"
	"go-portfolio-app/internal/transport"

	"github.com/go-chi/chi/v5"
)

// BlogServicer defines the blog operations the handlers need.
type BlogServicer interface {
	List(ctx context.Context) ([]data.BlogPost, error)
	ListPublic(ctx context.Context, category, tag string) ([]data.BlogPost, error)
	GetPublished(ctx context.Context, slug string) (*data.BlogPost, error)
	Create(ctx context.Context, in data.BlogPostInput) (*data.BlogPost, error)
	Update(ctx context.Context, in data.BlogPostInput) (*data.BlogPost, error)
	Delete(ctx context.Context, id int64) error
}

// BlogHandler serves the public and admin blog endpoints.
type BlogHandler struct {
	svc BlogServicer
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(svc BlogServicer) *BlogHandler {
	return &BlogHandler{svc: svc}
}

type blogsResponse struct {
	Blogs []data.BlogPost `json:"blogs"`
}

func (h *BlogHandler) adminList(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	posts, err := h.svc.List(r.Context())
	if err != nil {
		return serviceError(err, "list blog posts")
	}
	transport.WriteJSON(w, http.StatusOK, blogsResponse{Blogs: posts})
	return nil
}

func (h *BlogHandler) adminCreate(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var in data.BlogPostInput
	if appErr := decodeBody(r, &in); appErr != nil {
		return appErr
	}
	in.ID = nil
	post, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return serviceError(err, "create blog post")
	}
	transport.WriteJSON(w, http.StatusCreated, post)
	return nil
}

func (h *BlogHandler) adminUpdate(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var in data.BlogPostInput
	if appErr := decodeBody(r, &in); appErr != nil {
		return appErr
	}
	post, err := h.svc.Update(r.Context(), in)
	if err != nil {
		return serviceError(err, "update blog post")
	}
	transport.WriteJSON(w, http.StatusOK, post)
	return nil
}

func (h *BlogHandler) adminDelete(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := decodeID(r)
	if appErr != nil {
		return appErr
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return serviceError(err, "delete blog post")
	}
	transport.WriteJSON(w, http.StatusOK, deletedResponse)
	return nil
}

// publicList supports ?category= and ?tag=.
func (h *BlogHandler) publicList(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	q := r.URL.Query()
	posts, err := h.svc.ListPublic(r.Context(), q.Get("category"), q.Get("tag"))
	if err != nil {
		return serviceError(err, "list blog posts")
	}
	transport.WriteJSON(w, http.StatusOK, blogsResponse{Blogs: posts})
	return nil
}

func (h *BlogHandler) publicGet(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	post, err := h.svc.GetPublished(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		return serviceError(err, "get blog post")
	}
	transport.WriteJSON(w, http.StatusOK, post)
	return nil
}
