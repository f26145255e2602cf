package handler

import (
	"context"
	"net/http"

	"go-portfolio-app/internal/data"
	"go-portfolio-app/internal/middleware"
	"go-portfolio-app/internal/transport"

	"github.com/go-chi/chi/v5"
)

// ProjectServicer defines the project operations the handlers need.
type ProjectServicer interface {
	List(ctx context.Context) ([]data.Project, error)
	ListPublic(ctx context.Context, filter data.ProjectFilter) ([]data.Project, error)
	GetBySlug(ctx context.Context, slug string) (*data.Project, error)
	Create(ctx context.Context, in data.ProjectInput) (*data.Project, error)
	Update(ctx context.Context, in data.ProjectInput) (*data.Project, error)
	Delete(ctx context.Context, id int64) error
}

// ProjectHandler serves the public and admin project endpoints.
type ProjectHandler struct {
	svc ProjectServicer
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(svc ProjectServicer) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

type projectsResponse struct {
	Projects []data.Project `json:"projects"`
}

func (h *ProjectHandler) adminList(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	projects, err := h.svc.List(r.Context())
	if err != nil {
		return serviceError(err, "list projects")
	}
	transport.WriteJSON(w, http.StatusOK, projectsResponse{Projects: projects})
	return nil
}

func (h *ProjectHandler) adminCreate(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var in data.ProjectInput
	if appErr := decodeBody(r, &in); appErr != nil {
		return appErr
	}
	in.ID = nil
	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return serviceError(err, "create project")
	}
	transport.WriteJSON(w, http.StatusCreated, p)
	return nil
}

func (h *ProjectHandler) adminUpdate(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var in data.ProjectInput
	if appErr := decodeBody(r, &in); appErr != nil {
		return appErr
	}
	p, err := h.svc.Update(r.Context(), in)
	if err != nil {
		return serviceError(err, "update project")
	}
	transport.WriteJSON(w, http.StatusOK, p)
	return nil
}

func (h *ProjectHandler) adminDelete(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := decodeID(r)
	if appErr != nil {
		return appErr
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return serviceError(err, "delete project")
	}
	transport.WriteJSON(w, http.StatusOK, deletedResponse)
	return nil
}

// publicList supports ?category= and ?featured=true.
func (h *ProjectHandler) publicList(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	q := r.URL.Query()
	filter := data.ProjectFilter{
		Category:     q.Get("category"),
		FeaturedOnly: q.Get("featured") == "true",
	}
	projects, err := h.svc.ListPublic(r.Context(), filter)
	if err != nil {
		return serviceError(err, "list projects")
	}
	transport.WriteJSON(w, http.StatusOK, projectsResponse{Projects: projects})
	return nil
}

func (h *ProjectHandler) publicGet(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	p, err := h.svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		return serviceError(err, "get project")
	}
	transport.WriteJSON(w, http.StatusOK, p)
	return nil
}
