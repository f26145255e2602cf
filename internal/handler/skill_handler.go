package handler

import (
	"context"
	"net/http"

	"go-portfolio-app/internal/data"
	"go-portfolio-app/internal/middleware"
	"go-portfolio-app/internal/transport"
)

// SkillServicer defines the skill operations the handlers need.
type SkillServicer interface {
	List(ctx context.Context) ([]data.Skill, error)
	ListPublic(ctx context.Context) ([]data.Skill, error)
	Create(ctx context.Context, in data.SkillInput) (*data.Skill, error)
	Update(ctx context.Context, in data.SkillInput) (*data.Skill, error)
	Delete(ctx context.Context, id int64) error
}

// SkillHandler serves the public and admin skill endpoints.
type SkillHandler struct {
	svc SkillServicer
}

// NewSkillHandler creates a new SkillHandler.
func NewSkillHandler(svc SkillServicer) *SkillHandler {
	return &SkillHandler{svc: svc}
}

type skillsResponse struct {
	Skills []data.Skill `json:"skills"`
}

func (h *SkillHandler) adminList(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	skills, err := h.svc.List(r.Context())
	if err != nil {
		return serviceError(err, "list skills")
	}
	transport.WriteJSON(w, http.StatusOK, skillsResponse{Skills: skills})
	return nil
}

func (h *SkillHandler) adminCreate(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var in data.SkillInput
	if appErr := decodeBody(r, &in); appErr != nil {
		return appErr
	}
	in.ID = nil
	sk, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return serviceError(err, "create skill")
	}
	transport.WriteJSON(w, http.StatusCreated, sk)
	return nil
}

func (h *SkillHandler) adminUpdate(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var in data.SkillInput
	if appErr := decodeBody(r, &in); appErr != nil {
		return appErr
	}
	sk, err := h.svc.Update(r.Context(), in)
	if err != nil {
		return serviceError(err, "update skill")
	}
	transport.WriteJSON(w, http.StatusOK, sk)
	return nil
}

func (h *SkillHandler) adminDelete(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := decodeID(r)
	if appErr != nil {
		return appErr
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return serviceError(err, "delete skill")
	}
	transport.WriteJSON(w, http.StatusOK, deletedResponse)
	return nil
}

func (h *SkillHandler) publicList(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	skills, err := h.svc.ListPublic(r.Context())
	if err != nil {
		return serviceError(err, "list skills")
	}
	transport.WriteJSON(w, http.StatusOK, skillsResponse{Skills: skills})
	return nil
}
