package handler

import (
	"context"
	"net/http"

	"go-portfolio-app/internal/data"
	"go-portfolio-app/internal/middleware"
	"go-portfolio-app/internal/transport"
)

// NewsletterServicer defines the subscription operations the handlers need.
type NewsletterServicer interface {
	List(ctx context.Context) ([]data.Subscriber, data.NewsletterStats, error)
	Delete(ctx context.Context, id int64) error
	Subscribe(ctx context.Context, email string) (*data.Subscriber, bool, error)
	Unsubscribe(ctx context.Context, token string) error
}

// NewsletterHandler serves the subscription endpoints.
type NewsletterHandler struct {
	svc NewsletterServicer
}

// NewNewsletterHandler creates a new NewsletterHandler.
func NewNewsletterHandler(svc NewsletterServicer) *NewsletterHandler {
	return &NewsletterHandler{svc: svc}
}

type newsletterResponse struct {
	Subscribers []data.Subscriber    `json:"subscribers"`
	Stats       data.NewsletterStats `json:"stats"`
}

type subscribeRequest struct {
	Email string `json:"email"`
}

type subscribeResponse struct {
	Status string `json:"status"`
}

type unsubscribeRequest struct {
	Token string `json:"token"`
}

func (h *NewsletterHandler) adminList(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	subs, stats, err := h.svc.List(r.Context())
	if err != nil {
		return serviceError(err, "list subscribers")
	}
	transport.WriteJSON(w, http.StatusOK, newsletterResponse{Subscribers: subs, Stats: stats})
	return nil
}

func (h *NewsletterHandler) adminDelete(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := decodeID(r)
	if appErr != nil {
		return appErr
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return serviceError(err, "delete subscriber")
	}
	transport.WriteJSON(w, http.StatusOK, deletedResponse)
	return nil
}

// subscribe answers 201 when a token was issued and 200 for an address that
// is already active. The token itself never leaves the server.
func (h *NewsletterHandler) subscribe(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req subscribeRequest
	if appErr := decodeBody(r, &req); appErr != nil {
		return appErr
	}
	_, issued, err := h.svc.Subscribe(r.Context(), req.Email)
	if err != nil {
		return serviceError(err, "subscribe")
	}
	if !issued {
		transport.WriteJSON(w, http.StatusOK, subscribeResponse{Status: "already_subscribed"})
		return nil
	}
	transport.WriteJSON(w, http.StatusCreated, subscribeResponse{Status: "subscribed"})
	return nil
}

func (h *NewsletterHandler) unsubscribe(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var req unsubscribeRequest
	if appErr := decodeBody(r, &req); appErr != nil {
		return appErr
	}
	if err := h.svc.Unsubscribe(r.Context(), req.Token); err != nil {
		return serviceError(err, "unsubscribe")
	}
	transport.WriteJSON(w, http.StatusOK, statusResponse{Status: "unsubscribed"})
	return nil
}
