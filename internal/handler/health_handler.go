package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-portfolio-app/internal/middleware"
	"go-portfolio-app/internal/transport"
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports liveness and database reachability.
type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) health(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if h.db == nil {
		return &middleware.AppError{Error: errors.New("no database"), Message: "database unavailable", Code: http.StatusServiceUnavailable}
	}
	if err := h.db.PingContext(ctx); err != nil {
		return &middleware.AppError{Error: err, Message: "database unavailable", Code: http.StatusServiceUnavailable}
	}
	transport.WriteJSON(w, http.StatusOK, statusResponse{Status: "ok"})
	return nil
}
