package handler

import (
	"errors"
	"net/http"

	"go-portfolio-app/internal/middleware"
	"go-portfolio-app/internal/service"
	"go-portfolio-app/internal/transport"
)

// idRequest is the body of every admin DELETE.
type idRequest struct {
	ID *int64 `json:"id"`
}

type statusResponse struct {
	Status string `json:"status"`
}

var deletedResponse = statusResponse{Status: "deleted"}

// decodeBody decodes the JSON request body into v.
func decodeBody(r *http.Request, v interface{}) *middleware.AppError {
	if err := transport.DecodeJSON(r.Body, v); err != nil {
		return &middleware.AppError{Error: err, Message: "invalid request body", Code: http.StatusBadRequest}
	}
	return nil
}

// decodeID decodes an {"id": n} body and rejects a missing or non-positive id.
func decodeID(r *http.Request) (int64, *middleware.AppError) {
	var req idRequest
	if appErr := decodeBody(r, &req); appErr != nil {
		return 0, appErr
	}
	if req.ID == nil || *req.ID <= 0 {
		return 0, &middleware.AppError{
			Error:   errors.New("missing id"),
			Message: "invalid input",
			Code:    http.StatusBadRequest,
			Details: map[string]string{"id": "required"},
		}
	}
	return *req.ID, nil
}

// serviceError maps service errors to HTTP responses. what names the failed
// operation for 5xx messages.
func serviceError(err error, what string) *middleware.AppError {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return &middleware.AppError{Error: err, Message: "invalid input", Code: http.StatusBadRequest, Details: ve.Details}
	case errors.Is(err, service.ErrMissingID):
		return &middleware.AppError{Error: err, Message: "invalid input", Code: http.StatusBadRequest, Details: map[string]string{"id": "required"}}
	case errors.Is(err, service.ErrInvalidSlug):
		return &middleware.AppError{Error: err, Message: "invalid input", Code: http.StatusBadRequest, Details: map[string]string{"slug": "slug"}}
	case errors.Is(err, service.ErrNotFound):
		return &middleware.AppError{Error: err, Message: "not found", Code: http.StatusNotFound}
	case errors.Is(err, service.ErrSlugExists), errors.Is(err, service.ErrEmailExists):
		return &middleware.AppError{Error: err, Message: err.Error(), Code: http.StatusConflict}
	default:
		return &middleware.AppError{Error: err, Message: "failed to " + what, Code: http.StatusInternalServerError}
	}
}
