package middleware

import (
	"fmt"
	"net/http"

	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/transport"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AppError represents a custom error type for the application.
type AppError struct {
	Error   error
	Message string
	Code    int
	Details map[string]string
}

// AppHandler is a custom handler function type that returns an AppError.
type AppHandler func(http.ResponseWriter, *http.Request) *AppError

// Error adapts an AppHandler into an http.Handler that renders returned
// errors and recovered panics as JSON error bodies.
func Error(log logger.Logger) func(AppHandler) http.Handler {
	return func(next AppHandler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLog := log.With(map[string]interface{}{
				"request_id": chimw.GetReqID(r.Context()),
				"path":       r.URL.Path,
			})

			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					reqLog.Error(err, "Panic recovered")
					transport.WriteError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), nil)
				}
			}()

			appErr := next(w, r)
			if appErr == nil {
				return
			}
			if appErr.Code >= http.StatusInternalServerError {
				reqLog.Error(appErr.Error, appErr.Message)
			} else if appErr.Error != nil {
				reqLog.Debug(fmt.Sprintf("%s: %v", appErr.Message, appErr.Error))
			}
			transport.WriteError(w, appErr.Code, appErr.Message, appErr.Details)
		})
	}
}
