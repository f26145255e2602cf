package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go-portfolio-app/internal/auth"
	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/middleware"
	"go-portfolio-app/internal/session"
	"go-portfolio-app/internal/transport"
)

// AuthOptions configures the AuthHandler. Authenticator and Tokens may be nil,
// which disables browser login and token issuance respectively.
type AuthOptions struct {
	Authenticator     *auth.Authenticator
	Sessions          session.Manager
	Tokens            *auth.TokenManager
	AdminPasswordHash string
	AdminEmails       []string
	AfterLoginURL     string
	Log               logger.Logger
}

// AuthHandler holds the dependencies for the authentication handlers.
type AuthHandler struct {
	opts AuthOptions
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(opts AuthOptions) *AuthHandler {
	if opts.AfterLoginURL == "" {
		opts.AfterLoginURL = "/"
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	return &AuthHandler{opts: opts}
}

type tokenRequest struct {
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// handleToken exchanges the admin password for a bearer token.
func (h *AuthHandler) handleToken(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if h.opts.Tokens == nil || h.opts.AdminPasswordHash == "" {
		return &middleware.AppError{Error: errors.New("token auth not configured"), Message: "token authentication is not configured", Code: http.StatusServiceUnavailable}
	}
	var req tokenRequest
	if appErr := decodeBody(r, &req); appErr != nil {
		return appErr
	}
	if err := auth.ComparePassword(h.opts.AdminPasswordHash, req.Password); err != nil {
		return &middleware.AppError{Error: err, Message: "invalid credentials", Code: http.StatusUnauthorized}
	}
	token, expires, err := h.opts.Tokens.Issue("admin", auth.RoleAdmin)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "failed to issue token", Code: http.StatusInternalServerError}
	}
	transport.WriteJSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: expires})
	return nil
}

// handleLogin redirects the user to the OIDC provider to log in.
// It uses a random 'state' string for CSRF protection.
func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if h.opts.Authenticator == nil {
		return &middleware.AppError{Error: errors.New("oidc not configured"), Message: "browser login is not configured", Code: http.StatusNotFound}
	}
	state, err := randString(16)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "failed to start login", Code: http.StatusInternalServerError}
	}
	// Store the state in a short-lived cookie to verify on callback.
	http.SetCookie(w, &http.Cookie{
		Name:     "state",
		Value:    state,
		Path:     "/",
		MaxAge:   int(10 * time.Minute / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.opts.Authenticator.AuthCodeURL(state), http.StatusFound)
	return nil
}

// handleCallback completes the OIDC code flow and stores the caller's role in the session.
func (h *AuthHandler) handleCallback(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if h.opts.Authenticator == nil {
		return &middleware.AppError{Error: errors.New("oidc not configured"), Message: "browser login is not configured", Code: http.StatusNotFound}
	}
	stateCookie, err := r.Cookie("state")
	if err != nil {
		return &middleware.AppError{Error: err, Message: "state cookie not found", Code: http.StatusBadRequest}
	}
	if r.URL.Query().Get("state") != stateCookie.Value {
		return &middleware.AppError{Error: errors.New("state mismatch"), Message: "state did not match", Code: http.StatusBadRequest}
	}
	http.SetCookie(w, &http.Cookie{Name: "state", Value: "", Path: "/", MaxAge: -1})

	oauth2Token, err := h.opts.Authenticator.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "failed to exchange token", Code: http.StatusUnauthorized}
	}
	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return &middleware.AppError{Error: errors.New("missing id_token"), Message: "no id_token in token response", Code: http.StatusUnauthorized}
	}
	idToken, err := h.opts.Authenticator.IDTokenVerifier.Verify(r.Context(), rawIDToken)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "failed to verify ID token", Code: http.StatusUnauthorized}
	}
	var claims auth.IdentityClaims
	if err := idToken.Claims(&claims); err != nil {
		return &middleware.AppError{Error: err, Message: "failed to read ID token claims", Code: http.StatusUnauthorized}
	}

	role := roleForEmail(claims, h.opts.AdminEmails)
	if err := h.opts.Sessions.RenewToken(r.Context()); err != nil {
		return &middleware.AppError{Error: err, Message: "failed to renew session", Code: http.StatusInternalServerError}
	}
	h.opts.Sessions.Put(r.Context(), session.KeySubject, idToken.Subject)
	h.opts.Sessions.Put(r.Context(), session.KeyEmail, claims.Email)
	h.opts.Sessions.Put(r.Context(), session.KeyRole, role)
	h.opts.Log.With(map[string]interface{}{"subject": idToken.Subject, "role": role}).Info("admin login")

	http.Redirect(w, r, h.opts.AfterLoginURL, http.StatusFound)
	return nil
}

// handleLogout destroys the browser session.
func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if h.opts.Sessions != nil {
		if err := h.opts.Sessions.Destroy(r.Context()); err != nil {
			return &middleware.AppError{Error: err, Message: "failed to log out", Code: http.StatusInternalServerError}
		}
	}
	http.Redirect(w, r, h.opts.AfterLoginURL, http.StatusFound)
	return nil
}

// roleForEmail grants admin to verified addresses listed in adminEmails.
func roleForEmail(claims auth.IdentityClaims, adminEmails []string) string {
	if claims.EmailVerified {
		for _, e := range adminEmails {
			if strings.EqualFold(strings.TrimSpace(e), claims.Email) {
				return auth.RoleAdmin
			}
		}
	}
	return auth.RoleViewer
}

// randString is a helper function to generate a random string for the 'state' parameter.
func randString(nByte int) (string, error) {
	b := make([]byte, nByte)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
