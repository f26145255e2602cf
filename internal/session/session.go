package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go-portfolio-app/internal/config"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
)

// Keys stored in an admin browser session after OIDC login.
const (
	KeySubject = "user_subject"
	KeyRole    = "user_role"
	KeyEmail   = "user_email"
)

// Manager is an interface that abstracts the session management implementation.
// This allows for easier testing and dependency injection.
type Manager interface {
	LoadAndSave(next http.Handler) http.Handler
	Put(ctx context.Context, key string, val interface{})
	GetString(ctx context.Context, key string) string
	PopString(ctx context.Context, key string) string
	RenewToken(ctx context.Context) error
	Destroy(ctx context.Context) error
	Remove(ctx context.Context, key string)
}

var _ Manager = (*scs.SessionManager)(nil)

// New creates a session manager persisted in the sessions table of db.
func New(db *sqlx.DB, driver string, sc config.SessionConfig, secure bool) (*scs.SessionManager, error) {
	sm := scs.New()
	switch driver {
	case "mysql":
		sm.Store = mysqlstore.New(db.DB)
	case "sqlite3", "sqlite":
		sm.Store = sqlite3store.New(db.DB)
	default:
		return nil, fmt.Errorf("no session store for driver %q", driver)
	}
	sm.Lifetime = time.Duration(sc.Lifetime) * time.Hour
	sm.Cookie.Name = "portfolio_session"
	sm.Cookie.Persist = true
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = secure
	return sm, nil
}
