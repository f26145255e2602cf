package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-portfolio-app/internal/auth"
	"go-portfolio-app/internal/cache"
	"go-portfolio-app/internal/config"
	"go-portfolio-app/internal/data"
	"go-portfolio-app/internal/handler"
	"go-portfolio-app/internal/logger"
	"go-portfolio-app/internal/middleware"
	"go-portfolio-app/internal/service"
	"go-portfolio-app/internal/session"
	"go-portfolio-app/internal/validation"

	"github.com/casbin/casbin/v2"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, os.Stdout)

	// --- Pre-flight Checks ---
	if cfg.Auth.AdminAPIKey == "" && cfg.Auth.JWTSecret == "" && cfg.OIDC.IssuerURL == "" {
		log.Warn("No admin credentials configured; /api/admin is unreachable")
	}

	// --- Database Initialization and Migration ---
	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()
	log.Info("Database connection successful.")

	log.Info("Applying database migrations...")
	if err := data.ApplyMigrations(db, cfg.DB.Driver); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	// --- Session Management Setup ---
	sessionManager, err := session.New(db, cfg.DB.Driver, cfg.Session, cfg.Server.TLS.Enabled)
	if err != nil {
		log.Fatal(err, "Failed to initialize sessions")
	}

	// --- Authentication and Authorization Setup ---
	log.Info("Initializing authentication and authorization...")
	var authenticator *auth.Authenticator
	if cfg.OIDC.IssuerURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		authenticator, err = auth.NewAuthenticator(ctx, &cfg.OIDC)
		cancel()
		if err != nil {
			log.Fatal(err, "Failed to initialize authenticator")
		}
	}
	enforcer, err := newEnforcer(cfg.DB)
	if err != nil {
		log.Fatal(err, "Failed to initialize enforcer")
	}
	auth.SeedDefaultPolicies(enforcer, log)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	log.Info("Auth components initialized and policies seeded.")

	// --- Cache Initialization ---
	log.Info(fmt.Sprintf("Initializing %q response cache...", cfg.Cache.Driver))
	responseCache, err := cache.New(context.Background(), cfg.Cache)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	defer responseCache.Close()
	log.Info("Cache initialized.")

	// --- Dependency Injection and Handler Initialization ---
	validate := validation.New()
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second

	projectService := service.NewProjectService(data.NewProjectRepository(db), validate, responseCache, ttl, log)
	blogService := service.NewBlogService(data.NewBlogRepository(db), validate, responseCache, ttl, log)
	skillService := service.NewSkillService(data.NewSkillRepository(db), validate, responseCache, ttl, log)
	newsletterService := service.NewNewsletterService(data.NewSubscriberRepository(db), validate, log)

	handlers := handler.Handlers{
		Projects:   handler.NewProjectHandler(projectService),
		Blogs:      handler.NewBlogHandler(blogService),
		Skills:     handler.NewSkillHandler(skillService),
		Newsletter: handler.NewNewsletterHandler(newsletterService),
		Auth: handler.NewAuthHandler(handler.AuthOptions{
			Authenticator:     authenticator,
			Sessions:          sessionManager,
			Tokens:            tokens,
			AdminPasswordHash: cfg.Auth.AdminPasswordHash,
			AdminEmails:       cfg.Auth.AdminEmails,
			AfterLoginURL:     cfg.Server.FrontendOrigin,
			Log:               log,
		}),
		SEO:    handler.NewSeoHandler(projectService, blogService, cfg.Server.FrontendOrigin),
		Health: handler.NewHealthHandler(db),
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)
	middlewares := handler.Middlewares{
		Error:         middleware.Error(log),
		RequestLogger: middleware.RequestLogger(log),
		CORS:          middleware.CORS(cfg.Server.FrontendOrigin),
		Session:       sessionManager.LoadAndSave,
		Authenticate:  middleware.Authenticate(cfg.Auth.AdminAPIKey, tokens, sessionManager),
		Authorize:     middleware.Authorizer(enforcer),
		RateLimit:     limiter.Middleware,
	}

	// --- Router Setup ---
	router := handler.NewRouter(handlers, middlewares)

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}

// newEnforcer keeps policies in MySQL when that is the Content Store and in
// memory otherwise. Default policies are re-seeded on every start.
func newEnforcer(db config.DBConfig) (*casbin.Enforcer, error) {
	if db.Driver == "mysql" {
		return auth.NewEnforcer(db.Driver, db.DSN)
	}
	return auth.NewMemoryEnforcer()
}
