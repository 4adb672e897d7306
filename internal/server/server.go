package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"themeapp/internal/catalog"
	"themeapp/internal/contact"
	"themeapp/internal/handlers"
	applog "themeapp/internal/log"
	"themeapp/internal/views/styles"
)

const (
	defaultSessionLifetime = 365 * 24 * time.Hour
	defaultCookieName      = "themeapp_session"
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr     string
	Session  SessionConfig
	Database *gorm.DB
	Catalog  catalog.Config
	Contact  contact.Config
}

// SessionConfig controls the visitor cookie. Preferences outlive browser
// restarts, so the cookie is persistent and long lived by default.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// Server wraps an http.Server and exposes helpers for bootstrapping the site.
type Server struct {
	config     Config
	httpServer *http.Server
}

// New builds a new Server using the provided configuration. It refuses to
// start when a theme style table is incomplete.
func New(cfg Config) (*Server, error) {
	applog.Debug(context.Background(), "initializing server",
		"addr", cfg.Addr,
		"sessionLifetime", cfg.Session.Lifetime.String(),
		"sessionCookie", cfg.Session.CookieName,
	)

	if err := styles.Validate(); err != nil {
		return nil, fmt.Errorf("validate theme styles: %w", err)
	}

	sessionCfg := cfg.Session
	if sessionCfg.Lifetime <= 0 {
		applog.Debug(context.Background(), "session lifetime not provided, using default")
		sessionCfg.Lifetime = defaultSessionLifetime
	}
	if strings.TrimSpace(sessionCfg.CookieName) == "" {
		applog.Debug(context.Background(), "session cookie name not provided, using default")
		sessionCfg.CookieName = defaultCookieName
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = sessionCfg.Lifetime
	sessionManager.Cookie.Name = sessionCfg.CookieName
	sessionManager.Cookie.Domain = sessionCfg.CookieDomain
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = sessionCfg.CookieSecure

	client, err := catalog.NewClient(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	handlers.Configure(sessionManager, cfg.Database)
	handlers.ConfigureCatalog(catalog.NewFetcher(client))
	handlers.ConfigureContact(contact.NewSubmitter(cfg.Contact))

	applog.Debug(context.Background(), "handler dependencies configured",
		"catalogLimit", client.Limit(),
		"database", cfg.Database != nil,
	)

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           newRouter(sessionManager),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Debug(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server with a timeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
