package server

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"themeapp/internal/handlers"
	applog "themeapp/internal/log"
)

func newRouter(sm *scs.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger, middleware.Recoverer)

	applog.Debug(context.Background(), "registering http routes")
	r.Get("/healthz", handlers.Health)

	r.Group(func(r chi.Router) {
		r.Use(sm.LoadAndSave, handlers.Visitor, handlers.ThemeProvider)

		r.Get("/", handlers.Page)
		r.Get("/products", handlers.Products)
		r.Get("/products/retry", handlers.ProductsRetry)
		r.Post("/theme", handlers.UpdateTheme)
		r.Get("/api/preferences", handlers.Preferences)
		r.Post("/contact", handlers.ContactSubmit)
		r.Post("/contact/validate", handlers.ContactValidate)
		r.Get("/contact/banner", handlers.ContactBanner)
	})

	_ = chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		applog.Debug(context.Background(), "route registered", "method", method, "path", route)
		return nil
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		applog.Debug(r.Context(), "request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
