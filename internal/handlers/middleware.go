package handlers

import (
	"net/http"

	"github.com/google/uuid"

	applog "themeapp/internal/log"
	"themeapp/internal/prefs"
	"themeapp/internal/theme"
)

const sessionVisitorKey = "visitor_id"

// Visitor gives every browser a stable anonymous id kept in its session and
// exposes it on the request context. It must run inside the session manager's
// LoadAndSave.
func Visitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sessionManager == nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()
		id := sessionManager.GetString(ctx, sessionVisitorKey)
		if id == "" {
			id = uuid.NewString()
			sessionManager.Put(ctx, sessionVisitorKey, id)
			applog.Debug(ctx, "assigned visitor id", "visitor", id)
		}
		next.ServeHTTP(w, r.WithContext(prefs.WithVisitor(ctx, id)))
	})
}

// ThemeProvider builds the visitor's theme store and installs it on the
// request context for every component rendered below it.
func ThemeProvider(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		store := theme.NewStore(ctx, preferenceStorage())
		next.ServeHTTP(w, r.WithContext(theme.WithStore(ctx, store)))
	})
}

func preferenceStorage() theme.Storage {
	switch {
	case database != nil:
		return prefs.NewGormStorage(database)
	case sessionManager != nil:
		return prefs.NewSessionStorage(sessionManager)
	default:
		return nil
	}
}

func storageName() string {
	switch {
	case database != nil:
		return "database"
	case sessionManager != nil:
		return "session"
	default:
		return "memory"
	}
}
