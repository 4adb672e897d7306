package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	applog "themeapp/internal/log"
	"themeapp/internal/navigation"
	"themeapp/internal/prefs"
	"themeapp/internal/theme"
	"themeapp/models"
)

type preferencesResponse struct {
	Theme   string `json:"theme"`
	Visitor string `json:"visitor,omitempty"`
}

// UpdateTheme switches the visitor's theme and persists it. JSON clients get
// the new preference back, htmx clients a full refresh, and plain form posts
// a redirect to the page they came from.
func UpdateTheme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse theme form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	value := strings.TrimSpace(r.FormValue("theme"))
	if !models.ValidTheme(value) {
		applog.Debug(r.Context(), "received invalid theme selection", "value", value)
		http.Error(w, "invalid theme selection", http.StatusBadRequest)
		return
	}

	store := theme.FromContext(r.Context())
	if err := store.Set(r.Context(), models.ThemeID(value)); err != nil {
		applog.Error(r.Context(), "failed to persist theme", "error", err)
		http.Error(w, "failed to save preferences", http.StatusInternalServerError)
		return
	}
	applog.Debug(r.Context(), "theme updated", "theme", value)

	switch {
	case wantsJSON(r):
		writePreferences(w, r, store.Current())
	case isHTMX(r):
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusOK)
	default:
		page := navigation.Resolve(r.FormValue("page"))
		http.Redirect(w, r, page.Href(), http.StatusSeeOther)
	}
}

// Preferences reports the visitor's current theme.
func Preferences(w http.ResponseWriter, r *http.Request) {
	writePreferences(w, r, theme.Current(r.Context()))
}

func writePreferences(w http.ResponseWriter, r *http.Request, id models.ThemeID) {
	visitor, _ := prefs.VisitorFromContext(r.Context())
	response := preferencesResponse{Theme: id.String(), Visitor: visitor}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		applog.Error(r.Context(), "failed to encode preferences response", "error", err)
	}
}
