package handlers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"themeapp/internal/catalog"
	"themeapp/internal/contact"
	applog "themeapp/internal/log"
)

var (
	sessionManager *scs.SessionManager
	database       *gorm.DB
	fetcher        *catalog.Fetcher
	submitter      *contact.Submitter
)

// Configure installs the shared dependencies used by the HTTP handlers. A nil
// db keeps preferences in the session cookie only.
func Configure(sm *scs.SessionManager, db *gorm.DB) {
	sessionManager = sm
	database = db
}

// ConfigureCatalog installs the product fetcher behind GET /products.
func ConfigureCatalog(f *catalog.Fetcher) {
	fetcher = f
}

// ConfigureContact installs the contact form submitter.
func ConfigureContact(s *contact.Submitter) {
	submitter = s
}

func renderComponent(w http.ResponseWriter, r *http.Request, component templ.Component) {
	renderComponentStatus(w, r, http.StatusOK, component)
}

func renderComponentStatus(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render component", "error", err)
	}
}
