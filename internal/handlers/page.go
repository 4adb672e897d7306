package handlers

import (
	"net/http"

	"themeapp/internal/navigation"
	"themeapp/internal/views/components"
	"themeapp/internal/views/layout"
	"themeapp/internal/views/pages"
)

// Page renders the document for the page named by the page query parameter.
// Unknown names render Home.
func Page(w http.ResponseWriter, r *http.Request) {
	router := navigation.NewRouter()
	if name := r.URL.Query().Get("page"); name != "" {
		router.Navigate(name)
	}
	renderPage(w, r, http.StatusOK, router.Current(), pages.ContactState{})
}

func renderPage(w http.ResponseWriter, r *http.Request, status int, page navigation.Page, contactState pages.ContactState) {
	doc := layout.Document(pages.Title(page), components.Header(page), pages.Page(page, contactState))
	renderComponentStatus(w, r, status, doc)
}
