package handlers

import (
	"net/http"

	"themeapp/internal/catalog"
	applog "themeapp/internal/log"
	"themeapp/internal/views/pages"
)

// Products resolves the product section. A plain request is the first mount;
// the retry query marks a retry from the failure panel. Either way exactly one
// upstream request is made.
func Products(w http.ResponseWriter, r *http.Request) {
	if fetcher == nil {
		applog.Error(r.Context(), "catalog fetcher not configured")
		http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
		return
	}

	_, retry := r.URL.Query()["retry"]
	state, ok, err := fetcher.Load(r.Context(), catalog.Start(retry))
	if err != nil {
		applog.Error(r.Context(), "catalog lifecycle rejected load", "error", err)
		state = catalog.Failed{Message: catalog.Message(err)}
	} else if !ok {
		return
	}

	applog.Debug(r.Context(), "rendering product section", "state", state.Phase(), "retry", retry)
	renderComponent(w, r, pages.Products(state))
}

// ProductsRetry swaps the failure panel for the loading grid. The grid then
// requests the retry load itself, so the skeletons show while it runs.
func ProductsRetry(w http.ResponseWriter, r *http.Request) {
	renderComponent(w, r, pages.Products(catalog.Start(true)))
}
