package handlers

import (
	"errors"
	"net/http"

	"themeapp/internal/contact"
	applog "themeapp/internal/log"
	"themeapp/internal/navigation"
	"themeapp/internal/prefs"
	"themeapp/internal/views/components"
	"themeapp/internal/views/pages"
)

const (
	incompleteNotice = "Please fill in every field before sending."
	inFlightNotice   = "Your previous message is still being sent."
)

func contactForm(r *http.Request) contact.Form {
	return contact.Form{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Message: r.PostFormValue("message"),
	}
}

func submissionKey(r *http.Request) string {
	if visitor, ok := prefs.VisitorFromContext(r.Context()); ok {
		return visitor
	}
	return r.RemoteAddr
}

// ContactSubmit runs the simulated send. htmx requests get the form panel
// back; plain posts get the whole contact page.
func ContactSubmit(w http.ResponseWriter, r *http.Request) {
	if submitter == nil {
		applog.Error(r.Context(), "contact submitter not configured")
		http.Error(w, "contact form unavailable", http.StatusServiceUnavailable)
		return
	}
	if err := r.ParseForm(); err != nil {
		applog.Error(r.Context(), "failed to parse contact form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	form := contactForm(r)
	result, err := submitter.Submit(r.Context(), submissionKey(r), form)
	state := pages.ContactState{Form: result.Form, Sent: result.Sent, DismissAfter: result.DismissAfter}
	status := http.StatusOK

	switch {
	case errors.Is(err, contact.ErrIncomplete):
		applog.Debug(r.Context(), "contact form incomplete", "missing", form.Missing())
		state.Notice = incompleteNotice
		status = http.StatusUnprocessableEntity
	case errors.Is(err, contact.ErrInFlight):
		applog.Debug(r.Context(), "contact submission already in flight")
		state.Notice = inFlightNotice
		status = http.StatusConflict
	case err != nil:
		applog.Error(r.Context(), "contact submission failed", "error", err)
		http.Error(w, "failed to send message", http.StatusInternalServerError)
		return
	}

	if isHTMX(r) {
		// htmx only swaps successful responses.
		renderComponent(w, r, pages.ContactForm(state))
		return
	}
	renderPage(w, r, status, navigation.Contact, state)
}

// ContactValidate re-renders the submit button for the current field values.
func ContactValidate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}
	renderComponent(w, r, components.SubmitButton(contactForm(r).Ready()))
}

// ContactBanner replaces the success banner with its empty slot.
func ContactBanner(w http.ResponseWriter, r *http.Request) {
	renderComponent(w, r, components.BannerSlot())
}
