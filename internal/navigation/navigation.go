// Package navigation tracks which of the three site pages is on screen.
package navigation

import (
	"net/url"
	"sync"
)

// Page names one top-level page.
type Page string

const (
	Home    Page = "Home"
	About   Page = "About"
	Contact Page = "Contact"
)

// Item is one entry of the header navigation.
type Item struct {
	Page Page
	Href string
}

var pages = []Page{Home, About, Contact}

// Resolve matches name exactly against the known pages. Anything else is Home.
func Resolve(name string) Page {
	for _, p := range pages {
		if string(p) == name {
			return p
		}
	}
	return Home
}

// Href is the URL that selects p.
func (p Page) Href() string {
	if p == Home {
		return "/"
	}
	return "/?page=" + url.QueryEscape(string(p))
}

// Items lists the navigation entries in header order.
func Items() []Item {
	items := make([]Item, 0, len(pages))
	for _, p := range pages {
		items = append(items, Item{Page: p, Href: p.Href()})
	}
	return items
}

// Router holds the current page name. The zero value shows Home.
type Router struct {
	mu      sync.RWMutex
	current string
}

// NewRouter returns a Router on the Home page.
func NewRouter() *Router {
	return &Router{current: string(Home)}
}

// Navigate stores name as given; unknown names render as Home.
func (r *Router) Navigate(name string) {
	r.mu.Lock()
	r.current = name
	r.mu.Unlock()
}

// Current resolves the stored name.
func (r *Router) Current() Page {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Resolve(r.current)
}
