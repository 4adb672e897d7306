package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"themeapp/internal/catalog"
	"themeapp/internal/contact"
	"themeapp/internal/db"
	"themeapp/internal/prefs"
	"themeapp/internal/theme"
	"themeapp/internal/views/styles"
	"themeapp/models"
)

func withTestSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	originalSM, originalDB := sessionManager, database
	sm := scs.New()
	Configure(sm, nil)
	t.Cleanup(func() {
		Configure(originalSM, originalDB)
	})
	return sm
}

func withTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), db.Options(logger.Silent))
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	original := database
	database = conn
	t.Cleanup(func() {
		database = original
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return conn
}

func withTestCatalog(t *testing.T, handler http.HandlerFunc) *int32 {
	t.Helper()
	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(upstream.Close)

	client, err := catalog.NewClient(catalog.Config{BaseURL: upstream.URL})
	if err != nil {
		t.Fatalf("new catalog client: %v", err)
	}
	original := fetcher
	ConfigureCatalog(catalog.NewFetcher(client))
	t.Cleanup(func() { ConfigureCatalog(original) })
	return &calls
}

func withTestSubmitter(t *testing.T) {
	t.Helper()
	original := submitter
	ConfigureContact(contact.NewSubmitter(contact.Config{Delay: time.Millisecond, BannerDuration: 3 * time.Second}))
	t.Cleanup(func() { ConfigureContact(original) })
}

func stack(sm *scs.SessionManager, h http.HandlerFunc) http.Handler {
	return sm.LoadAndSave(Visitor(ThemeProvider(h)))
}

func serve(t *testing.T, h http.Handler, req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func selectTheme(t *testing.T, sm *scs.SessionManager, id models.ThemeID) []*http.Cookie {
	t.Helper()
	req := postForm("/theme", url.Values{"theme": {id.String()}})
	req.Header.Set("Accept", "application/json")
	w := serve(t, stack(sm, UpdateTheme), req, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected theme update to succeed, got %d: %s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}
	return cookies
}

func TestIsHTMX(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if isHTMX(req) {
		t.Fatal("expected false when no HTMX headers present")
	}
	req.Header.Set("HX-Request", "true")
	if !isHTMX(req) {
		t.Fatal("expected true when HX-Request header present")
	}
}

func TestPageRendersSelectedPage(t *testing.T) {
	sm := withTestSessionManager(t)

	w := serve(t, stack(sm, Page), httptest.NewRequest(http.MethodGet, "/?page=About", nil), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, token := range []string{`data-page="About"`, `href="/?page=About" data-state="active"`, "<title>About · ThemeApp</title>", `data-theme="theme1"`} {
		if !strings.Contains(body, token) {
			t.Fatalf("expected %q in page: %s", token, body)
		}
	}

	w = serve(t, stack(sm, Page), httptest.NewRequest(http.MethodGet, "/?page=Pricing", nil), nil)
	if !strings.Contains(w.Body.String(), `data-page="Home"`) {
		t.Fatalf("expected unknown page to render Home: %s", w.Body.String())
	}
}

func TestThemePersistsAcrossRequestsInSession(t *testing.T) {
	sm := withTestSessionManager(t)
	cookies := selectTheme(t, sm, models.ThemeDarkProfessional)

	w := serve(t, stack(sm, Preferences), httptest.NewRequest(http.MethodGet, "/api/preferences", nil), cookies)
	var resp preferencesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode preferences: %v", err)
	}
	if resp.Theme != "theme2" {
		t.Fatalf("expected theme2 after reload, got %q", resp.Theme)
	}
	if resp.Visitor == "" {
		t.Fatal("expected visitor id in response")
	}

	w = serve(t, stack(sm, Page), httptest.NewRequest(http.MethodGet, "/", nil), cookies)
	if !strings.Contains(w.Body.String(), `data-theme="theme2"`) {
		t.Fatalf("expected page rendered with theme2: %s", w.Body.String())
	}

	w = serve(t, stack(sm, Preferences), httptest.NewRequest(http.MethodGet, "/api/preferences", nil), nil)
	if !strings.Contains(w.Body.String(), `"theme":"theme1"`) {
		t.Fatalf("expected a fresh visitor to get the default theme: %s", w.Body.String())
	}
}

func TestUpdateThemeRejectsUnknownValue(t *testing.T) {
	sm := withTestSessionManager(t)

	w := serve(t, stack(sm, UpdateTheme), postForm("/theme", url.Values{"theme": {"theme4"}}), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUpdateThemeRedirectsPlainFormBackToPage(t *testing.T) {
	sm := withTestSessionManager(t)

	w := serve(t, stack(sm, UpdateTheme), postForm("/theme", url.Values{"theme": {"theme3"}, "page": {"Contact"}}), nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/?page=Contact" {
		t.Fatalf("expected redirect to contact page, got %q", loc)
	}
}

func TestUpdateThemeRefreshesHTMXClients(t *testing.T) {
	sm := withTestSessionManager(t)

	req := postForm("/theme", url.Values{"theme": {"theme2"}})
	req.Header.Set("HX-Request", "true")
	w := serve(t, stack(sm, UpdateTheme), req, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("HX-Refresh") != "true" {
		t.Fatal("expected HX-Refresh header")
	}
}

func TestThemePersistsInDatabaseForVisitor(t *testing.T) {
	sm := withTestSessionManager(t)
	conn := withTestDatabase(t)

	cookies := selectTheme(t, sm, models.ThemeColorfulCreative)

	w := serve(t, stack(sm, Preferences), httptest.NewRequest(http.MethodGet, "/api/preferences", nil), cookies)
	var resp preferencesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode preferences: %v", err)
	}
	if resp.Theme != "theme3" {
		t.Fatalf("expected theme3, got %q", resp.Theme)
	}

	value, ok, err := prefs.Lookup(context.Background(), conn, resp.Visitor, theme.StorageKey)
	if err != nil || !ok || value != "theme3" {
		t.Fatalf("expected stored theme3 for visitor, got %q ok=%v err=%v", value, ok, err)
	}
}

func TestProductsRendersCardsFromCatalog(t *testing.T) {
	sm := withTestSessionManager(t)
	calls := withTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":1,"title":"Bag","price":10.5,"rating":{"rate":4.5,"count":3}},{"id":2,"title":"Hat","price":3,"rating":{"rate":3,"count":1}}]`)
	})

	w := serve(t, stack(sm, Products), httptest.NewRequest(http.MethodGet, "/products", nil), nil)
	body := w.Body.String()
	if got := strings.Count(body, `data-component="product-card"`); got != 2 {
		t.Fatalf("expected 2 cards, got %d: %s", got, body)
	}
	if !strings.Contains(body, "$10.5") {
		t.Fatalf("expected price in output: %s", body)
	}
	if atomic.LoadInt32(calls) != 1 {
		t.Fatalf("expected one upstream request, got %d", *calls)
	}
}

func TestProductsEmptyCatalog(t *testing.T) {
	sm := withTestSessionManager(t)
	withTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	w := serve(t, stack(sm, Products), httptest.NewRequest(http.MethodGet, "/products", nil), nil)
	if !strings.Contains(w.Body.String(), "No products available at the moment.") {
		t.Fatalf("expected empty state: %s", w.Body.String())
	}
}

func TestProductsFailureThenRetry(t *testing.T) {
	sm := withTestSessionManager(t)
	var healthy atomic.Bool
	calls := withTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `[{"id":1,"title":"Bag","price":1}]`)
	})

	w := serve(t, stack(sm, Products), httptest.NewRequest(http.MethodGet, "/products", nil), nil)
	body := w.Body.String()
	if !strings.Contains(body, "Failed to fetch products") || !strings.Contains(body, "Retry") {
		t.Fatalf("expected error panel with retry: %s", body)
	}

	healthy.Store(true)
	w = serve(t, stack(sm, ProductsRetry), httptest.NewRequest(http.MethodGet, "/products/retry", nil), nil)
	body = w.Body.String()
	if got := strings.Count(body, `data-component="product-skeleton"`); got != 6 {
		t.Fatalf("expected retry to show 6 skeletons first, got %d: %s", got, body)
	}
	if !strings.Contains(body, `hx-get="/products?retry=1"`) {
		t.Fatalf("expected loading grid to carry the retry marker: %s", body)
	}
	if got := atomic.LoadInt32(calls); got != 1 {
		t.Fatalf("expected the loading swap to make no upstream request, got %d", got)
	}

	w = serve(t, stack(sm, Products), httptest.NewRequest(http.MethodGet, "/products?retry=1", nil), nil)
	if got := strings.Count(w.Body.String(), `data-component="product-card"`); got != 1 {
		t.Fatalf("expected 1 card after retry, got %d", got)
	}
	if got := atomic.LoadInt32(calls); got != 2 {
		t.Fatalf("expected exactly one request per attempt, got %d", got)
	}
}

func TestProductsDiscardsResultWhenRequestTornDown(t *testing.T) {
	withTestSessionManager(t)
	Configure(nil, nil)
	withTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/products", nil).WithContext(ctx)
	w := serve(t, Visitor(ThemeProvider(http.HandlerFunc(Products))), req, nil)
	if w.Body.Len() != 0 {
		t.Fatalf("expected no fragment for a torn down request, got %q", w.Body.String())
	}
}

func TestContactSubmitDarkThemeScenario(t *testing.T) {
	sm := withTestSessionManager(t)
	withTestSubmitter(t)
	cookies := selectTheme(t, sm, models.ThemeDarkProfessional)

	req := postForm("/contact", url.Values{"name": {"Ann"}, "email": {"a@b.com"}, "message": {"Hi"}})
	req.Header.Set("HX-Request", "true")
	w := serve(t, stack(sm, ContactSubmit), req, cookies)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, styles.Contact(models.ThemeDarkProfessional).Success) {
		t.Fatalf("expected dark success banner: %s", body)
	}
	for _, token := range []string{"Message sent successfully!", `name="name" value=""`, `name="email" value=""`, "></textarea>", `hx-trigger="load delay:3000ms"`} {
		if !strings.Contains(body, token) {
			t.Fatalf("expected %q in response: %s", token, body)
		}
	}
	if strings.Contains(body, "<html") {
		t.Fatalf("expected a fragment for htmx requests: %s", body)
	}
}

func TestContactSubmitIncompleteForm(t *testing.T) {
	sm := withTestSessionManager(t)
	withTestSubmitter(t)

	w := serve(t, stack(sm, ContactSubmit), postForm("/contact", url.Values{"name": {"Ann"}}), nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, incompleteNotice) || !strings.Contains(body, `value="Ann"`) {
		t.Fatalf("expected notice and preserved values: %s", body)
	}
	if strings.Contains(body, "Message sent successfully!") {
		t.Fatalf("unexpected success banner: %s", body)
	}
}

func TestContactValidateTogglesSubmitButton(t *testing.T) {
	sm := withTestSessionManager(t)

	w := serve(t, stack(sm, ContactValidate), postForm("/contact/validate", url.Values{"name": {"Ann"}, "email": {"a@b.com"}}), nil)
	if !strings.Contains(w.Body.String(), " disabled>") {
		t.Fatalf("expected disabled button: %s", w.Body.String())
	}

	w = serve(t, stack(sm, ContactValidate), postForm("/contact/validate", url.Values{"name": {"Ann"}, "email": {"a@b.com"}, "message": {"Hi"}}), nil)
	if strings.Contains(w.Body.String(), " disabled>") {
		t.Fatalf("expected enabled button: %s", w.Body.String())
	}
}

func TestContactBannerDismissal(t *testing.T) {
	sm := withTestSessionManager(t)

	w := serve(t, stack(sm, ContactBanner), httptest.NewRequest(http.MethodGet, "/contact/banner", nil), nil)
	if got := w.Body.String(); got != `<div id="contact-banner"></div>` {
		t.Fatalf("unexpected banner slot %q", got)
	}
}

func TestThemedHandlerOutsideProviderPanics(t *testing.T) {
	defer func() {
		if r := recover(); r != theme.ErrNoProvider {
			t.Fatalf("expected ErrNoProvider panic, got %v", r)
		}
	}()
	Preferences(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/preferences", nil))
}
