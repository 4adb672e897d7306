package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"themeapp/internal/catalog"
	"themeapp/internal/config"
	"themeapp/internal/contact"
	"themeapp/internal/db"
	"themeapp/internal/handlers"
	"themeapp/models"
)

func resetHandlers(t *testing.T) {
	t.Cleanup(func() {
		handlers.Configure(nil, nil)
		handlers.ConfigureCatalog(nil)
		handlers.ConfigureContact(nil)
	})
}

func TestNewAppliesSessionDefaults(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file:serverdefaults?mode=memory&cache=shared"), db.Options(logger.Silent))
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	cfg := Config{Addr: ":8080", Session: SessionConfig{CookieSecure: true}, Database: conn}
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	resetHandlers(t)

	if srv.httpServer.Addr != ":8080" {
		t.Fatalf("expected server addr :8080, got %q", srv.httpServer.Addr)
	}

	data := url.Values{}
	data.Set("theme", "theme2")
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/theme", strings.NewReader(data.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after theme change, got %d", rr.Code)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie to be set")
	}
	if cookies[0].Name != "themeapp_session" {
		t.Fatalf("expected default session cookie name, got %q", cookies[0].Name)
	}
	if !cookies[0].Secure || !cookies[0].HttpOnly {
		t.Fatal("expected secure http-only cookie")
	}
	if cookies[0].Expires.Before(time.Now().Add(300 * 24 * time.Hour)) {
		t.Fatalf("expected a long lived persistent cookie, expires %v", cookies[0].Expires)
	}

	var stored models.Preference
	if err := conn.Where("pref_key = ?", "theme").First(&stored).Error; err != nil {
		t.Fatalf("expected stored preference: %v", err)
	}
	if stored.Value != "theme2" {
		t.Fatalf("expected theme2 persisted, got %q", stored.Value)
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	srv.Handler().ServeHTTP(rr, req)
	if !strings.Contains(rr.Body.String(), `data-theme="theme2"`) {
		t.Fatalf("expected theme restored on next visit: %s", rr.Body.String())
	}
}

func TestServerHandler(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":7,"title":"Lamp","price":12}]`)
	}))
	t.Cleanup(upstream.Close)

	cfg := Config{
		Addr:    ":9090",
		Catalog: catalog.Config{BaseURL: upstream.URL},
		Contact: contact.Config{Delay: time.Millisecond},
	}
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	resetHandlers(t)

	handler := srv.Handler()
	if handler == nil {
		t.Fatal("expected non-nil handler")
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected /healthz to return 200, got %d", rr.Code)
	}
	var health map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health["storage"] != "session" {
		t.Fatalf("expected session storage without a database, got %v", health["storage"])
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products", nil))
	if !strings.Contains(rr.Body.String(), "Lamp") {
		t.Fatalf("expected product fragment: %s", rr.Body.String())
	}
}

func TestDefaultConfigPersistsThemeOverPlainHTTP(t *testing.T) {
	for _, key := range []string{"CONFIG_FILE", "SESSION_COOKIE_SECURE", "SESSION_COOKIE_NAME", "SESSION_LIFETIME", "DATABASE_URL", "DB_URL"} {
		t.Setenv(key, "")
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	srv, err := New(Config{
		Addr: cfg.Server.Addr,
		Session: SessionConfig{
			Lifetime:     cfg.Session.Lifetime,
			CookieName:   cfg.Session.CookieName,
			CookieDomain: cfg.Session.CookieDomain,
			CookieSecure: cfg.Session.CookieSecure,
		},
		Contact: contact.Config{Delay: time.Millisecond},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	resetHandlers(t)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	client := &http.Client{Jar: jar}

	resp, err := client.PostForm(ts.URL+"/theme", url.Values{"theme": {"theme2"}, "page": {"Home"}})
	if err != nil {
		t.Fatalf("post theme: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected redirect to land on the page, got %d", resp.StatusCode)
	}

	resp, err = client.Get(ts.URL + "/api/preferences")
	if err != nil {
		t.Fatalf("get preferences: %v", err)
	}
	defer resp.Body.Close()
	var prefs struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&prefs); err != nil {
		t.Fatalf("decode preferences: %v", err)
	}
	if prefs.Theme != "theme2" {
		t.Fatalf("expected theme2 to survive the round trip over http, got %q", prefs.Theme)
	}
}
